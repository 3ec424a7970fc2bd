package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHN serves listings and items like the HN Firebase API
func fakeHN(t *testing.T, listStatus int) (*httptest.Server, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		switch r.URL.Path {
		case "/topstories.json", "/newstories.json":
			if listStatus != http.StatusOK {
				w.WriteHeader(listStatus)
				return
			}
			w.Write([]byte("[1, 2, 3]"))
		case "/item/1.json":
			w.Write([]byte(`{"id": 1, "title": "first", "score": 10, "url": "https://one.example", "descendants": 2, "type": "story"}`))
		case "/item/2.json":
			w.Write([]byte("null"))
		case "/item/3.json":
			w.Write([]byte(`{"id": 3, "title": "third", "score": 30, "type": "story"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func configFor(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hncli.json")
	content := fmt.Sprintf(`{"baseURL": %q}`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Lists(t *testing.T) {
	srv, _ := fakeHN(t, http.StatusOK)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", configFor(t, srv.URL), "-count", "3"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, " 1. [ 10  ] first (one.example)\n")
	assert.Contains(t, out, " 2. [ 30  ] third\n")
	assert.Contains(t, out, "https://news.ycombinator.com/item?id=3")
	assert.NotContains(t, out, " 3. ")
	assert.Empty(t, stderr.String())
}

func TestRun_RejectsCountBeforeNetwork(t *testing.T) {
	for _, count := range []string{"0", "501", "-1"} {
		srv, hits := fakeHN(t, http.StatusOK)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"-config", configFor(t, srv.URL), "-count", count}, &stdout, &stderr)
		assert.Equal(t, exitValidation, code, count)
		assert.Zero(t, atomic.LoadInt64(hits), count)
		assert.Empty(t, stdout.String())
		assert.True(t, strings.HasPrefix(stderr.String(), "validation: "), stderr.String())
	}
}

func TestRun_RejectsMode(t *testing.T) {
	srv, hits := fakeHN(t, http.StatusOK)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", configFor(t, srv.URL), "-sort", "best"}, &stdout, &stderr)
	assert.Equal(t, exitValidation, code)
	assert.Zero(t, atomic.LoadInt64(hits))
	assert.Contains(t, stderr.String(), "validation: invalid mode")
}

func TestRun_ListingFailure(t *testing.T) {
	srv, _ := fakeHN(t, http.StatusInternalServerError)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-config", configFor(t, srv.URL), "-s", "latest"}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout.String())
	assert.True(t, strings.HasPrefix(stderr.String(), "listing: "), stderr.String())
}

func TestRun_SameOutputTwice(t *testing.T) {
	srv, _ := fakeHN(t, http.StatusOK)
	conf := configFor(t, srv.URL)
	args := []string{"-config", conf, "-c", "3", "-f", "json"}

	var first, second, stderr bytes.Buffer
	require.Equal(t, exitOK, run(context.Background(), args, &first, &stderr))
	require.Equal(t, exitOK, run(context.Background(), append(args, "-workers", "3"), &second, &stderr))
	assert.Equal(t, first.String(), second.String())
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitValidation, run(context.Background(), []string{"-nope"}, &stdout, &stderr))
	assert.Equal(t, exitValidation, run(context.Background(), []string{"extra"}, &stdout, &stderr))
	assert.Equal(t, exitOK, run(context.Background(), []string{"-h"}, &stdout, &stderr))
}
