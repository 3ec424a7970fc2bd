package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"hottest", Hottest},
		{"HOTTEST", Hottest},
		{" latest ", Latest},
		{"Latest", Latest},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "top", "newest", "best"} {
		_, err := ParseMode(bad)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), bad)
		assert.Equal(t, "mode", verr.Field)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "hottest", Hottest.String())
	assert.Equal(t, "latest", Latest.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}

func TestNewCount(t *testing.T) {
	for _, n := range []int{1, 2, 30, 499, 500} {
		c, err := NewCount(n)
		require.NoError(t, err)
		assert.Equal(t, Count(n), c)
	}

	for _, n := range []int{0, -1, 501, 10000} {
		_, err := NewCount(n)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "n=%d", n)
		assert.Equal(t, "count", verr.Field)
	}
}

func TestParseCount(t *testing.T) {
	c, err := ParseCount(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, Count(42), c)

	_, err = ParseCount("many")
	assert.EqualError(t, err, `invalid count "many": must be an integer`)

	_, err = ParseCount("0")
	assert.EqualError(t, err, `invalid count "0": must be between 1 and 500`)
}

func TestDefaultsAreValid(t *testing.T) {
	conf := Defaults()
	require.NoError(t, conf.Validate())
	assert.Equal(t, "hottest", conf.Mode)
	assert.Equal(t, 30, conf.Count)
	assert.Equal(t, 1, conf.Workers)
	assert.Equal(t, Duration(10*time.Second), conf.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "best" }},
		{"count", func(c *Config) { c.Count = 501 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"timeout", func(c *Config) { c.Timeout = -1 }},
		{"discuss_url", func(c *Config) { c.DiscussURL = "https://example.com" }},
		{"color", func(c *Config) { c.Color = "rainbow" }},
		{"log_level", func(c *Config) { c.LogLevel = "loud" }},
		{"log_format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			conf := Defaults()
			tt.mutate(&conf)

			var verr *ValidationError
			require.True(t, errors.As(conf.Validate(), &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "hncli.json", `{"mode": "latest", "count": 12, "timeout": "3s", "workers": 4, "baseURL": "http://localhost:1"}`)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "latest", conf.Mode)
	assert.Equal(t, 12, conf.Count)
	assert.Equal(t, Duration(3*time.Second), conf.Timeout)
	assert.Equal(t, 4, conf.Workers)
	assert.Equal(t, "http://localhost:1", conf.BaseURL)
	assert.Equal(t, DefaultDiscussURL, conf.DiscussURL)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "hncli.yaml", "mode: latest\ncount: 7\ntimeout: 250ms\nformat: table\nlog_level: debug\n")

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "latest", conf.Mode)
	assert.Equal(t, 7, conf.Count)
	assert.Equal(t, Duration(250*time.Millisecond), conf.Timeout)
	assert.Equal(t, "table", conf.Format)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, DefaultBaseURL, conf.BaseURL)
}

func TestLoadConfig_Env(t *testing.T) {
	path := writeFile(t, "hncli.json", `{"count": 3}`)
	t.Setenv(ConfigPathEnv, path)

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, conf.Count)
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), conf)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.json", `{"count": "many"}`))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yml", "timeout: soon\n"))
	assert.Error(t, err)
}

func TestStoryHasURL(t *testing.T) {
	tests := []struct {
		name  string
		story Story
		want  bool
	}{
		{"story with url", Story{Type: "story", URL: "https://a.example"}, true},
		{"job with url", Story{Type: "job", URL: "https://a.example/jobs"}, true},
		{"untyped with url", Story{URL: "https://a.example"}, true},
		{"text post", Story{Type: "story"}, false},
		{"blank url", Story{Type: "story", URL: "   "}, false},
		{"poll", Story{Type: "poll", URL: "https://a.example"}, false},
		{"comment", Story{Type: "comment", URL: "https://a.example"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.story.HasURL())
		})
	}
}
