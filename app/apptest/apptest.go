// Package apptest provides an in-memory app.Gateway for tests.
package apptest

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/mseshachalam/hncli/app"
)

// Gateway serves a fixed listing and fixed details.
// It is safe for concurrent use.
type Gateway struct {
	// IDs is returned for every mode unless ListErr is set.
	IDs     []int
	ListErr error
	// Stories by id. An id missing from both maps fails with a not found error.
	Stories map[int]*app.Story
	// Errs by id, checked before Stories.
	Errs map[int]error

	mu      sync.Mutex
	lists   []app.Mode
	fetched []int
}

// ListIDs returns IDs or ListErr
func (g *Gateway) ListIDs(_ context.Context, mode app.Mode) ([]int, error) {
	g.mu.Lock()
	g.lists = append(g.lists, mode)
	g.mu.Unlock()

	if g.ListErr != nil {
		return nil, g.ListErr
	}
	return append([]int(nil), g.IDs...), nil
}

// FetchDetail returns a copy of the story with id
func (g *Gateway) FetchDetail(_ context.Context, id int) (*app.Story, error) {
	g.mu.Lock()
	g.fetched = append(g.fetched, id)
	g.mu.Unlock()

	if err, ok := g.Errs[id]; ok {
		return nil, err
	}
	s, ok := g.Stories[id]
	if !ok {
		return nil, errors.Errorf("item %d not found", id)
	}
	cp := *s
	return &cp, nil
}

// Lists returns the modes listed so far
func (g *Gateway) Lists() []app.Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]app.Mode(nil), g.lists...)
}

// Fetched returns the ids fetched so far, in call order
func (g *Gateway) Fetched() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.fetched...)
}

// Story makes a plain story with id
func Story(id int, title string, score int) *app.Story {
	return &app.Story{ID: id, Title: title, Score: score, Type: "story"}
}
