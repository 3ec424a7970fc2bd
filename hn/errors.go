package hn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kinds of gateway failure. Every error returned by Client matches exactly one
// of them through errors.Is.
var (
	// ErrNetwork means the request could not be made or did not complete
	ErrNetwork = errors.New("network error")
	// ErrDecode means the response body does not have the expected shape
	ErrDecode = errors.New("decode error")
	// ErrNotFound means HN answered with no item, e.g. a deleted story
	ErrNotFound = errors.New("not found")
)

// Error is a classified gateway failure
type Error struct {
	// Kind is one of ErrNetwork, ErrDecode, ErrNotFound
	Kind error
	// Op is the gateway operation, "list" or "item"
	Op string
	// ID is the requested item id, zero for listings
	ID int
	// Err is the underlying cause, possibly nil
	Err error
}

func (e *Error) Error() string {
	target := e.Op
	if e.ID != 0 {
		target = fmt.Sprintf("%s %d", e.Op, e.ID)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", target, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", target, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
