package app

import (
	"context"
)

// Gateway talks to the HN API
type Gateway interface {
	// ListIDs returns story ids ranked for mode
	ListIDs(ctx context.Context, mode Mode) ([]int, error)
	// FetchDetail returns the story with id
	FetchDetail(ctx context.Context, id int) (*Story, error)
}

// Progress observes a batch of fetch attempts.
// Implementations must be safe for concurrent Advance calls and never fail.
type Progress interface {
	Start(total int)
	Advance()
	Finish()
}

// Bringer brings a ranked list of stories
type Bringer interface {
	Bring(ctx context.Context, mode Mode, count Count) ([]*Story, error)
}
