// Package bringer turns a HN listing into an ordered list of stories.
package bringer

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mseshachalam/hncli/app"
	"github.com/mseshachalam/hncli/progress"
	"github.com/mseshachalam/hncli/util"
)

// Bringer brings stories from a Gateway.
// With NWorkers > 1 details are fetched by a pool of that many goroutines;
// the result order is the same either way.
type Bringer struct {
	Gateway  app.Gateway
	Progress app.Progress
	NWorkers int
	Log      logrus.FieldLogger
}

// New makes a Bringer
func New(gw app.Gateway, p app.Progress, nWorkers int) *Bringer {
	return &Bringer{Gateway: gw, Progress: p, NWorkers: nWorkers}
}

// Bring lists ids for mode and fetches up to count of them in rank order.
// Only a failed listing is an error; failed details are skipped.
func (b *Bringer) Bring(ctx context.Context, mode app.Mode, count app.Count) ([]*app.Story, error) {
	if _, err := app.NewCount(int(count)); err != nil {
		return nil, err
	}

	ids, err := b.Gateway.ListIDs(ctx, mode)
	if err != nil {
		return nil, err
	}
	ids = Bound(ids, int(count))

	p := b.Progress
	if p == nil {
		p = progress.Nop{}
	}
	p.Start(len(ids))
	defer p.Finish()

	if b.NWorkers <= 1 || len(ids) <= 1 {
		return b.sequential(ctx, ids, p), nil
	}
	return b.pooled(ctx, ids, p), nil
}

func (b *Bringer) sequential(ctx context.Context, ids []int, p app.Progress) []*app.Story {
	stories := make([]*app.Story, 0, len(ids))
	for _, id := range ids {
		if story := b.fetch(ctx, id); story != nil {
			stories = append(stories, story)
		}
		p.Advance()
	}

	return stories
}

func (b *Bringer) pooled(ctx context.Context, ids []int, p app.Progress) []*app.Story {
	slots := make([]*app.Story, len(ids))
	positions := util.IndicesToChan(len(ids))

	nWorkers := b.NWorkers
	if nWorkers > len(ids) {
		nWorkers = len(ids)
	}

	var wg sync.WaitGroup
	for i := 0; i < nWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range positions {
				slots[pos] = b.fetch(ctx, ids[pos])
				p.Advance()
			}
		}()
	}
	wg.Wait()

	stories := make([]*app.Story, 0, len(ids))
	for _, story := range slots {
		if story != nil {
			stories = append(stories, story)
		}
	}

	return stories
}

// fetch returns nil when the detail could not be had
func (b *Bringer) fetch(ctx context.Context, id int) *app.Story {
	story, err := b.Gateway.FetchDetail(ctx, id)
	if err != nil {
		b.log().WithError(err).WithField("id", id).Debug("skipping story")
		return nil
	}
	return story
}

func (b *Bringer) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

// Bound keeps the first n ids, in order, dropping repeats within them
func Bound(ids []int, n int) []int {
	if n <= 0 {
		return []int{}
	}
	if len(ids) > n {
		ids = ids[:n]
	}

	bounded := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		bounded = append(bounded, id)
	}

	return bounded
}
