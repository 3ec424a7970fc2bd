// Package progress reports how far a batch of story fetches has got.
package progress

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Bar draws a progress bar on a terminal. Drawing errors are swallowed.
type Bar struct {
	W           io.Writer
	Description string
	Colors      bool

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewBar makes a Bar drawing on w
func NewBar(w io.Writer, description string, colors bool) *Bar {
	return &Bar{W: w, Description: description, Colors: colors}
}

// Start begins a bar of total steps
func (b *Bar) Start(total int) {
	theme := progressbar.Theme{Saucer: "#", SaucerHead: ">", SaucerPadding: "-", BarStart: "[", BarEnd: "]"}
	if b.Colors {
		theme = progressbar.Theme{Saucer: "[cyan]#[reset]", SaucerHead: "[cyan]>[reset]", SaucerPadding: "-", BarStart: "[", BarEnd: "]"}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.W),
		progressbar.OptionSetDescription(b.Description),
		progressbar.OptionEnableColorCodes(b.Colors),
		progressbar.OptionSetTheme(theme),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar = bar
}

// Advance moves the bar one step
func (b *Bar) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	_ = b.bar.Add(1)
}

// Finish completes and clears the bar
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}

// Nop reports nothing
type Nop struct{}

// Start does nothing
func (Nop) Start(int) {}

// Advance does nothing
func (Nop) Advance() {}

// Finish does nothing
func (Nop) Finish() {}

// Counter records calls, for callers that want totals instead of a drawing
type Counter struct {
	mu       sync.Mutex
	total    int
	advanced int
	finished int
}

// Start records total
func (c *Counter) Start(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = total
}

// Advance counts one step
func (c *Counter) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanced++
}

// Finish counts one finish
func (c *Counter) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished++
}

// Counts returns total, advances and finishes so far
func (c *Counter) Counts() (total, advanced, finished int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, c.advanced, c.finished
}
