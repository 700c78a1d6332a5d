package planner

import (
	"context"
	"sync"
	"time"

	"github.com/pkordes/tripjournal/internal/handler/gen"
	"github.com/pkordes/tripjournal/internal/slug"
)

// DefaultQuietPeriod is how long input must stay unchanged before a check is sent.
const DefaultQuietPeriod = 350 * time.Millisecond

const slugCheckTimeout = 10 * time.Second

// SlugState is what the form should show next to the slug field.
type SlugState int

const (
	// SlugUnknown means the check failed; submitting is still allowed.
	SlugUnknown SlugState = iota
	SlugAvailable
	SlugTaken
	// SlugInvalid means the input normalizes to an empty slug.
	SlugInvalid
)

func (s SlugState) String() string {
	switch s {
	case SlugAvailable:
		return "available"
	case SlugTaken:
		return "taken"
	case SlugInvalid:
		return "invalid"
	}
	return "unknown"
}

// SlugResult is the outcome of checking one normalized slug.
type SlugResult struct {
	Slug  string
	State SlugState
}

// SlugAPI is the availability endpoint the checker calls.
type SlugAPI interface {
	CheckSlug(ctx context.Context, slug string) (gen.CheckSlugResponse, error)
}

// SlugChecker checks slug availability as the user types. Input is
// debounced, a newer input cancels the check in flight, and a result is only
// delivered while its slug is still the latest input.
type SlugChecker struct {
	api   SlugAPI
	quiet time.Duration
	out   chan SlugResult

	mu       sync.Mutex
	seq      uint64
	timer    *time.Timer
	inflight context.CancelFunc
	closed   bool
}

// NewSlugChecker returns a checker. quiet <= 0 means DefaultQuietPeriod.
func NewSlugChecker(a SlugAPI, quiet time.Duration) *SlugChecker {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &SlugChecker{api: a, quiet: quiet, out: make(chan SlugResult, 1)}
}

// Results delivers check outcomes. Only the newest undelivered result is
// kept; the channel is closed by Close.
func (c *SlugChecker) Results() <-chan SlugResult {
	return c.out
}

// Update records new input and schedules a check after the quiet period.
func (c *SlugChecker) Update(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.seq++
	c.stopLocked()

	normalized := slug.Normalize(raw)
	if normalized == "" {
		c.deliverLocked(SlugResult{State: SlugInvalid})
		return
	}

	seq := c.seq
	c.timer = time.AfterFunc(c.quiet, func() { c.run(seq, normalized) })
}

// Close stops pending work and closes Results.
func (c *SlugChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.seq++
	c.stopLocked()
	close(c.out)
}

func (c *SlugChecker) run(seq uint64, s string) {
	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), slugCheckTimeout)
	c.inflight = cancel
	c.mu.Unlock()

	res, err := c.api.CheckSlug(ctx, s)
	cancel()

	state := SlugUnknown
	if err == nil {
		state = SlugTaken
		if res.Available {
			state = SlugAvailable
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.closed {
		return
	}
	c.inflight = nil
	c.deliverLocked(SlugResult{Slug: s, State: state})
}

// stopLocked cancels the pending timer and any check in flight.
func (c *SlugChecker) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
}

// deliverLocked replaces any unread result with r.
func (c *SlugChecker) deliverLocked(r SlugResult) {
	select {
	case <-c.out:
	default:
	}
	c.out <- r
}
