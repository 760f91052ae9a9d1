package pkg

import (
	"context"
	"sync"
	"time"
)

// Clock is the time source of the game loop. Sleep returns early with the
// context error when ctx is done.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// WallClock reads the system clock.
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}

func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ManualClock is a virtual clock. Time only moves when Sleep or Advance is
// called, which makes cadence timing deterministic in tests.
type ManualClock struct {
	now time.Time

	sync.Mutex
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()

	return c.now
}

func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.Advance(d)
	return nil
}

func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}

	c.Lock()
	c.now = c.now.Add(d)
	c.Unlock()
}
