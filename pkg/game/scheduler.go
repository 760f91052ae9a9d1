package game

import (
	"context"
	"time"

	"github.com/qnkhuat/tetristerm/pkg"
)

// Cadence is a repeating action. Its next firing is scheduled after it
// runs, shortened by the time the run took so processing time does not
// accumulate as drift.
type Cadence struct {
	Name     string
	Interval func() time.Duration
	Tick     func()

	// Fired counts completed ticks.
	Fired int

	next     time.Time
	deferred bool
	done     bool
}

// Scheduler runs cadences one at a time on the calling goroutine. Once
// stopped reports true no cadence runs or reschedules again.
type Scheduler struct {
	clock    pkg.Clock
	stopped  func() bool
	cadences []*Cadence
	started  bool
}

func NewScheduler(clock pkg.Clock, stopped func() bool) *Scheduler {
	if clock == nil {
		clock = pkg.WallClock{}
	}
	if stopped == nil {
		stopped = func() bool { return false }
	}

	return &Scheduler{clock: clock, stopped: stopped}
}

// Every registers a cadence. Cadences first fire when the scheduler starts,
// in registration order.
func (s *Scheduler) Every(name string, interval func() time.Duration, tick func()) *Cadence {
	return s.add(&Cadence{Name: name, Interval: interval, Tick: tick})
}

// After registers a cadence whose first firing waits one interval.
func (s *Scheduler) After(name string, interval func() time.Duration, tick func()) *Cadence {
	return s.add(&Cadence{Name: name, Interval: interval, Tick: tick, deferred: true})
}

func (s *Scheduler) add(c *Cadence) *Cadence {
	if s.started {
		c.schedule(s.clock.Now())
	}

	s.cadences = append(s.cadences, c)
	return c
}

func (c *Cadence) schedule(start time.Time) {
	c.next = start
	if c.deferred {
		c.next = start.Add(c.Interval())
	}
}

func (s *Scheduler) Cadence(name string) *Cadence {
	for _, c := range s.cadences {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// Fire runs one tick of the named cadence immediately without changing its
// schedule. It reports whether the tick ran.
func (s *Scheduler) Fire(name string) bool {
	c := s.Cadence(name)
	if c == nil || c.done || s.stopped() {
		return false
	}

	c.Tick()
	c.Fired++
	return true
}

func (s *Scheduler) start() {
	if s.started {
		return
	}

	now := s.clock.Now()
	for _, c := range s.cadences {
		c.schedule(now)
	}
	s.started = true
}

func (s *Scheduler) due() *Cadence {
	var due *Cadence
	for _, c := range s.cadences {
		if c.done {
			continue
		}
		if due == nil || c.next.Before(due.next) {
			due = c
		}
	}

	return due
}

// Step waits for the earliest due cadence and runs it once. It returns
// false when there is nothing left to run.
func (s *Scheduler) Step(ctx context.Context) (bool, error) {
	s.start()

	c := s.due()
	if c == nil || s.stopped() {
		return false, nil
	}

	if wait := c.next.Sub(s.clock.Now()); wait > 0 {
		if err := s.clock.Sleep(ctx, wait); err != nil {
			return false, err
		}
	} else if err := ctx.Err(); err != nil {
		return false, err
	}

	if s.stopped() {
		return false, nil
	}

	start := s.clock.Now()
	c.Tick()
	c.Fired++

	if s.stopped() {
		c.done = true
		return false, nil
	}

	end := s.clock.Now()
	delay := c.Interval() - end.Sub(start)
	if delay < 0 {
		delay = 0
	}
	c.next = end.Add(delay)

	return true, nil
}

// Run steps until the scheduler is stopped or ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		ok, err := s.Step(ctx)
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
	}
}
