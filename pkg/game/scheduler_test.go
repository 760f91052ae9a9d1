package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg"
)

var epoch = time.Date(2021, 2, 20, 0, 0, 0, 0, time.UTC)

func TestSchedulerOrder(t *testing.T) {
	clock := pkg.NewManualClock(epoch)
	s := NewScheduler(clock, nil)

	var fired []string
	record := func(name string) func() {
		return func() {
			fired = append(fired, fmt.Sprintf("%s@%d", name, clock.Now().Sub(epoch).Milliseconds()))
		}
	}
	s.Every("a", fixed(10*time.Millisecond), record("a"))
	s.Every("b", fixed(25*time.Millisecond), record("b"))

	for i := 0; i < 9; i++ {
		ok, err := s.Step(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}

	assert.Equal(t, []string{"a@0", "b@0", "a@10", "a@20", "b@25", "a@30", "a@40", "a@50", "b@50"}, fired)
	assert.Equal(t, 6, s.Cadence("a").Fired)
	assert.Equal(t, 3, s.Cadence("b").Fired)
}

func TestSchedulerSubtractsTickDuration(t *testing.T) {
	testCases := []struct {
		work     time.Duration
		expected []int64
	}{
		{0, []int64{0, 10, 20, 30}},
		{4 * time.Millisecond, []int64{0, 10, 20, 30}},
		{15 * time.Millisecond, []int64{0, 15, 30, 45}},
	}

	for _, tc := range testCases {
		clock := pkg.NewManualClock(epoch)
		s := NewScheduler(clock, nil)

		var starts []int64
		s.Every("work", fixed(10*time.Millisecond), func() {
			starts = append(starts, clock.Now().Sub(epoch).Milliseconds())
			clock.Advance(tc.work)
		})

		for i := 0; i < 4; i++ {
			_, err := s.Step(context.Background())
			require.NoError(t, err)
		}

		assert.Equal(t, tc.expected, starts, "work %s", tc.work)
	}
}

func TestSchedulerStops(t *testing.T) {
	clock := pkg.NewManualClock(epoch)

	stopped := false
	s := NewScheduler(clock, func() bool { return stopped })

	ticks := 0
	s.Every("count", fixed(time.Second), func() {
		ticks++
		if ticks == 3 {
			stopped = true
		}
	})
	other := 0
	s.Every("other", fixed(time.Hour), func() { other++ })

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, other)
	assert.Equal(t, epoch.Add(2*time.Second), clock.Now())

	assert.False(t, s.Fire("count"))
	ok, err := s.Step(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, ticks)
}

func TestSchedulerFire(t *testing.T) {
	clock := pkg.NewManualClock(epoch)
	s := NewScheduler(clock, nil)

	ticks := 0
	s.Every("tick", fixed(time.Minute), func() { ticks++ })

	assert.True(t, s.Fire("tick"))
	assert.True(t, s.Fire("tick"))
	assert.False(t, s.Fire("missing"))
	assert.Equal(t, 2, ticks)
	assert.Equal(t, epoch, clock.Now(), "fire moved the clock")
}

func TestSchedulerCancelled(t *testing.T) {
	clock := pkg.NewManualClock(epoch)
	s := NewScheduler(clock, nil)
	s.Every("tick", fixed(time.Second), func() {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestSchedulerEmpty(t *testing.T) {
	s := NewScheduler(pkg.NewManualClock(epoch), nil)
	assert.NoError(t, s.Run(context.Background()))
}

func TestSchedulerAfter(t *testing.T) {
	clock := pkg.NewManualClock(epoch)
	s := NewScheduler(clock, nil)

	var fired []string
	s.Every("now", fixed(time.Hour), func() { fired = append(fired, "now") })
	s.After("later", fixed(time.Second), func() {
		fired = append(fired, "later@"+clock.Now().Sub(epoch).String())
	})

	for i := 0; i < 3; i++ {
		_, err := s.Step(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"now", "later@1s", "later@2s"}, fired)
}
