// Package scores defines the leaderboard consumed by a game session.
package scores

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// DefaultTop is the number of entries shown on the leaderboard.
const DefaultTop = 10

// ErrInvalidEntry is returned when an entry has no name or a negative score.
var ErrInvalidEntry = errors.New("invalid score entry")

type Entry struct {
	Name  string
	Score int
}

func (e Entry) Validate() error {
	if e.Name == "" || e.Score < 0 {
		return ErrInvalidEntry
	}

	return nil
}

// Store persists leaderboard entries. Top returns at most n entries ordered
// by descending score.
type Store interface {
	Add(ctx context.Context, e Entry) error
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Memory keeps entries for the lifetime of the process.
type Memory struct {
	entries []Entry

	sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Add(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}

	m.Lock()
	defer m.Unlock()

	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.Lock()
	defer m.Unlock()

	top := make([]Entry, len(m.entries))
	copy(top, m.entries)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}

	return top, nil
}
