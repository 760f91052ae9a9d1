package event

import "sync"

// Queue holds at most one pending action. The first action pushed wins,
// later pushes are dropped until the pending action is polled.
type Queue struct {
	pending GameAction

	sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push records an action and reports whether it was accepted.
func (q *Queue) Push(a GameAction) bool {
	if a == ActionUnknown {
		return false
	}

	q.Lock()
	defer q.Unlock()

	if q.pending != ActionUnknown {
		return false
	}

	q.pending = a
	return true
}

func (q *Queue) Poll() (Intent, bool) {
	q.Lock()
	defer q.Unlock()

	if q.pending == ActionUnknown {
		return Intent{}, false
	}

	a := q.pending
	q.pending = ActionUnknown

	return IntentFor(a), true
}
