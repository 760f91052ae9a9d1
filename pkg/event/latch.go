package event

import "sync/atomic"

// Latch keeps one edge-triggered flag per action. Each accessor reports
// whether its action was pressed since the last read and clears the flag.
type Latch struct {
	flags [ActionMoveDown + 1]atomic.Bool
}

func NewLatch() *Latch {
	return &Latch{}
}

func (l *Latch) Press(a GameAction) {
	if a <= ActionUnknown || a > ActionMoveDown {
		return
	}

	l.flags[a].Store(true)
}

func (l *Latch) take(a GameAction) bool {
	return l.flags[a].Swap(false)
}

func (l *Latch) MoveLeft() bool    { return l.take(ActionMoveLeft) }
func (l *Latch) MoveRight() bool   { return l.take(ActionMoveRight) }
func (l *Latch) MoveDown() bool    { return l.take(ActionMoveDown) }
func (l *Latch) RotateLeft() bool  { return l.take(ActionRotateLeft) }
func (l *Latch) RotateRight() bool { return l.take(ActionRotateRight) }

// pollOrder is the priority in which pending presses are delivered.
var pollOrder = [...]GameAction{
	ActionMoveLeft,
	ActionMoveRight,
	ActionMoveDown,
	ActionRotateRight,
	ActionRotateLeft,
}

// Poll delivers one pending action per call. Other pressed actions stay
// pending for the following polls.
func (l *Latch) Poll() (Intent, bool) {
	for _, a := range pollOrder {
		if l.take(a) {
			return IntentFor(a), true
		}
	}

	return Intent{}, false
}
