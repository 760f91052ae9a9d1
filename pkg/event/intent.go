package event

// Intent is one move attempt requested by the player. The horizontal,
// vertical and rotation parts are independent and applied together.
type Intent struct {
	XChange     int
	YChange     int
	RotateRight bool
	RotateLeft  bool
}

// Empty reports whether the intent requests nothing.
func (i Intent) Empty() bool {
	return i == Intent{}
}

// IntentFor translates a single action into the move it requests.
func IntentFor(a GameAction) Intent {
	switch a {
	case ActionRotateLeft:
		return Intent{RotateLeft: true}
	case ActionRotateRight:
		return Intent{RotateRight: true}
	case ActionMoveLeft:
		return Intent{XChange: -1}
	case ActionMoveRight:
		return Intent{XChange: 1}
	case ActionMoveDown:
		return Intent{YChange: 1}
	default:
		return Intent{}
	}
}

// Source delivers pending intents to the game loop. Poll must not block.
type Source interface {
	Poll() (Intent, bool)
}
