package event

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionRotateLeft
	ActionRotateRight
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
)

func (a GameAction) String() string {
	switch a {
	case ActionRotateLeft:
		return "rotate-left"
	case ActionRotateRight:
		return "rotate-right"
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionMoveDown:
		return "move-down"
	default:
		return "unknown"
	}
}
