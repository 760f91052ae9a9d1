package console

import "github.com/qnkhuat/tetristerm/pkg/event"

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// decodeKeys translates raw terminal input into game actions. quit is set
// when the input holds Ctrl-C or an Escape that starts no key sequence.
// An escape sequence cut off by the end of b is returned as rest.
func decodeKeys(b []byte) (actions []event.GameAction, quit bool, rest []byte) {
	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case keyCtrlC:
			return actions, true, nil
		case keyEscape:
			if i+1 == len(b) {
				return actions, false, b[i:]
			}
			if b[i+1] != '[' && b[i+1] != 'O' {
				return actions, true, nil
			}
			if i+2 == len(b) {
				return actions, false, b[i:]
			}

			if a := arrowAction(b[i+2]); a != event.ActionUnknown {
				actions = append(actions, a)
			}
			i += 2
		default:
			if a := runeAction(c); a != event.ActionUnknown {
				actions = append(actions, a)
			}
		}
	}

	return actions, false, nil
}

func arrowAction(c byte) event.GameAction {
	switch c {
	case 'B':
		return event.ActionMoveDown
	case 'C':
		return event.ActionMoveRight
	case 'D':
		return event.ActionMoveLeft
	default:
		return event.ActionUnknown
	}
}

func runeAction(c byte) event.GameAction {
	switch c {
	case 'a', 'A':
		return event.ActionMoveLeft
	case 'd', 'D':
		return event.ActionMoveRight
	case 's', 'S':
		return event.ActionMoveDown
	case 'q', 'Q':
		return event.ActionRotateLeft
	case 'e', 'E':
		return event.ActionRotateRight
	default:
		return event.ActionUnknown
	}
}
