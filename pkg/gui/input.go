package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

var keybindings = []*Keybinding{
	{r: 'q', a: event.ActionRotateLeft},
	{r: 'Q', a: event.ActionRotateLeft},
	{r: 'e', a: event.ActionRotateRight},
	{r: 'E', a: event.ActionRotateRight},
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'a', a: event.ActionMoveLeft},
	{r: 'A', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'd', a: event.ActionMoveRight},
	{r: 'D', a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionMoveDown},
	{r: 's', a: event.ActionMoveDown},
	{r: 'S', a: event.ActionMoveDown},
}

// actionFor returns the action bound to a key event
func actionFor(ev *tcell.EventKey) event.GameAction {
	k := ev.Key()
	r := ev.Rune()

	for _, bind := range keybindings {
		if (bind.k != 0 && bind.k != k) || (bind.r != 0 && (k != tcell.KeyRune || bind.r != r)) || (bind.m != 0 && bind.m != ev.Modifiers()) {
			continue
		}

		return bind.a
	}

	return event.ActionUnknown
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if g.prompting {
		if ev.Key() == tcell.KeyCtrlC {
			g.quit()
			return nil
		}

		return ev
	}

	if isQuit(ev) {
		g.quit()
		return nil
	}

	if a := actionFor(ev); a != event.ActionUnknown {
		g.latch.Press(a)
	}

	return nil
}
