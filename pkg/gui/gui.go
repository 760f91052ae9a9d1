// Package gui is the windowed terminal surface of a game session.
package gui

import (
	"bytes"
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
)

const (
	pageGame = "game"
	pageName = "name"
)

type nameResult struct {
	name string
	ok   bool
}

// GUI renders snapshots with tview and records key presses as one-shot
// flags consumed by the game loop.
type GUI struct {
	App *tview.Application

	pages     *tview.Pages
	board     *tview.TextView
	side      *tview.TextView
	status    *tview.TextView
	nameInput *tview.InputField

	latch *event.Latch
	quit  func()

	// Only touched from the tview event loop.
	prompting bool

	state      GameState
	draw       chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
	renderBuf  bytes.Buffer
	renderLock sync.Mutex
}

var _ game.Port = (*GUI)(nil)

// New builds the interface. quit is called when the player asks to leave.
func New(theme Theme, quit func()) *GUI {
	if quit == nil {
		quit = func() {}
	}

	g := &GUI{
		App:   tview.NewApplication(),
		latch: event.NewLatch(),
		draw:  make(chan struct{}, 1),
		done:  make(chan struct{}),
		state: GameState{Theme: theme},
	}
	g.quit = func() {
		quit()
		g.Stop()
	}

	g.board = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)
	g.board.SetDynamicColors(true)

	g.side = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)
	g.side.SetDynamicColors(true)

	g.status = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetText(DefaultStatusText)

	gameGrid := tview.NewGrid().
		SetBorders(false).
		SetRows(game.Height+2, 1, -1).
		SetColumns(1, 2+(game.Width*blockSize), 2, -1).
		AddItem(tview.NewBox(), 0, 0, 2, 1, 0, 0, false).
		AddItem(g.board, 0, 1, 1, 1, 0, 0, false).
		AddItem(tview.NewBox(), 0, 2, 1, 1, 0, 0, false).
		AddItem(g.side, 0, 3, 1, 1, 0, 0, false).
		AddItem(g.status, 1, 1, 1, 3, 0, 0, false)

	g.nameInput = tview.NewInputField().
		SetLabel("Name: ").
		SetFieldWidth(20).
		SetFieldBackgroundColor(tcell.ColorDefault).
		SetLabelColor(theme.Prompt)

	nameGrid := tview.NewGrid().
		SetColumns(-1, 40, -1).
		SetRows(-1, 3, -1).
		AddItem(tview.NewBox(), 0, 0, 1, 3, 0, 0, false).
		AddItem(tview.NewFrame(g.nameInput).
			SetBorders(0, 0, 0, 0, 1, 1).
			AddText("Game over! Enter to save, Esc to skip", true, tview.AlignCenter, theme.Prompt), 1, 1, 1, 1, 0, 0, true).
		AddItem(tview.NewBox(), 2, 0, 1, 3, 0, 0, false)

	g.pages = tview.NewPages().
		AddPage(pageGame, gameGrid, true, true).
		AddPage(pageName, nameGrid, true, false)

	g.App.SetRoot(g.pages, true)
	g.App.SetInputCapture(g.handleKeypress)

	go g.handleDraw()

	return g
}

// Run blocks until the interface is stopped.
func (g *GUI) Run() error {
	return g.App.Run()
}

func (g *GUI) Stop() {
	g.closeOnce.Do(func() {
		close(g.done)
		g.App.Stop()
	})
}

func (g *GUI) Poll() (event.Intent, bool) {
	return g.latch.Poll()
}

// Display stores the snapshot and schedules a redraw without waiting for it.
func (g *GUI) Display(s game.Snapshot) {
	g.renderLock.Lock()
	g.state.Snapshot = s
	g.renderLock.Unlock()

	select {
	case g.draw <- struct{}{}:
	default:
	}
}

func (g *GUI) handleDraw() {
	for {
		select {
		case <-g.done:
			return
		case <-g.draw:
			g.App.QueueUpdateDraw(g.drawAll)
		}
	}
}

func (g *GUI) drawAll() {
	board, side := g.render()
	g.board.SetText(board)
	g.side.SetText(side)
}

func (g *GUI) render() (string, string) {
	g.renderLock.Lock()
	defer g.renderLock.Unlock()

	g.renderBuf.Reset()
	renderBoard(&g.renderBuf, g.state.Snapshot.Board, g.state.Theme)
	board := g.renderBuf.String()

	g.renderBuf.Reset()
	renderSide(&g.renderBuf, &g.state)
	side := g.renderBuf.String()

	return board, side
}

// InputName shows the name prompt and waits for the player to submit or
// dismiss it.
func (g *GUI) InputName(ctx context.Context) (string, bool) {
	result := make(chan nameResult, 1)

	g.App.QueueUpdateDraw(func() {
		g.prompting = true
		g.nameInput.SetText("")
		g.nameInput.SetDoneFunc(func(key tcell.Key) {
			var r nameResult
			switch key {
			case tcell.KeyEnter:
				r = nameResult{name: g.nameInput.GetText(), ok: true}
			case tcell.KeyEscape:
			default:
				return
			}

			select {
			case result <- r:
			default:
			}

			g.prompting = false
			g.pages.HidePage(pageName)
			g.App.SetFocus(g.pages)
		})

		g.pages.ShowPage(pageName)
		g.App.SetFocus(g.nameInput)
	})

	select {
	case r := <-result:
		return r.name, r.ok
	case <-ctx.Done():
		return "", false
	case <-g.done:
		return "", false
	}
}
