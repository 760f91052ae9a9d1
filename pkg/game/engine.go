package game

import (
	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	Width  = 10
	Height = 24

	// GravityScore is added on every gravity tick.
	GravityScore = 1
)

// Spawn is the anchor of every new piece.
var Spawn = mino.Point{X: 5, Y: 0}

var rowBonus = [...]int{0, 40, 100, 300, 1200}

// RowBonus returns the score for clearing rows in one resolution cycle.
func RowBonus(rows int) int {
	if rows <= 0 {
		return 0
	} else if rows >= len(rowBonus) {
		return rowBonus[len(rowBonus)-1]
	}

	return rowBonus[rows]
}

type Outcome int

const (
	// OutcomeIgnored means the engine had already ended.
	OutcomeIgnored Outcome = iota
	OutcomeMoved
	OutcomeLocked
	OutcomeEnded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeLocked:
		return "locked"
	case OutcomeEnded:
		return "ended"
	default:
		return "ignored"
	}
}

// Move describes the result of one move attempt.
type Move struct {
	Outcome Outcome
	Cleared int
}

// Engine is the single writer of the board and the active piece. It is not
// safe for concurrent use; the scheduler drives it from one goroutine.
type Engine struct {
	Grid  *mino.Grid
	Piece *mino.Piece
	X, Y  int

	Score      int
	Difficulty int
	Lines      int
	Ended      bool

	spawn   func() *mino.Piece
	version uint64
}

// NewEngine returns an engine with an empty board and a first piece taken
// from spawn at the spawn anchor.
func NewEngine(spawn func() *mino.Piece, difficulty int) *Engine {
	if spawn == nil {
		panic("engine requires a piece spawner")
	}
	if difficulty < 0 {
		difficulty = 0
	}

	return &Engine{
		Grid:       mino.NewGrid(Width, Height),
		Piece:      spawn(),
		X:          Spawn.X,
		Y:          Spawn.Y,
		Difficulty: difficulty,
		spawn:      spawn,
	}
}

// Version changes whenever visible state changes.
func (e *Engine) Version() uint64 {
	return e.version
}

func (e *Engine) Apply(in event.Intent) Move {
	return e.TryMove(in.XChange, in.YChange, in.RotateRight, in.RotateLeft)
}

// TryMove attempts a combined horizontal, vertical and rotation move.
// A horizontal move and rotation that collide at the current height are
// rejected together. A vertical collision locks the piece, or ends the game
// when the piece is still on the spawn row.
func (e *Engine) TryMove(xChange int, yChange int, rotateRight bool, rotateLeft bool) Move {
	if e.Ended {
		return Move{Outcome: OutcomeIgnored}
	}

	originalX, originalY := e.X, e.Y
	newX, newY := e.X+xChange, e.Y+yChange

	if rotateRight {
		e.Piece.RotateRight()
	} else if rotateLeft {
		e.Piece.RotateLeft()
	}

	if e.Piece.Collides(e.Grid, newX, originalY) {
		newX = originalX

		if rotateRight {
			e.Piece.RotateLeft()
		} else if rotateLeft {
			e.Piece.RotateRight()
		}
	}

	m := Move{Outcome: OutcomeMoved}
	if e.Piece.Collides(e.Grid, newX, newY) {
		if originalY == 0 {
			e.Ended = true
			e.version++
			return Move{Outcome: OutcomeEnded}
		}

		e.Piece.Draw(e.Grid, originalX, originalY)
		e.Piece = e.spawn()

		newX, newY = Spawn.X, Spawn.Y
		m.Outcome = OutcomeLocked
	}

	e.X, e.Y = newX, newY

	m.Cleared = ClearFullRows(e.Grid)
	e.Lines += m.Cleared
	e.Score += RowBonus(m.Cleared)
	e.version++

	return m
}

// Gravity descends the active piece by one row and adds the gravity score
// unless the descent ended the game.
func (e *Engine) Gravity() Move {
	m := e.TryMove(0, 1, false, false)
	if m.Outcome == OutcomeIgnored || m.Outcome == OutcomeEnded {
		return m
	}

	e.Score += GravityScore
	return m
}

// Escalate raises the difficulty by one.
func (e *Engine) Escalate() {
	if e.Ended {
		return
	}

	e.Difficulty++
	e.version++
}

// Board returns a copy of the board with the active piece drawn in.
func (e *Engine) Board() *mino.Grid {
	g := e.Grid.Clone()
	if !e.Ended {
		e.Piece.Draw(g, e.X, e.Y)
	}

	return g
}

// ClearFullRows removes every full row, shifting the rows above it down,
// and returns the number of rows removed. Rows are scanned from the bottom
// and the scan restarts after each removal.
func ClearFullRows(g *mino.Grid) int {
	cleared := 0

	for {
		y := lowestFullRow(g)
		if y < 0 {
			return cleared
		}

		cleared++
		for x := 0; x < g.W; x++ {
			g.Set(x, y, mino.BlockNone)
		}

		for y2 := y - 1; y2 >= 0; y2-- {
			for x := 0; x < g.W; x++ {
				g.Set(x, y2+1, g.Get(x, y2))
				g.Set(x, y2, mino.BlockNone)
			}
		}
	}
}

func lowestFullRow(g *mino.Grid) int {
	for y := g.H - 1; y >= 0; y-- {
		if rowFull(g, y) {
			return y
		}
	}

	return -1
}

func rowFull(g *mino.Grid, y int) bool {
	for x := 0; x < g.W; x++ {
		if g.Get(x, y) == mino.BlockNone {
			return false
		}
	}

	return true
}
