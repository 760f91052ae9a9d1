package game

import (
	"context"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/scores"
)

// Snapshot is a read-only view of a session handed to the display.
type Snapshot struct {
	Board      *mino.Grid
	Score      int
	Difficulty int
	Lines      int
	FPS        int
	HighScores []scores.Entry
	Ended      bool
}

// Port is the surface a session renders to and reads player input from.
// Display and Poll run inline in the game loop and must return promptly.
type Port interface {
	event.Source

	Display(s Snapshot)

	// InputName blocks until the player enters a name. It returns false
	// when the player declines or ctx is done.
	InputName(ctx context.Context) (string, bool)
}
