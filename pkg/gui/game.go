package gui

import (
	"github.com/qnkhuat/tetristerm/pkg/game"
)

// GameState encapsulates everything needed to draw a frame
type GameState struct {
	Snapshot game.Snapshot // Latest snapshot from the game loop
	Theme    Theme         // Theme
}
