package gui

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// blockSize is the number of terminal columns per board cell
const blockSize = 2

const DefaultStatusText = "A/D or arrows to move, S to drop, Q/E to rotate, Esc to quit"

var (
	renderHLine    = string(tcell.RuneHLine)
	renderVLine    = string(tcell.RuneVLine)
	renderULCorner = string(tcell.RuneULCorner)
	renderURCorner = string(tcell.RuneURCorner)
	renderLLCorner = string(tcell.RuneLLCorner)
	renderLRCorner = string(tcell.RuneLRCorner)
)

// colorTag returns a tview color tag for c
func colorTag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

func writeBorder(buf *bytes.Buffer, left, right string, w int) {
	buf.WriteString(left)
	for x := 0; x < w*blockSize; x++ {
		buf.WriteString(renderHLine)
	}
	buf.WriteString(right)
}

// renderBoard draws the board with a box border, top row first
func renderBoard(buf *bytes.Buffer, g *mino.Grid, t Theme) {
	if g == nil {
		return
	}

	border := colorTag(t.Border)

	buf.WriteString(border)
	writeBorder(buf, renderULCorner, renderURCorner, g.W)
	buf.WriteRune('\n')

	for y := 0; y < g.H; y++ {
		buf.WriteString(border)
		buf.WriteString(renderVLine)

		for x := 0; x < g.W; x++ {
			b := g.Get(x, y)
			if b == mino.BlockNone {
				for k := 0; k < blockSize; k++ {
					buf.WriteRune(' ')
				}
				continue
			}

			buf.WriteString(colorTag(t.BlockColor(b)))
			for k := 0; k < blockSize; k++ {
				buf.WriteRune(b.Rune())
			}
		}

		buf.WriteString(border)
		buf.WriteString(renderVLine)
		buf.WriteRune('\n')
	}

	buf.WriteString(border)
	writeBorder(buf, renderLLCorner, renderLRCorner, g.W)
	buf.WriteString("[-]")
}

// renderSide draws the counters and the leaderboard next to the board
func renderSide(buf *bytes.Buffer, gs *GameState) {
	label := colorTag(gs.Theme.Label)
	value := colorTag(gs.Theme.Value)
	s := gs.Snapshot

	counters := []struct {
		name string
		v    int
	}{
		{"Score", s.Score},
		{"Level", s.Difficulty},
		{"Lines", s.Lines},
		{"FPS", s.FPS},
	}
	for _, c := range counters {
		fmt.Fprintf(buf, "%s%s\n%s%d\n\n", label, c.name, value, c.v)
	}

	if s.Ended {
		fmt.Fprintf(buf, "%sGame over\n\n", colorTag(gs.Theme.Prompt))
	}

	if len(s.HighScores) == 0 {
		buf.WriteString("[-]")
		return
	}

	fmt.Fprintf(buf, "%sHigh scores\n", label)
	for i, e := range s.HighScores {
		fmt.Fprintf(buf, "%s%2d. %-16s | %d\n", value, i+1, tview.Escape(e.Name), e.Score)
	}
	buf.WriteString("[-]")
}
