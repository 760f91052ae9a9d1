package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	cell        = "#"
	newline     = "\r\n"
)

func rgb(code int) []color.Attribute {
	return []color.Attribute{38, 5, color.Attribute(code), 48, 5, color.Attribute(code)}
}

var blockColors = map[mino.Block]*color.Color{
	mino.BlockCyan:    color.New(color.FgCyan, color.BgHiCyan),
	mino.BlockBlue:    color.New(color.FgBlue, color.BgBlue),
	mino.BlockOrange:  color.New(rgb(214)...),
	mino.BlockYellow:  color.New(color.FgYellow, color.BgYellow),
	mino.BlockGreen:   color.New(color.FgGreen, color.BgGreen),
	mino.BlockMagenta: color.New(rgb(90)...),
	mino.BlockRed:     color.New(color.FgRed, color.BgRed),
}

var (
	labelColor = color.New(color.Bold)
	gameOver   = color.New(color.FgRed, color.Bold)
)

// renderFrame writes one frame in raw terminal mode, so lines end in CRLF.
func renderFrame(w io.Writer, s game.Snapshot) {
	var b strings.Builder

	fmt.Fprintf(&b, "Score: %d"+newline+"FPS: %d"+newline, s.Score, s.FPS)
	fmt.Fprintf(&b, "Level: %d  Lines: %d"+newline+newline, s.Difficulty, s.Lines)

	if s.Board != nil {
		border := strings.Repeat(cell, s.Board.W+2)

		b.WriteString(border + newline)
		for y := 0; y < s.Board.H; y++ {
			b.WriteString(cell)
			for x := 0; x < s.Board.W; x++ {
				v := s.Board.Get(x, y)
				if c, ok := blockColors[v]; ok {
					b.WriteString(c.Sprint(cell))
				} else {
					b.WriteRune(' ')
				}
			}
			b.WriteString(cell + newline)
		}
		b.WriteString(border + newline)
	}

	if len(s.HighScores) > 0 {
		b.WriteString(newline + labelColor.Sprint("HIGH SCORES") + newline)
		for _, e := range s.HighScores {
			fmt.Fprintf(&b, "%s | %d"+newline, e.Name, e.Score)
		}
	}

	if s.Ended {
		b.WriteString(newline + gameOver.Sprint("GAME OVER") + newline)
	}

	io.WriteString(w, b.String())
}

// PrintSummary writes the end of session report to a cooked terminal.
func PrintSummary(w io.Writer, res game.Result) {
	fmt.Fprintf(w, "%s %d\n", labelColor.Sprint("Score:"), res.Score)
	fmt.Fprintf(w, "%s %d\n", labelColor.Sprint("Lines:"), res.Lines)
	fmt.Fprintf(w, "%s %d\n", labelColor.Sprint("Level:"), res.Difficulty)

	if res.Saved {
		fmt.Fprintf(w, "Saved as %s\n", color.GreenString(res.Name))
	}

	if len(res.HighScores) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, labelColor.Sprint("HIGH SCORES"))
	for i, e := range res.HighScores {
		line := fmt.Sprintf("%2d. %-16s | %d", i+1, e.Name, e.Score)
		if res.Saved && e.Name == res.Name && e.Score == res.Score {
			line = color.YellowString(line)
		}
		fmt.Fprintln(w, line)
	}
}
