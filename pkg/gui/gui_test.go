package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/scores"
)

func testBoard() *mino.Grid {
	g := mino.NewGrid(game.Width, game.Height)
	g.Set(0, game.Height-1, mino.BlockCyan)
	g.Set(9, game.Height-1, mino.BlockRed)
	return g
}

func TestRenderBoard(t *testing.T) {
	var buf bytes.Buffer
	renderBoard(&buf, testBoard(), ThemeBasic)

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, game.Height+2)

	assert.Contains(t, lines[0], renderULCorner)
	assert.Contains(t, lines[0], strings.Repeat(renderHLine, game.Width*blockSize))
	assert.Contains(t, lines[len(lines)-1], renderLRCorner)

	bottom := lines[game.Height]
	assert.Contains(t, bottom, colorTag(ThemeBasic.Cyan)+"██")
	assert.Contains(t, bottom, colorTag(ThemeBasic.Red)+"██")
	assert.Equal(t, 2, strings.Count(bottom, renderVLine))

	empty := lines[1]
	assert.Contains(t, empty, renderVLine+strings.Repeat(" ", game.Width*blockSize))
}

func TestRenderBoardNil(t *testing.T) {
	var buf bytes.Buffer
	renderBoard(&buf, nil, ThemeBasic)
	assert.Zero(t, buf.Len())
}

func TestRenderSide(t *testing.T) {
	var buf bytes.Buffer
	gs := &GameState{
		Theme: ThemeMono,
		Snapshot: game.Snapshot{
			Score:      1240,
			Difficulty: 3,
			Lines:      7,
			FPS:        59,
			HighScores: []scores.Entry{{Name: "ann", Score: 5000}, {Name: "bob", Score: 40}},
		},
	}
	renderSide(&buf, gs)

	out := buf.String()
	assert.Contains(t, out, "Score\n"+colorTag(ThemeMono.Value)+"1240")
	assert.Contains(t, out, "Level\n"+colorTag(ThemeMono.Value)+"3")
	assert.Contains(t, out, "Lines\n"+colorTag(ThemeMono.Value)+"7")
	assert.Contains(t, out, "FPS\n"+colorTag(ThemeMono.Value)+"59")
	assert.Contains(t, out, "High scores")
	assert.Contains(t, out, " 1. ann")
	assert.Contains(t, out, "| 5000")
	assert.NotContains(t, out, "Game over")

	buf.Reset()
	gs.Snapshot.HighScores = nil
	gs.Snapshot.Ended = true
	renderSide(&buf, gs)
	assert.NotContains(t, buf.String(), "High scores")
	assert.Contains(t, buf.String(), "Game over")
}

func TestThemeHexRoundTrip(t *testing.T) {
	for _, theme := range Themes {
		imported, err := ImportThemes(theme.Name, []ThemeHex{theme.Hex()})
		require.NoError(t, err)
		assert.Equal(t, theme.Hex(), imported.Hex(), theme.Name)
	}

	_, err := LookupTheme("missing")
	assert.Error(t, err)

	basic, err := LookupTheme("basic")
	require.NoError(t, err)
	assert.Equal(t, "#ffa500", fmtHex(basic.BlockColor(mino.BlockOrange).Hex()))
	assert.Equal(t, "#800080", fmtHex(basic.BlockColor(mino.BlockMagenta).Hex()))
	assert.Equal(t, "#0", fmtHex(basic.BlockColor(mino.BlockNone).Hex()))
}

func TestActionFor(t *testing.T) {
	testCases := []struct {
		ev       *tcell.EventKey
		expected event.GameAction
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), event.ActionMoveLeft},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), event.ActionMoveLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), event.ActionMoveRight},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), event.ActionMoveRight},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), event.ActionMoveDown},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), event.ActionMoveDown},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), event.ActionRotateLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'E', tcell.ModNone), event.ActionRotateRight},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), event.ActionUnknown},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.ActionUnknown},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, actionFor(tc.ev), tc.ev.Name())
	}
}

func TestHandleKeypress(t *testing.T) {
	quits := 0
	g := New(ThemeBasic, func() { quits++ })

	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))
	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone)))

	in, ok := g.Poll()
	require.True(t, ok)
	assert.Equal(t, event.Intent{XChange: -1}, in)

	in, ok = g.Poll()
	require.True(t, ok)
	assert.Equal(t, event.Intent{RotateRight: true}, in)

	_, ok = g.Poll()
	assert.False(t, ok, "key press consumed twice")

	g.prompting = true
	ev := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	assert.Equal(t, ev, g.handleKeypress(ev))
	_, ok = g.Poll()
	assert.False(t, ok, "typing a name moved the piece")

	g.prompting = false
	g.handleKeypress(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, 1, quits)
}

func TestDisplayDoesNotBlock(t *testing.T) {
	g := New(ThemeBasic, nil)
	defer g.Stop()

	for i := 0; i < 10; i++ {
		g.Display(game.Snapshot{Board: testBoard(), Score: i})
	}

	board, side := g.render()
	assert.Contains(t, board, "██")
	assert.Contains(t, side, "9")
}
