package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name    string      `json:"name"`
	Border  tcell.Color `json:"border"`
	Label   tcell.Color `json:"label"`
	Value   tcell.Color `json:"value"`
	Prompt  tcell.Color `json:"prompt"`
	Cyan    tcell.Color `json:"cyan"`
	Blue    tcell.Color `json:"blue"`
	Orange  tcell.Color `json:"orange"`
	Yellow  tcell.Color `json:"yellow"`
	Green   tcell.Color `json:"green"`
	Magenta tcell.Color `json:"magenta"`
	Red     tcell.Color `json:"red"`
}

// ThemeHex is used for dynamically coloring the UI
type ThemeHex struct {
	Name    string `json:"name"`
	Border  string `json:"border"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Prompt  string `json:"prompt"`
	Cyan    string `json:"cyan"`
	Blue    string `json:"blue"`
	Orange  string `json:"orange"`
	Yellow  string `json:"yellow"`
	Green   string `json:"green"`
	Magenta string `json:"magenta"`
	Red     string `json:"red"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Border.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Value.Hex()),
		fmtHex(t.Prompt.Hex()),
		fmtHex(t.Cyan.Hex()),
		fmtHex(t.Blue.Hex()),
		fmtHex(t.Orange.Hex()),
		fmtHex(t.Yellow.Hex()),
		fmtHex(t.Green.Hex()),
		fmtHex(t.Magenta.Hex()),
		fmtHex(t.Red.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Label),
		tcell.GetColor(t.Value),
		tcell.GetColor(t.Prompt),
		tcell.GetColor(t.Cyan),
		tcell.GetColor(t.Blue),
		tcell.GetColor(t.Orange),
		tcell.GetColor(t.Yellow),
		tcell.GetColor(t.Green),
		tcell.GetColor(t.Magenta),
		tcell.GetColor(t.Red),
	}
}

// BlockColor returns the color a block is drawn with
func (t Theme) BlockColor(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockCyan:
		return t.Cyan
	case mino.BlockBlue:
		return t.Blue
	case mino.BlockOrange:
		return t.Orange
	case mino.BlockYellow:
		return t.Yellow
	case mino.BlockGreen:
		return t.Green
	case mino.BlockMagenta:
		return t.Magenta
	case mino.BlockRed:
		return t.Red
	default:
		return tcell.ColorDefault
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LookupTheme returns one of the built-in themes by name
func LookupTheme(want string) (Theme, error) {
	themes := make([]ThemeHex, 0, len(Themes))
	for _, t := range Themes {
		themes = append(themes, t.Hex())
	}

	return ImportThemes(want, themes)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",                     // Name
	tcell.Color247,              // Border
	tcell.Color247,              // Label
	tcell.ColorDefault,          // Value
	tcell.Color160,              // Prompt
	tcell.ColorAqua,             // Cyan
	tcell.ColorBlue,             // Blue
	tcell.NewHexColor(0xffa500), // Orange
	tcell.ColorYellow,           // Yellow
	tcell.ColorGreen,            // Green
	tcell.NewHexColor(0x800080), // Magenta
	tcell.ColorRed,              // Red
}

// ThemeMono draws every block in shades of grey
var ThemeMono = Theme{
	"mono",             // Name
	tcell.Color240,     // Border
	tcell.Color247,     // Label
	tcell.ColorDefault, // Value
	tcell.Color252,     // Prompt
	tcell.Color255,     // Cyan
	tcell.Color250,     // Blue
	tcell.Color247,     // Orange
	tcell.Color253,     // Yellow
	tcell.Color244,     // Green
	tcell.Color241,     // Magenta
	tcell.Color238,     // Red
}

var Themes = []Theme{ThemeBasic, ThemeMono}
