package mino

import (
	"fmt"
	"strings"
)

// Grid is the row-major cell store of a board. It has no behavior beyond
// reading, writing and copying cells. Out of range access panics.
type Grid struct {
	W int // Width
	H int // Height

	cells []Block
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

// NewGrid returns an empty grid of the given size.
func NewGrid(w int, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("invalid grid size %dx%d", w, h))
	}

	return &Grid{W: w, H: h, cells: make([]Block, w*h)}
}

// NewGridFrom wraps an existing row-major cell buffer. The buffer must hold
// exactly w*h cells.
func NewGridFrom(w int, h int, cells []Block) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("invalid grid size %dx%d", w, h))
	} else if len(cells) != w*h {
		panic(fmt.Sprintf("grid buffer holds %d cells, want %d", len(cells), w*h))
	}

	return &Grid{W: w, H: h, cells: cells}
}

func (g *Grid) Get(x int, y int) Block {
	return g.cells[I(x, y, g.W)]
}

func (g *Grid) Set(x int, y int, b Block) {
	g.cells[I(x, y, g.W)] = b
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Block, len(g.cells))
	copy(cells, g.cells)

	return &Grid{W: g.W, H: g.H, cells: cells}
}

// Cells returns a copy of the row-major cell buffer.
func (g *Grid) Cells() []Block {
	cells := make([]Block, len(g.cells))
	copy(cells, g.cells)

	return cells
}

func (g *Grid) Render() string {
	var b strings.Builder

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			b.WriteRune(g.Get(x, y).Rune())
		}

		if y == g.H-1 {
			break
		}

		b.WriteRune('\n')
	}

	return b.String()
}
