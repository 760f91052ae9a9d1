package mino

import (
	"fmt"
	"math/rand"
)

const (
	Rotation0 = 0
	RotationR = 1
	Rotation2 = 2
	RotationL = 3

	RotationStates = 4
)

// PieceSize is the side of the square bounding box every piece occupies.
const PieceSize = 4

type PieceType int

// Piece types share their values with the block a locked piece leaves behind.
const (
	PieceI PieceType = iota + 1
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

func (t PieceType) Block() Block {
	return Block(t)
}

// Pattern is a row-major 4x4 cell pattern.
type Pattern [PieceSize * PieceSize]Block

var basePatterns = map[PieceType]Pattern{
	PieceI: {0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0},
	PieceJ: {0, 0, 0, 0, 2, 0, 0, 0, 2, 2, 2, 0, 0, 0, 0, 0},
	PieceL: {0, 0, 0, 0, 0, 0, 3, 0, 3, 3, 3, 0, 0, 0, 0, 0},
	PieceO: {0, 0, 0, 0, 0, 4, 4, 0, 0, 4, 4, 0, 0, 0, 0, 0},
	PieceS: {0, 0, 0, 0, 0, 5, 5, 0, 5, 5, 0, 0, 0, 0, 0, 0},
	PieceT: {0, 0, 0, 0, 0, 6, 0, 0, 6, 6, 6, 0, 0, 0, 0, 0},
	PieceZ: {0, 0, 0, 0, 7, 7, 0, 0, 0, 7, 7, 0, 0, 0, 0, 0},
}

// rotationIndex maps a local cell index (y*4+x) of a rotated piece to the
// index of the base pattern cell it shows. Rotation R turns the base pattern
// a quarter clockwise.
var rotationIndex = [RotationStates][PieceSize * PieceSize]int{
	Rotation0: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	RotationR: {12, 8, 4, 0, 13, 9, 5, 1, 14, 10, 6, 2, 15, 11, 7, 3},
	Rotation2: {15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	RotationL: {3, 7, 11, 15, 2, 6, 10, 14, 1, 5, 9, 13, 0, 4, 8, 12},
}

// BasePattern returns the unrotated pattern of a piece type.
func BasePattern(t PieceType) Pattern {
	p, ok := basePatterns[t]
	if !ok {
		panic(fmt.Sprintf("unknown piece type %d", t))
	}

	return p
}

// Piece is a falling shape. Its position on the board is owned by the
// engine, the piece only knows its type and rotation.
type Piece struct {
	Type     PieceType
	Rotation int

	base Pattern
}

func NewPiece(t PieceType) *Piece {
	return &Piece{Type: t, base: BasePattern(t)}
}

// RandomPiece picks one of the seven piece types uniformly.
func RandomPiece(r *rand.Rand) *Piece {
	return NewPiece(PieceType(r.Intn(BlockTypes) + 1))
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s/%d", p.Type, p.Rotation)
}

func (p *Piece) RotateRight() {
	p.Rotation = (p.Rotation + 1) % RotationStates
}

func (p *Piece) RotateLeft() {
	p.Rotation = (p.Rotation + RotationStates - 1) % RotationStates
}

// Cell returns the block at local coordinate (x, y) in the current rotation.
func (p *Piece) Cell(x int, y int) Block {
	return p.base[rotationIndex[p.Rotation][I(x, y, PieceSize)]]
}

// Pattern returns the 4x4 pattern of the current rotation.
func (p *Piece) Pattern() Pattern {
	var out Pattern
	for i := range out {
		out[i] = p.base[rotationIndex[p.Rotation][i]]
	}

	return out
}

// Draw writes the piece into g with its bounding box anchored at (x, y).
// Cells falling above or left of the board are dropped.
func (p *Piece) Draw(g *Grid, x int, y int) {
	for ly := 0; ly < PieceSize; ly++ {
		for lx := 0; lx < PieceSize; lx++ {
			b := p.Cell(lx, ly)
			if b == BlockNone {
				continue
			}

			gx, gy := x+lx, y+ly
			if gx < 0 || gy < 0 {
				continue
			}

			g.Set(gx, gy, b)
		}
	}
}

// Collides reports whether the piece anchored at (x, y) leaves the board
// through the left, right or bottom edge or overlaps an occupied cell.
// Cells above the top row are never checked.
func (p *Piece) Collides(g *Grid, x int, y int) bool {
	for ly := 0; ly < PieceSize; ly++ {
		for lx := 0; lx < PieceSize; lx++ {
			if p.Cell(lx, ly) == BlockNone {
				continue
			}

			gx, gy := x+lx, y+ly
			if gx < 0 || gx >= g.W || gy >= g.H {
				return true
			} else if gy < 0 {
				continue
			}

			if g.Get(gx, gy) != BlockNone {
				return true
			}
		}
	}

	return false
}
