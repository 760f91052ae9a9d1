package mino

// Block is the value stored in one grid cell. Zero is an empty cell, the
// remaining values identify the piece type that locked into the cell.
type Block int

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockCyan, BlockBlue, BlockOrange, BlockYellow, BlockGreen, BlockMagenta, BlockRed:
		return '█'
	default:
		return '?'
	}
}

// Name returns the color name of the block.
func (b Block) Name() string {
	switch b {
	case BlockNone:
		return "none"
	case BlockCyan:
		return "cyan"
	case BlockBlue:
		return "blue"
	case BlockOrange:
		return "orange"
	case BlockYellow:
		return "yellow"
	case BlockGreen:
		return "green"
	case BlockMagenta:
		return "magenta"
	case BlockRed:
		return "red"
	default:
		return "unknown"
	}
}

const (
	BlockNone Block = iota
	BlockCyan
	BlockBlue
	BlockOrange
	BlockYellow
	BlockGreen
	BlockMagenta
	BlockRed
)

// BlockTypes is the number of distinct non-empty blocks.
const BlockTypes = 7
