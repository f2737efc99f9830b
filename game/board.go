package game

import (
	"fmt"
	"strings"
)

// Board holds the piece layout of an N×N checkers board. It carries no rule
// knowledge; the rules functions read and mutate it through At and Set.
type Board struct {
	size  int
	cells []Piece
	hash  StateHash
}

// NewBoard creates a board of the given size in the initial position.
func NewBoard(size int) (*Board, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	b := &Board{size: size}
	b.initialize()
	return b, nil
}

// EmptyBoard creates a board of the given size with no pieces on it.
func EmptyBoard(size int) (*Board, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{size: size, cells: make([]Piece, size*size)}, nil
}

// ValidSize reports whether a board size is supported.
func ValidSize(size int) bool {
	return size == 6 || size == 8
}

// initialize places size/2-1 rows of men per side on the dark squares nearest
// each side's back rank.
func (b *Board) initialize() {
	b.cells = make([]Piece, b.size*b.size)
	b.hash = 0
	rows := b.size/2 - 1
	for row := 0; row < rows; row++ {
		for col := row % 2; col < b.size; col += 2 {
			b.Set(row, col, Man2)
		}
	}
	for row := b.size - rows; row < b.size; row++ {
		for col := row % 2; col < b.size; col += 2 {
			b.Set(row, col, Man1)
		}
	}
}

// Reset restores the initial position at the current size.
func (b *Board) Reset() {
	b.initialize()
}

// Copy returns an independent snapshot of the board.
func (b *Board) Copy() *Board {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells, hash: b.hash}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Dark reports whether a square is playable.
func (b *Board) Dark(row, col int) bool {
	return (row+col)%2 == 0
}

// At returns the piece on a square, Empty when out of bounds.
func (b *Board) At(row, col int) Piece {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

// Set writes a piece and keeps the hash current.
func (b *Board) Set(row, col int, piece Piece) {
	i := row*b.size + col
	b.hash = StateHash(toggle(uint64(b.hash), i, b.cells[i]))
	b.cells[i] = piece
	b.hash = StateHash(toggle(uint64(b.hash), i, piece))
}

// Hash returns the incrementally maintained Zobrist hash of the cells.
func (b *Board) Hash() StateHash {
	return b.hash
}

// Count returns the number of pieces the player has on the board.
func (b *Board) Count(p Player) int {
	n := 0
	for _, piece := range b.cells {
		if piece.Owner() == p {
			n++
		}
	}
	return n
}

// Pieces returns the squares occupied by the player in row-major order.
func (b *Board) Pieces(p Player) []Square {
	var squares []Square
	for i, piece := range b.cells {
		if piece.Owner() == p {
			squares = append(squares, Square{Row: i / b.size, Col: i % b.size})
		}
	}
	return squares
}

// Cells returns a copy of the raw cell array in row-major order.
func (b *Board) Cells() []Piece {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// Equal reports whether two boards have identical size and cell contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

var pieceGlyphs = map[Piece]byte{
	Empty: '.',
	Man1:  'x',
	Man2:  'o',
	King1: 'X',
	King2: 'O',
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			sb.WriteByte(pieceGlyphs[b.At(row, col)])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from the String layout, one line per row. Blank
// lines and surrounding whitespace are ignored. Mostly useful for tests and
// fixtures.
func ParseBoard(layout string) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	b, err := EmptyBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for row, line := range rows {
		if len(line) != b.size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(line), b.size)
		}
		for col := 0; col < b.size; col++ {
			piece, ok := glyphPiece(line[col])
			if !ok {
				return nil, fmt.Errorf("unknown cell %q at (%d,%d)", line[col], row, col)
			}
			b.Set(row, col, piece)
		}
	}
	return b, nil
}

func glyphPiece(c byte) (Piece, bool) {
	for piece, glyph := range pieceGlyphs {
		if glyph == c {
			return piece, true
		}
	}
	return Empty, false
}
