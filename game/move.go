package game

import "fmt"

// Move is a single leg from one square to another. It is comparable and is
// used directly as a key by the value table.
type Move struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// IsJump reports whether the move is a capture leg. Simple moves are always one
// step, so any longer diagonal move jumps a piece.
func (m Move) IsJump() bool {
	return abs(m.ToRow-m.FromRow) >= 2
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.FromRow, m.FromCol, m.ToRow, m.ToCol)
}

// Contains reports whether move is a member of moves.
func Contains(moves []Move, move Move) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}

// Captures filters moves down to jumps.
func Captures(moves []Move) []Move {
	var jumps []Move
	for _, m := range moves {
		if m.IsJump() {
			jumps = append(jumps, m)
		}
	}
	return jumps
}

// Square is a board coordinate.
type Square struct {
	Row int
	Col int
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
