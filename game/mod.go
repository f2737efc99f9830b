package game

import "fmt"

// Player identifies a side. Player1 starts on the bottom rows and moves toward row 0.
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// forward is the row direction men of this player advance in.
func (p Player) forward() int {
	if p == Player1 {
		return -1
	}
	return 1
}

func (p Player) String() string {
	return fmt.Sprintf("Player%d", int(p))
}

// Piece is the content of a single cell. The numeric codes are part of the
// persisted state encoding and must not change.
type Piece int8

const (
	Empty Piece = iota
	Man1
	Man2
	King1
	King2
)

const numPieceKinds = 5

// Owner returns the player a piece belongs to, NoPlayer for an empty cell.
func (p Piece) Owner() Player {
	switch p {
	case Man1, King1:
		return Player1
	case Man2, King2:
		return Player2
	default:
		return NoPlayer
	}
}

func (p Piece) IsKing() bool {
	return p == King1 || p == King2
}

func (p Piece) IsMan() bool {
	return p == Man1 || p == Man2
}

// Crowned returns the king of the same owner. Kings are returned unchanged.
func (p Piece) Crowned() Piece {
	switch p {
	case Man1:
		return King1
	case Man2:
		return King2
	default:
		return p
	}
}

func manOf(p Player) Piece {
	if p == Player1 {
		return Man1
	}
	return Man2
}

// Result is the outcome of a position.
type Result int

const (
	Ongoing Result = iota
	Player1Wins
	Player2Wins
	Draw
)

// Winner returns the winning player, or NoPlayer for a draw or an ongoing game.
func (r Result) Winner() Player {
	switch r {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	default:
		return NoPlayer
	}
}

func (r Result) Terminal() bool {
	return r != Ongoing
}

func (r Result) String() string {
	switch r {
	case Player1Wins:
		return "player1"
	case Player2Wins:
		return "player2"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

func winFor(p Player) Result {
	if p == Player1 {
		return Player1Wins
	}
	return Player2Wins
}

// StateHash is a Zobrist hash of a position. Equal hashes do not imply equal
// positions; see StateKey for exact identity.
type StateHash uint64
