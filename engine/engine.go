package engine

import (
	"checkers/game"
	"checkers/meta"
)

const MaxMoves = meta.MAX_MOVES

// Mover picks a move for the player to move. It reports false when it has
// nothing to play. Implementations must not modify the board.
type Mover interface {
	ChooseMove(b *game.Board, mover game.Player, legal []game.Move) (game.Move, bool)
}

// MoverFunc adapts a function to Mover.
type MoverFunc func(b *game.Board, mover game.Player, legal []game.Move) (game.Move, bool)

func (f MoverFunc) ChooseMove(b *game.Board, mover game.Player, legal []game.Move) (game.Move, bool) {
	return f(b, mover, legal)
}
