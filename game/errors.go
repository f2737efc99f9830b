package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrInvalidSize = errors.New("unsupported board size")
)

// IllegalMoveError is returned when a submitted move is not among the legal
// moves of the player. The board is left untouched.
type IllegalMoveError struct {
	Move   Move
	Player Player
	Reason string
}

func (e *IllegalMoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("illegal move %s for %s", e.Move, e.Player)
	}
	return fmt.Sprintf("illegal move %s for %s: %s", e.Move, e.Player, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func illegal(m Move, p Player, reason string) error {
	return &IllegalMoveError{Move: m, Player: p, Reason: reason}
}
