package game

import (
	"fmt"
	"strconv"
	"strings"
)

// StateKey identifies a position together with the side to move. Hash is a
// Zobrist hash meant for bucketing; Encoding is exact and settles identity.
type StateKey struct {
	Hash     StateHash
	Encoding string
}

// KeyOf encodes a board and the player to move.
func KeyOf(b *Board, mover Player) StateKey {
	var sb strings.Builder
	sb.Grow(len(b.cells) + 6)
	sb.WriteString(strconv.Itoa(b.size))
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(int(mover)))
	sb.WriteByte('/')
	for _, piece := range b.cells {
		sb.WriteByte(byte('0' + piece))
	}
	return StateKey{
		Hash:     withMover(b.hash, mover),
		Encoding: sb.String(),
	}
}

// ParseKey rebuilds the board and mover from a StateKey encoding.
func ParseKey(encoding string) (*Board, Player, error) {
	parts := strings.Split(encoding, "/")
	if len(parts) != 3 {
		return nil, NoPlayer, fmt.Errorf("malformed state encoding %q", encoding)
	}
	size, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, NoPlayer, fmt.Errorf("malformed board size in %q: %w", encoding, err)
	}
	b, err := EmptyBoard(size)
	if err != nil {
		return nil, NoPlayer, err
	}
	mover, err := strconv.Atoi(parts[1])
	if err != nil || (Player(mover) != Player1 && Player(mover) != Player2) {
		return nil, NoPlayer, fmt.Errorf("malformed mover in %q", encoding)
	}
	cells := parts[2]
	if len(cells) != size*size {
		return nil, NoPlayer, fmt.Errorf("state encoding has %d cells, want %d", len(cells), size*size)
	}
	for i := 0; i < len(cells); i++ {
		if cells[i] < '0' || cells[i] >= '0'+numPieceKinds {
			return nil, NoPlayer, fmt.Errorf("unknown piece code %q in %q", cells[i], encoding)
		}
		b.Set(i/size, i%size, Piece(cells[i]-'0'))
	}
	return b, Player(mover), nil
}
