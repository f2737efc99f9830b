package agent

import (
	"checkers/game"

	"golang.org/x/exp/rand"
)

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) ChooseMove(_ *game.Board, _ game.Player, legal []game.Move) (game.Move, bool) {
	if len(legal) == 0 {
		return game.Move{}, false
	}
	return legal[p.rng.Intn(len(legal))], true
}

// Fork returns a player with its own random source.
func (p *RandomPlayer) Fork(seed uint64) *RandomPlayer {
	return NewRandomPlayer(seed)
}
