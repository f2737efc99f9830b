package game

import "golang.org/x/exp/rand"

const (
	maxCells    = 64
	zobristSeed = 0x636865636b657273
)

var (
	pieceKeys [maxCells][numPieceKinds]uint64
	moverKeys [3]uint64
)

func init() {
	// Fixed seed: persisted tables and similarity memories rely on hashes being
	// identical across processes.
	rng := rand.New(rand.NewSource(zobristSeed))
	for cell := 0; cell < maxCells; cell++ {
		for kind := 1; kind < numPieceKinds; kind++ {
			pieceKeys[cell][kind] = nonZero(rng)
		}
	}
	moverKeys[Player1] = nonZero(rng)
	moverKeys[Player2] = nonZero(rng)
}

func nonZero(rng *rand.Rand) uint64 {
	v := rng.Uint64()
	for v == 0 {
		v = rng.Uint64()
	}
	return v
}

// toggle XORs the key of (cell, piece) into hash. Empty cells carry no key.
func toggle(hash uint64, cell int, piece Piece) uint64 {
	if piece == Empty {
		return hash
	}
	return hash ^ pieceKeys[cell][piece]
}

// HashCells computes the Zobrist hash of a full cell array from scratch.
func HashCells(cells []Piece) StateHash {
	var h uint64
	for cell, piece := range cells {
		h = toggle(h, cell, piece)
	}
	return StateHash(h)
}

// withMover folds the side to move into a board hash.
func withMover(h StateHash, p Player) StateHash {
	if p != Player1 && p != Player2 {
		return h
	}
	return h ^ StateHash(moverKeys[p])
}
