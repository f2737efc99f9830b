package agent

import (
	"strings"
	"sync"

	"checkers/game"
)

// SimilarityMemory remembers the best known move per state hash. Unlike the
// QTable it trusts the hash alone, so a collision can return a move learned in
// another state; callers only use it as a hint and check the move is legal.
type SimilarityMemory struct {
	mu          sync.RWMutex
	capacity    int
	maxDistance int
	best        map[game.StateHash]game.Move
	encodings   map[game.StateHash]string
}

// NewSimilarityMemory keeps at most capacity states and suggests moves from
// stored states whose cells differ from the query in at most maxDistance
// squares.
func NewSimilarityMemory(capacity, maxDistance int) *SimilarityMemory {
	return &SimilarityMemory{
		capacity:    capacity,
		maxDistance: maxDistance,
		best:        make(map[game.StateHash]game.Move),
		encodings:   make(map[game.StateHash]string),
	}
}

func (m *SimilarityMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.best)
}

// Store records move as the best action for state. New states are dropped
// once the memory is full; known ones are still updated.
func (m *SimilarityMemory) Store(state game.StateKey, move game.Move) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.best[state.Hash]; !ok && m.capacity > 0 && len(m.best) >= m.capacity {
		return
	}
	m.best[state.Hash] = move
	m.encodings[state.Hash] = state.Encoding
}

// Suggest returns the move stored for the state's hash, or else for the
// nearest stored state, as long as that move is in legal.
func (m *SimilarityMemory) Suggest(state game.StateKey, legal []game.Move) (game.Move, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if move, ok := m.best[state.Hash]; ok && game.Contains(legal, move) {
		return move, true
	}

	var (
		found   bool
		bestMv  game.Move
		bestDst = m.maxDistance + 1
	)
	for hash, encoding := range m.encodings {
		move := m.best[hash]
		if !game.Contains(legal, move) {
			continue
		}
		d, ok := hamming(state.Encoding, encoding)
		if !ok || d >= bestDst {
			continue
		}
		found, bestMv, bestDst = true, move, d
	}
	return bestMv, found
}

// hamming counts differing cells between two encodings of the same board size
// and mover.
func hamming(a, b string) (int, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	i := strings.LastIndexByte(a, '/')
	if i < 0 || a[:i] != b[:i] {
		return 0, false
	}
	d := 0
	for j := i + 1; j < len(a); j++ {
		if a[j] != b[j] {
			d++
		}
	}
	return d, true
}
