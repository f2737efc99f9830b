package agent

import (
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func TestSimilarityMemory(t *testing.T) {
	b, state, legal := initialPosition(t)

	t.Run("exact hash returns the stored move", func(t *testing.T) {
		m := NewSimilarityMemory(10, 0)
		m.Store(state, legal[2])

		move, ok := m.Suggest(state, legal)

		require.True(t, ok)
		require.Equal(t, legal[2], move)
	})

	t.Run("stored move must be legal", func(t *testing.T) {
		m := NewSimilarityMemory(10, 4)
		m.Store(state, legal[2])

		_, ok := m.Suggest(state, legal[:2])

		require.False(t, ok)
	})

	t.Run("nearby position borrows the move", func(t *testing.T) {
		m := NewSimilarityMemory(10, 2)
		m.Store(state, legal[0])
		near := b.Copy()
		near.Set(0, 0, game.Empty)

		move, ok := m.Suggest(game.KeyOf(near, game.Player1), legal)
		require.True(t, ok)
		require.Equal(t, legal[0], move)

		_, ok = m.Suggest(game.KeyOf(near, game.Player2), legal)
		require.False(t, ok, "a different mover never matches")
	})

	t.Run("distant position gets nothing", func(t *testing.T) {
		m := NewSimilarityMemory(10, 1)
		m.Store(state, legal[0])
		far := b.Copy()
		far.Set(0, 0, game.Empty)
		far.Set(0, 2, game.Empty)

		_, ok := m.Suggest(game.KeyOf(far, game.Player1), legal)

		require.False(t, ok)
	})

	t.Run("full memory keeps updating known states only", func(t *testing.T) {
		m := NewSimilarityMemory(1, 0)
		m.Store(state, legal[0])
		m.Store(game.KeyOf(b, game.Player2), legal[1])
		m.Store(state, legal[3])

		require.Equal(t, 1, m.Len())
		move, ok := m.Suggest(state, legal)
		require.True(t, ok)
		require.Equal(t, legal[3], move)
	})

	t.Run("agent consults memory for unknown states", func(t *testing.T) {
		m := NewSimilarityMemory(10, 0)
		m.Store(state, legal[4])
		a := newTestAgent(t, WithSimilarity(m))

		move, ok := a.ChooseAction(state, legal)

		require.True(t, ok)
		require.Equal(t, legal[4], move)
	})
}

func TestRandomPlayer(t *testing.T) {
	b, _, legal := initialPosition(t)
	p := NewRandomPlayer(1)

	_, ok := p.ChooseMove(b, game.Player1, nil)
	require.False(t, ok)

	for i := 0; i < 50; i++ {
		move, ok := p.ChooseMove(b, game.Player1, legal)
		require.True(t, ok)
		require.Contains(t, legal, move)
	}
}
