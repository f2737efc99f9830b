package agent

import (
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		LearningRate:     0.5,
		DiscountFactor:   0.9,
		ExplorationRate:  0,
		ExplorationDecay: 0.5,
		ExplorationFloor: 0.1,
		UCBConstant:      1,
	}
}

func newTestAgent(t *testing.T, options ...Option) *Agent {
	t.Helper()
	a, err := New(game.Player1, testParams(), options...)
	require.NoError(t, err)
	return a
}

func initialPosition(t *testing.T) (*game.Board, game.StateKey, []game.Move) {
	t.Helper()
	b, err := game.NewBoard(6)
	require.NoError(t, err)
	return b, game.KeyOf(b, game.Player1), game.ValidMoves(b, game.Player1, game.NewStandardRules())
}

func TestNew(t *testing.T) {
	t.Run("rejects invalid params", func(t *testing.T) {
		params := testParams()
		params.LearningRate = 0
		_, err := New(game.Player1, params)
		require.Error(t, err)

		params = testParams()
		params.DiscountFactor = 1.5
		_, err = New(game.Player1, params)
		require.Error(t, err)
	})

	t.Run("rejects a missing player", func(t *testing.T) {
		_, err := New(game.NoPlayer, testParams())
		require.Error(t, err)
	})

	t.Run("shares a provided table", func(t *testing.T) {
		table := NewQTable(0)
		a := newTestAgent(t, WithTable(table))
		require.Same(t, table, a.Table())
	})
}

func TestChooseAction(t *testing.T) {
	t.Run("empty legal list yields no move", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, _ := initialPosition(t)

		_, ok := a.ChooseAction(state, nil)

		require.False(t, ok)
	})

	t.Run("untrained agent exploits the first legal move", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)

		move, ok := a.ChooseAction(state, legal)

		require.True(t, ok)
		require.Equal(t, legal[0], move)
	})

	t.Run("exploration only ever returns legal moves", func(t *testing.T) {
		a := newTestAgent(t, WithSeed(3))
		a.SetExplorationRate(1)
		_, state, legal := initialPosition(t)

		seen := map[game.Move]bool{}
		for i := 0; i < 200; i++ {
			move, ok := a.ChooseAction(state, legal)
			require.True(t, ok)
			require.Contains(t, legal, move)
			seen[move] = true
		}
		require.Len(t, seen, len(legal))
	})

	t.Run("mixed list is narrowed to captures", func(t *testing.T) {
		a := newTestAgent(t, WithSeed(5))
		a.SetExplorationRate(1)
		_, state, _ := initialPosition(t)
		jump := game.Move{FromRow: 4, FromCol: 2, ToRow: 2, ToCol: 4}
		legal := []game.Move{{FromRow: 4, FromCol: 0, ToRow: 3, ToCol: 1}, jump}

		for i := 0; i < 20; i++ {
			move, ok := a.ChooseAction(state, legal)
			require.True(t, ok)
			require.Equal(t, jump, move)
		}
	})

	t.Run("greedy picks the highest value", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)
		require.True(t, a.Learn(Experience{State: state, Legal: legal, Action: legal[2], Reward: 1, Terminal: true}))

		move, ok := a.ChooseAction(state, legal)

		require.True(t, ok)
		require.Equal(t, legal[2], move)
	})

	t.Run("ucb favours an unvisited move over a slightly better visited one", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)
		legal = legal[:2]
		for i := 0; i < 3; i++ {
			a.Learn(Experience{State: state, Legal: legal, Action: legal[0], Reward: 0.1, Terminal: true})
		}

		greedy, _ := a.ChooseActionWith(state, legal, Greedy)
		ucbMove, _ := a.ChooseActionWith(state, legal, UCB)

		require.Equal(t, legal[0], greedy)
		require.Equal(t, legal[1], ucbMove)
	})
}

func TestLearn(t *testing.T) {
	t.Run("terminal update moves toward the reward", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)

		require.True(t, a.Learn(Experience{State: state, Legal: legal, Action: legal[1], Reward: 1, Terminal: true}))

		require.InDelta(t, 0.5, a.Table().Value(state, legal[1]), 1e-9)
		require.Equal(t, 1, a.Table().Visits(state, legal[1]))
		require.Equal(t, 1, a.Table().Len())
	})

	t.Run("non-terminal update bootstraps from the best next value", func(t *testing.T) {
		a := newTestAgent(t)
		b, state, legal := initialPosition(t)
		rules := game.NewStandardRules()
		_, err := game.Apply(b, legal[0], game.Player1, rules, nil)
		require.NoError(t, err)
		next := game.KeyOf(b, game.Player1)
		nextLegal := game.ValidMoves(b, game.Player1, rules)
		a.Learn(Experience{State: next, Legal: nextLegal, Action: nextLegal[0], Reward: 2, Terminal: true})
		require.InDelta(t, 1.0, a.Table().Value(next, nextLegal[0]), 1e-9)

		a.Learn(Experience{State: state, Legal: legal, Action: legal[0], Reward: 0, Next: next, NextLegal: nextLegal})

		require.InDelta(t, 0.5*0.9*1.0, a.Table().Value(state, legal[0]), 1e-9)
	})

	t.Run("terminal experience ignores the next state", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)
		a.Learn(Experience{State: state, Legal: legal, Action: legal[0], Reward: 4, Terminal: true})

		a.Learn(Experience{State: state, Legal: legal, Action: legal[1], Reward: 0, Next: state, NextLegal: legal, Terminal: true})

		require.InDelta(t, 0, a.Table().Value(state, legal[1]), 1e-9)
	})

	t.Run("action outside the legal list is ignored", func(t *testing.T) {
		a := newTestAgent(t)
		_, state, legal := initialPosition(t)

		learned := a.Learn(Experience{State: state, Legal: legal, Action: game.Move{FromRow: 0, FromCol: 0, ToRow: 5, ToCol: 5}, Reward: 1, Terminal: true})

		require.False(t, learned)
		require.Zero(t, a.Table().Len())
	})

	t.Run("unseen entries read as the initial value", func(t *testing.T) {
		params := testParams()
		params.InitialValue = 0.25
		a, err := New(game.Player1, params)
		require.NoError(t, err)
		_, state, legal := initialPosition(t)

		require.Equal(t, 0.25, a.Table().Value(state, legal[0]))
		a.Learn(Experience{State: state, Legal: legal, Action: legal[0], Reward: 0, Terminal: true})
		require.Equal(t, 0.25, a.Table().Value(state, legal[1]))
		require.InDelta(t, 0.125, a.Table().Value(state, legal[0]), 1e-9)
	})
}

func TestUpdateExplorationRate(t *testing.T) {
	params := testParams()
	params.ExplorationRate = 0.4
	a, err := New(game.Player1, params)
	require.NoError(t, err)

	a.UpdateExplorationRate()
	require.InDelta(t, 0.2, a.ExplorationRate(), 1e-9)
	a.UpdateExplorationRate()
	require.InDelta(t, 0.1, a.ExplorationRate(), 1e-9)
	a.UpdateExplorationRate()
	require.InDelta(t, 0.1, a.ExplorationRate(), 1e-9)
}

func TestFork(t *testing.T) {
	a := newTestAgent(t)
	fork := a.Fork(9)
	_, state, legal := initialPosition(t)

	fork.Learn(Experience{State: state, Legal: legal, Action: legal[3], Reward: 1, Terminal: true})
	fork.SetExplorationRate(0.9)

	require.Equal(t, 1, a.Table().Len())
	require.Equal(t, 0.0, a.ExplorationRate())
	move, _ := a.ChooseAction(state, legal)
	require.Equal(t, legal[3], move)
}

func TestParseSelection(t *testing.T) {
	s, err := ParseSelection("UCB")
	require.NoError(t, err)
	require.Equal(t, UCB, s)

	s, err = ParseSelection("greedy")
	require.NoError(t, err)
	require.Equal(t, Greedy, s)

	_, err = ParseSelection("softmax")
	require.Error(t, err)
}
