package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	rules := NewStandardRules()

	t.Run("simple move relocates the piece and switches nothing else", func(t *testing.T) {
		b, err := NewBoard(6)
		require.NoError(t, err)

		tr, err := Apply(b, Move{4, 0, 3, 1}, Player1, rules, nil)

		require.NoError(t, err)
		require.Equal(t, Empty, b.At(4, 0))
		require.Equal(t, Man1, b.At(3, 1))
		require.Equal(t, []Move{{4, 0, 3, 1}}, tr.Trajectory)
		require.Empty(t, tr.Captured)
		require.Equal(t, rules.Rewards().Step, tr.Reward)
		require.Equal(t, Ongoing, tr.Result)
	})

	t.Run("capture chain is forced within the same turn and ends in promotion", func(t *testing.T) {
		b := mustParse(t, `
			....o.
			...o..
			......
			...o..
			..x...
			......`)

		tr, err := Apply(b, Move{4, 2, 2, 4}, Player1, rules, nil)

		require.NoError(t, err)
		require.Equal(t, []Move{{4, 2, 2, 4}, {2, 4, 0, 2}}, tr.Trajectory)
		require.Equal(t, []Square{{3, 3}, {1, 3}}, tr.Captured)
		require.Equal(t, Empty, b.At(3, 3))
		require.Equal(t, Empty, b.At(1, 3))
		require.Equal(t, King1, b.At(0, 2), "man reaching row 0 reads back as a king")
		require.True(t, tr.Promoted)
		require.Equal(t, 1, b.Count(Player2))
		require.Equal(t, 2*rules.Rewards().Capture+rules.Rewards().Promotion, tr.Reward)
	})

	t.Run("chain policy chooses between continuations", func(t *testing.T) {
		b := mustParse(t, `
			........
			........
			........
			...o.o..
			........
			...o....
			..x.....
			........`)

		var offered []Move
		pickLast := func(_ *Board, options []Move) Move {
			offered = options
			return options[len(options)-1]
		}

		tr, err := Apply(b, Move{6, 2, 4, 4}, Player1, rules, pickLast)

		require.NoError(t, err)
		require.Equal(t, []Move{{4, 4, 2, 2}, {4, 4, 2, 6}}, offered)
		require.Equal(t, []Move{{6, 2, 4, 4}, {4, 4, 2, 6}}, tr.Trajectory)
		require.Equal(t, Man2, b.At(3, 3), "the branch not taken keeps its piece")
		require.Equal(t, Empty, b.At(3, 5))
		require.Equal(t, Man1, b.At(2, 6))
	})

	t.Run("illegal move is rejected and the board is unchanged", func(t *testing.T) {
		b, err := NewBoard(6)
		require.NoError(t, err)
		before := b.Copy()

		_, err = Apply(b, Move{4, 0, 2, 2}, Player1, rules, nil)

		require.ErrorIs(t, err, ErrIllegalMove)
		var illegalErr *IllegalMoveError
		require.ErrorAs(t, err, &illegalErr)
		require.Equal(t, Player1, illegalErr.Player)
		require.True(t, b.Equal(before))
		require.Equal(t, before.Hash(), b.Hash())
	})

	t.Run("moving the opponent's piece is illegal", func(t *testing.T) {
		b, err := NewBoard(6)
		require.NoError(t, err)

		_, err = Apply(b, Move{1, 1, 2, 0}, Player1, rules, nil)

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("simple move is illegal while a capture exists", func(t *testing.T) {
		b := mustParse(t, `
			......
			......
			......
			...o..
			x.x...
			......`)
		before := b.Copy()

		_, err := Apply(b, Move{4, 0, 3, 1}, Player1, rules, nil)

		require.ErrorIs(t, err, ErrIllegalMove)
		require.True(t, b.Equal(before))
	})

	t.Run("capturing the last piece wins", func(t *testing.T) {
		b := mustParse(t, `
			......
			......
			......
			...o..
			..x...
			......`)

		tr, err := Apply(b, Move{4, 2, 2, 4}, Player1, rules, nil)

		require.NoError(t, err)
		require.Equal(t, Player1Wins, tr.Result)
		require.True(t, tr.Terminal())
		require.Equal(t, rules.Rewards().Win, tr.Reward)
	})
}

func TestApplyLeg(t *testing.T) {
	rules := NewStandardRules()

	t.Run("reports continuation captures without resolving them", func(t *testing.T) {
		b := mustParse(t, `
			......
			...o..
			......
			...o..
			..x...
			......`)

		leg, err := ApplyLeg(b, Move{4, 2, 2, 4}, Player1, rules)

		require.NoError(t, err)
		require.Equal(t, &Square{3, 3}, leg.Captured)
		require.Equal(t, Man2, leg.CapturedPiece)
		require.Equal(t, []Move{{2, 4, 0, 2}}, leg.Continuations)
		require.Equal(t, Man2, b.At(1, 3), "continuation is not applied")
	})

	t.Run("men continue forward only unless backward captures are on", func(t *testing.T) {
		layout := `
			......
			......
			......
			......
			..o.o.
			.x....`

		b := mustParse(t, layout)
		leg, err := ApplyLeg(b, Move{5, 1, 3, 3}, Player1, rules)
		require.NoError(t, err)
		require.Empty(t, leg.Continuations)

		b = mustParse(t, layout)
		leg, err = ApplyLeg(b, Move{5, 1, 3, 3}, Player1, NewStandardRules(WithBackwardMenCaptures()))
		require.NoError(t, err)
		require.Equal(t, []Move{{3, 3, 5, 5}}, leg.Continuations)
	})

	t.Run("crowning ends the chain", func(t *testing.T) {
		b := mustParse(t, `
			......
			...o..
			..x...
			.o....
			......
			......`)

		leg, err := ApplyLeg(b, Move{2, 2, 0, 4}, Player1, rules)

		require.NoError(t, err)
		require.True(t, leg.Promoted)
		require.Empty(t, leg.Continuations, "the new king could capture (3,1) but the turn is over")
		require.Equal(t, King1, b.At(0, 4))
	})

	t.Run("player 2 is crowned on the last row", func(t *testing.T) {
		b := mustParse(t, `
			......
			......
			......
			......
			..o...
			......`)

		leg, err := ApplyLeg(b, Move{4, 2, 5, 3}, Player2, rules)

		require.NoError(t, err)
		require.True(t, leg.Promoted)
		require.Equal(t, King2, b.At(5, 3))
	})

	t.Run("kings stay kings", func(t *testing.T) {
		b := mustParse(t, `
			......
			......
			......
			......
			..O...
			......`)

		leg, err := ApplyLeg(b, Move{4, 2, 5, 3}, Player2, rules)

		require.NoError(t, err)
		require.False(t, leg.Promoted)
		require.Equal(t, King2, b.At(5, 3))
	})

	t.Run("rejects non diagonal geometry", func(t *testing.T) {
		b, err := NewBoard(6)
		require.NoError(t, err)

		_, err = ApplyLeg(b, Move{4, 0, 3, 0}, Player1, rules)
		require.ErrorIs(t, err, ErrIllegalMove)

		_, err = ApplyLeg(b, Move{4, 0, 2, 2}, Player1, rules)
		require.ErrorIs(t, err, ErrIllegalMove, "long move without a capture")
	})
}
