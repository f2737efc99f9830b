package engine

import (
	"fmt"

	"checkers/game"

	"github.com/rs/zerolog/log"
)

// Turn describes one completed turn of a Match.
type Turn struct {
	Number     int
	Player     game.Player
	State      game.StateKey
	Legal      []game.Move // game.ValidMoves of State
	Transition game.Transition
}

type MatchResult struct {
	Result game.Result
	Moves  int
	// Capped is set when the move limit ended the game as a draw.
	Capped bool
	// Forfeit is set when a mover had legal moves but returned none.
	Forfeit bool
}

// Match plays full games between two movers on its own board.
type Match struct {
	rules    game.Rules
	board    *game.Board
	movers   [3]Mover
	maxMoves int
	chain    game.ChainPolicy
	observer func(Turn)
}

type MatchOption func(*Match)

func WithMaxMoves(n int) MatchOption {
	return func(m *Match) {
		m.maxMoves = n
	}
}

// WithChainPolicy chooses among continuation captures during a turn.
func WithChainPolicy(policy game.ChainPolicy) MatchOption {
	return func(m *Match) {
		m.chain = policy
	}
}

// WithObserver registers a callback invoked after every turn.
func WithObserver(observer func(Turn)) MatchOption {
	return func(m *Match) {
		m.observer = observer
	}
}

// NewMatch seats first as Player1 and second as Player2.
func NewMatch(size int, rules game.Rules, first, second Mover, options ...MatchOption) (*Match, error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("match needs two movers")
	}
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	m := &Match{
		rules:    rules,
		board:    board,
		maxMoves: MaxMoves,
		chain:    game.FirstCapture,
	}
	m.movers[game.Player1] = first
	m.movers[game.Player2] = second
	for _, option := range options {
		option(m)
	}
	if m.maxMoves <= 0 {
		return nil, fmt.Errorf("move limit must be positive, got %d", m.maxMoves)
	}
	return m, nil
}

// Board returns a copy of the current position.
func (m *Match) Board() *game.Board {
	return m.board.Copy()
}

// Run plays a game from the initial position until it ends or the move limit
// is reached.
func (m *Match) Run() (MatchResult, error) {
	m.board.Reset()
	player := game.Player1
	log.Debug().Msgf("%s is starting on a %dx%d board", player, m.board.Size(), m.board.Size())

	for moves := 0; moves < m.maxMoves; moves++ {
		legal := game.ValidMoves(m.board, player, m.rules)
		if len(legal) == 0 {
			return MatchResult{Result: game.GameResult(m.board, m.rules), Moves: moves}, nil
		}

		var state game.StateKey
		if m.observer != nil {
			state = game.KeyOf(m.board, player)
		}

		move, ok := m.movers[player].ChooseMove(m.board, player, legal)
		if !ok {
			log.Warn().Msgf("%s returned no move with %d legal moves, forfeiting", player, len(legal))
			return MatchResult{Result: winFor(player.Opponent()), Moves: moves, Forfeit: true}, nil
		}
		if !game.Contains(legal, move) {
			log.Warn().Msgf("%s chose illegal move %s, playing %s instead", player, move, legal[0])
			move = legal[0]
		}

		tr, err := game.Apply(m.board, move, player, m.rules, m.chain)
		if err != nil {
			return MatchResult{}, fmt.Errorf("applying %s for %s: %w", move, player, err)
		}
		if m.observer != nil {
			m.observer(Turn{Number: moves + 1, Player: player, State: state, Legal: legal, Transition: tr})
		}
		if tr.Terminal() {
			return MatchResult{Result: tr.Result, Moves: moves + 1}, nil
		}
		player = player.Opponent()
	}

	log.Debug().Msgf("stopped after %d moves without a winner", m.maxMoves)
	return MatchResult{Result: game.Draw, Moves: m.maxMoves, Capped: true}, nil
}

func winFor(p game.Player) game.Result {
	if p == game.Player1 {
		return game.Player1Wins
	}
	return game.Player2Wins
}
