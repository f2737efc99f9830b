package engine

import (
	"errors"
	"fmt"

	"checkers/agent"
	"checkers/game"

	"github.com/rs/zerolog/log"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// TurnState is where an interactive game stands between submissions.
type TurnState int

const (
	AwaitingMove TurnState = iota
	// CapturePending means the piece that just captured must capture again.
	CapturePending
	GameOver
)

func (s TurnState) String() string {
	switch s {
	case AwaitingMove:
		return "awaiting move"
	case CapturePending:
		return "capture pending"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("TurnState(%d)", int(s))
	}
}

// Step reports the result of one submitted leg. Transition is set once the
// leg completed the turn.
type Step struct {
	Leg        game.Leg
	Transition *game.Transition
}

// Record is one leg in the session history.
type Record struct {
	Player game.Player
	Move   game.Move
}

type snapshot struct {
	board   *game.Board
	player  game.Player
	state   TurnState
	pending []game.Move
	turn    game.Transition
	result  game.Result
	records int
}

// Session is a single interactive game fed one leg at a time, with undo.
type Session struct {
	rules      game.Rules
	board      *game.Board
	difficulty agent.Difficulty
	player     game.Player
	state      TurnState
	pending    []game.Move
	turn       game.Transition
	result     game.Result
	records    []Record
	undo       []snapshot
}

func NewSession(size int, rules game.Rules) (*Session, error) {
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	s := &Session{rules: rules, board: board}
	s.Reset()
	return s, nil
}

func (s *Session) Size() int {
	return s.board.Size()
}

func (s *Session) Cell(row, col int) game.Piece {
	return s.board.At(row, col)
}

// Board returns a copy of the position.
func (s *Session) Board() *game.Board {
	return s.board.Copy()
}

func (s *Session) ActivePlayer() game.Player {
	return s.player
}

func (s *Session) State() TurnState {
	return s.state
}

func (s *Session) Result() game.Result {
	return s.result
}

// Difficulty returns the last level set, the zero value if none was.
func (s *Session) Difficulty() agent.Difficulty {
	return s.difficulty
}

// History lists the legs played so far, oldest first.
func (s *Session) History() []Record {
	return append([]Record(nil), s.records...)
}

// ValidMoves returns the moves the active player may submit next. While a
// capture is pending only its continuations are allowed.
func (s *Session) ValidMoves() []game.Move {
	switch s.state {
	case GameOver:
		return nil
	case CapturePending:
		return append([]game.Move(nil), s.pending...)
	default:
		return game.ValidMoves(s.board, s.player, s.rules)
	}
}

// Destinations lists the squares the piece at (row, col) may move to now.
func (s *Session) Destinations(row, col int) []game.Square {
	var squares []game.Square
	for _, m := range s.ValidMoves() {
		if m.FromRow == row && m.FromCol == col {
			squares = append(squares, game.Square{Row: m.ToRow, Col: m.ToCol})
		}
	}
	return squares
}

// Submit plays one leg for the active player. A rejected move leaves the
// session unchanged.
func (s *Session) Submit(move game.Move) (Step, error) {
	if s.state == GameOver {
		return Step{}, game.ErrGameOver
	}
	if !game.Contains(s.ValidMoves(), move) {
		reason := "not among valid moves"
		if s.state == CapturePending {
			reason = "capture must continue"
		}
		return Step{}, &game.IllegalMoveError{Move: move, Player: s.player, Reason: reason}
	}

	s.push()
	leg, err := game.ApplyLeg(s.board, move, s.player, s.rules)
	if err != nil {
		s.pop()
		return Step{}, err
	}
	s.records = append(s.records, Record{Player: s.player, Move: move})
	s.turn.Trajectory = append(s.turn.Trajectory, leg.Move)
	if leg.Captured != nil {
		s.turn.Captured = append(s.turn.Captured, *leg.Captured)
	}
	s.turn.Promoted = s.turn.Promoted || leg.Promoted

	if len(leg.Continuations) > 0 {
		s.state = CapturePending
		s.pending = leg.Continuations
		return Step{Leg: leg}, nil
	}
	tr := s.finishTurn()
	return Step{Leg: leg, Transition: &tr}, nil
}

// PlayTurn asks mover for a whole turn on behalf of the active player. It
// reports false when the mover had nothing to play.
func (s *Session) PlayTurn(mover Mover, chain game.ChainPolicy) (game.Transition, bool, error) {
	if s.state == GameOver {
		return game.Transition{}, false, game.ErrGameOver
	}
	if s.state == CapturePending {
		return game.Transition{}, false, fmt.Errorf("%s must finish the pending capture", s.player)
	}
	legal := s.ValidMoves()
	move, ok := mover.ChooseMove(s.board.Copy(), s.player, legal)
	if !ok {
		return game.Transition{}, false, nil
	}

	s.push()
	tr, err := game.Apply(s.board, move, s.player, s.rules, chain)
	if err != nil {
		s.pop()
		return game.Transition{}, false, err
	}
	for _, m := range tr.Trajectory {
		s.records = append(s.records, Record{Player: s.player, Move: m})
	}
	s.turn = tr
	return s.finishTurn(), true, nil
}

func (s *Session) finishTurn() game.Transition {
	tr := s.turn
	tr.Player = s.player
	tr.Result = game.GameResult(s.board, s.rules)
	tr.Reward = s.rules.Rewards().For(s.player, len(tr.Captured), tr.Promoted, tr.Result)

	s.turn = game.Transition{}
	s.pending = nil
	s.result = tr.Result
	if tr.Terminal() {
		s.state = GameOver
		log.Info().Msgf("game over: %s", tr.Result)
	} else {
		s.state = AwaitingMove
		s.player = s.player.Opponent()
	}
	return tr
}

// Undo reverts the last submitted leg or played turn.
func (s *Session) Undo() error {
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	s.pop()
	return nil
}

// Reset starts a new game on the same board size and clears the history.
func (s *Session) Reset() {
	s.board.Reset()
	s.player = game.Player1
	s.state = AwaitingMove
	s.pending = nil
	s.turn = game.Transition{}
	s.result = game.Ongoing
	s.records = nil
	s.undo = nil
}

// SetPosition starts a game from b with mover to play and clears the history.
func (s *Session) SetPosition(b *game.Board, mover game.Player) error {
	if mover != game.Player1 && mover != game.Player2 {
		return fmt.Errorf("invalid player to move %v", mover)
	}
	s.Reset()
	s.board = b.Copy()
	s.player = mover
	if s.result = game.GameResult(s.board, s.rules); s.result.Terminal() {
		s.state = GameOver
	}
	return nil
}

// SetDifficulty switches to the named level and starts a new game on its board
// size. An unknown name is rejected before anything changes.
func (s *Session) SetDifficulty(name string) error {
	d, err := agent.LookupDifficulty(name)
	if err != nil {
		return err
	}
	if d.BoardSize != s.board.Size() {
		board, err := game.NewBoard(d.BoardSize)
		if err != nil {
			return err
		}
		s.board = board
	}
	s.difficulty = d
	s.Reset()
	log.Info().Msgf("difficulty set to %s on a %dx%d board", d.Name, d.BoardSize, d.BoardSize)
	return nil
}

func (s *Session) push() {
	s.undo = append(s.undo, snapshot{
		board:   s.board.Copy(),
		player:  s.player,
		state:   s.state,
		pending: s.pending,
		turn:    copyTransition(s.turn),
		result:  s.result,
		records: len(s.records),
	})
}

func (s *Session) pop() {
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.board = last.board
	s.player = last.player
	s.state = last.state
	s.pending = last.pending
	s.turn = last.turn
	s.result = last.result
	s.records = s.records[:last.records]
}

func copyTransition(t game.Transition) game.Transition {
	t.Trajectory = append([]game.Move(nil), t.Trajectory...)
	t.Captured = append([]game.Square(nil), t.Captured...)
	return t
}
