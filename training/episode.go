package training

import (
	"fmt"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
)

// seat runs episodes for one worker. It holds the transitions each learning
// side has started but not yet completed.
type seat struct {
	rules    game.Rules
	primary  *agent.Agent
	learners [3]*agent.Agent
	match    *engine.Match
	pending  [3]*agent.Experience
	reward   float64
}

func (t *Trainer) newSeat(learner *agent.Agent, opponent engine.Mover) (*seat, error) {
	s := &seat{rules: t.rules, primary: learner}
	side := learner.Player()
	s.learners[side] = learner
	if o, ok := opponent.(*agent.Agent); ok {
		s.learners[side.Opponent()] = o
	}

	first, second := engine.Mover(learner), opponent
	if side == game.Player2 {
		first, second = opponent, learner
	}
	match, err := engine.NewMatch(t.size, t.rules, first, second,
		engine.WithMaxMoves(t.maxMoves),
		engine.WithObserver(s.observe))
	if err != nil {
		return nil, fmt.Errorf("seat for %v: %w", side, err)
	}
	s.match = match
	return s, nil
}

func (s *seat) play(episode int) (metrics.EpisodeRecord, error) {
	s.pending = [3]*agent.Experience{}
	s.reward = 0

	res, err := s.match.Run()
	if err != nil {
		return metrics.EpisodeRecord{}, err
	}
	s.finish(res.Result)

	return metrics.EpisodeRecord{
		Episode:         episode,
		Reward:          s.reward,
		Outcome:         metrics.OutcomeFor(s.primary.Player(), res.Result),
		ExplorationRate: s.primary.ExplorationRate(),
		Moves:           res.Moves,
		Capped:          res.Capped,
	}, nil
}

// observe completes the mover's previous transition now that it is to move
// again, and starts a new one from this turn.
func (s *seat) observe(turn engine.Turn) {
	p := turn.Player
	if l := s.learners[p]; l != nil {
		if prev := s.pending[p]; prev != nil {
			prev.Next = turn.State
			prev.NextLegal = turn.Legal
			l.Learn(*prev)
		}
		exp := &agent.Experience{
			State:    turn.State,
			Legal:    turn.Legal,
			Action:   turn.Transition.Trajectory[0],
			Reward:   turn.Transition.Reward,
			Terminal: turn.Transition.Terminal(),
		}
		s.credit(p, exp.Reward)
		if exp.Terminal {
			l.Learn(*exp)
			exp = nil
		}
		s.pending[p] = exp
	}
	if turn.Transition.Terminal() {
		s.finish(turn.Transition.Result)
	}
}

// finish closes every open transition with the final result seen from its
// side. A game cut off by the move limit counts as a draw.
func (s *seat) finish(result game.Result) {
	if !result.Terminal() {
		result = game.Draw
	}
	for _, p := range []game.Player{game.Player1, game.Player2} {
		exp := s.pending[p]
		if exp == nil {
			continue
		}
		final := s.rules.Rewards().For(p, 0, false, result)
		exp.Reward += final
		exp.Terminal = true
		s.credit(p, final)
		s.learners[p].Learn(*exp)
		s.pending[p] = nil
	}
}

func (s *seat) credit(p game.Player, reward float64) {
	if p == s.primary.Player() {
		s.reward += reward
	}
}

// decay lowers the exploration rate of every learning side once.
func (s *seat) decay() {
	first, second := s.learners[game.Player1], s.learners[game.Player2]
	if first != nil {
		first.UpdateExplorationRate()
	}
	if second != nil && second != first {
		second.UpdateExplorationRate()
	}
}
