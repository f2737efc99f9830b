package experiments

import (
	"fmt"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
)

// Evaluate plays games between a greedy fork of a and a random opponent. a
// itself is not changed and nothing is learned.
func Evaluate(a *agent.Agent, size int, rules game.Rules, games int, seed uint64) (metrics.EvaluationRecord, error) {
	greedy := a.Fork(seed)
	greedy.SetExplorationRate(0)
	random := agent.NewRandomPlayer(seed + 1)

	first, second := engine.Mover(greedy), engine.Mover(random)
	if a.Player() == game.Player2 {
		first, second = random, greedy
	}
	match, err := engine.NewMatch(size, rules, first, second)
	if err != nil {
		return metrics.EvaluationRecord{}, err
	}

	record := metrics.EvaluationRecord{Games: games, TableStates: a.Table().Len()}
	for i := 0; i < games; i++ {
		res, err := match.Run()
		if err != nil {
			return record, fmt.Errorf("evaluation game %d: %w", i+1, err)
		}
		switch metrics.OutcomeFor(a.Player(), res.Result) {
		case metrics.Win:
			record.Wins++
		case metrics.Loss:
			record.Losses++
		default:
			record.Draws++
		}
	}
	return record, nil
}
