package experiments

import (
	"checkers/experiments/metrics"
	"checkers/meta"
)

// RunThroughputExperiment trains the same level with an increasing number of
// workers to compare training time and resulting strength.
func RunThroughputExperiment(root string, episodes int, seed uint64) ([]metrics.EvaluationRecord, error) {
	configs := []Config{
		{ID: 1, Difficulty: meta.DIFFICULTY, Episodes: episodes, Workers: 1},
		{ID: 2, Difficulty: meta.DIFFICULTY, Episodes: episodes, Workers: 2},
		{ID: 3, Difficulty: meta.DIFFICULTY, Episodes: episodes, Workers: 4},
		{ID: 4, Difficulty: meta.DIFFICULTY, Episodes: episodes, Workers: 8},
	}
	return runExperiment(root, "throughput", configs, seed)
}
