package experiments

import (
	"fmt"
	"time"

	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/training"

	"github.com/rs/zerolog/log"
)

// NumGames is the number of evaluation games per config.
const NumGames = 30

// Config describes one agent to train and evaluate.
type Config struct {
	ID         int
	Difficulty string
	Episodes   int
	Workers    int
}

// RunDifficultyExperiment trains one agent per difficulty level against a
// random opponent and evaluates each greedily against the same opponent.
func RunDifficultyExperiment(root string, episodes int, seed uint64) ([]metrics.EvaluationRecord, error) {
	var configs []Config
	for i, name := range agent.DifficultyNames() {
		configs = append(configs, Config{ID: i + 1, Difficulty: name, Episodes: episodes, Workers: 1})
	}
	return runExperiment(root, "difficulty", configs, seed)
}

func runExperiment(root, name string, configs []Config, seed uint64) ([]metrics.EvaluationRecord, error) {
	log.Info().Msgf("starting %s experiment...", name)

	records := make([]metrics.EvaluationRecord, 0, len(configs))
	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		record, err := runConfig(config, seed+uint64(ci))
		if err != nil {
			return nil, fmt.Errorf("%s experiment config %d: %w", name, config.ID, err)
		}
		records = append(records, record)

		log.Info().Msgf("completed config %d of %d with win rate %.3f", ci+1, len(configs), record.WinRate())
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteEvaluations(records)
	if err != nil {
		return nil, fmt.Errorf("failed to store evaluations: %w", err)
	}
	log.Info().Msgf("stored evaluations in %s", writer.Dir())
	return records, nil
}

func runConfig(config Config, seed uint64) (metrics.EvaluationRecord, error) {
	d, err := agent.LookupDifficulty(config.Difficulty)
	if err != nil {
		return metrics.EvaluationRecord{}, err
	}
	learner, err := agent.New(game.Player1, d.Params, agent.WithSeed(seed))
	if err != nil {
		return metrics.EvaluationRecord{}, err
	}
	rules := game.NewStandardRules()
	trainer, err := training.NewTrainer(d.BoardSize, rules, learner, agent.NewRandomPlayer(seed+1),
		training.WithEpisodes(config.Episodes),
		training.WithWorkers(config.Workers),
		training.WithSeed(seed),
		training.WithProgress(0))
	if err != nil {
		return metrics.EvaluationRecord{}, err
	}

	start := time.Now()
	if _, err := trainer.Run(); err != nil {
		return metrics.EvaluationRecord{}, err
	}
	elapsed := time.Since(start)

	record, err := Evaluate(learner, d.BoardSize, rules, NumGames, seed+2)
	if err != nil {
		return metrics.EvaluationRecord{}, err
	}
	record.ID = config.ID
	record.Difficulty = d.Name
	record.Workers = config.Workers
	record.TrainingEpisodes = config.Episodes
	record.TrainingTime = elapsed
	return record, nil
}
