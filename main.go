package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/render"
	"checkers/training"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	mode       string
	difficulty string
	episodes   int
	workers    int
	maxMoves   int
	table      string
	store      string
	telemetry  string
	seed       uint64
	opponent   string
	selection  string
	experiment string
	games      int
	human      int
	rules      []game.RuleOption
}

func main() {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "train", "train, play, eval or experiment")
	flag.StringVar(&cfg.difficulty, "difficulty", meta.DIFFICULTY, "difficulty level: easy, medium or hard")
	flag.IntVar(&cfg.episodes, "episodes", meta.EPISODES, "number of training episodes")
	flag.IntVar(&cfg.workers, "workers", meta.GO_ROUTINES, "number of parallel training workers")
	flag.IntVar(&cfg.maxMoves, "max-moves", meta.MAX_MOVES, "move limit per game, reached games are draws")
	flag.StringVar(&cfg.table, "table", meta.TABLE_PATH, "Q-table file")
	flag.StringVar(&cfg.store, "store", "auto", "Q-table store: auto, json or bolt")
	flag.StringVar(&cfg.telemetry, "telemetry", meta.TELEMETRY_DIR, "directory for training telemetry")
	flag.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flag.StringVar(&cfg.opponent, "opponent", "random", "training opponent: random or self")
	flag.StringVar(&cfg.selection, "selection", "greedy", "move selection when exploiting: greedy or ucb")
	flag.StringVar(&cfg.experiment, "experiment", "difficulty", "experiment to run: difficulty or throughput")
	flag.IntVar(&cfg.games, "games", experiments.NumGames, "number of evaluation games")
	flag.IntVar(&cfg.human, "human", 1, "side played by the human in play mode: 1 or 2")
	flyingKings := flag.Bool("flying-kings", false, "kings may land on any empty square past a capture")
	backward := flag.Bool("backward-captures", false, "men may capture backwards")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if *flyingKings {
		cfg.rules = append(cfg.rules, game.WithFlyingKings())
	}
	if *backward {
		cfg.rules = append(cfg.rules, game.WithBackwardMenCaptures())
	}

	switch cfg.mode {
	case "train":
		err = runTraining(cfg)
	case "play":
		err = runPlay(cfg)
	case "eval":
		err = runEvaluation(cfg)
	case "experiment":
		err = runExperiment(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", cfg.mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.mode)
	}
}

// newAgent builds an agent for the configured level and loads its table. A
// corrupt table is reported and replaced by an empty one.
func newAgent(cfg config, player game.Player) (*agent.Agent, agent.Difficulty, error) {
	d, err := agent.LookupDifficulty(cfg.difficulty)
	if err != nil {
		return nil, d, err
	}
	selection, err := agent.ParseSelection(cfg.selection)
	if err != nil {
		return nil, d, err
	}
	a, err := agent.New(player, d.Params, agent.WithSeed(cfg.seed), agent.WithSelection(selection))
	if err != nil {
		return nil, d, err
	}

	store, err := agent.OpenStoreKind(cfg.store, cfg.table)
	if err == nil {
		err = a.LoadFrom(store)
		store.Close()
	}
	switch {
	case errors.Is(err, agent.ErrCorruptTable):
		log.Warn().Err(err).Msg("starting from an empty table")
	case err != nil:
		return nil, d, err
	default:
		log.Info().Msgf("loaded %d states from %s", a.Table().Len(), cfg.table)
	}
	return a, d, nil
}

func saveAgent(cfg config, a *agent.Agent) error {
	store, err := agent.OpenStoreKind(cfg.store, cfg.table)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := a.SaveTo(store); err != nil {
		return err
	}
	log.Info().Msgf("saved %d states to %s", a.Table().Len(), cfg.table)
	return nil
}

func runTraining(cfg config) error {
	learner, d, err := newAgent(cfg, game.Player1)
	if err != nil {
		return err
	}
	var opponent engine.Mover
	switch cfg.opponent {
	case "random":
		opponent = agent.NewRandomPlayer(cfg.seed + 1)
	case "self":
		opponent = learner
	default:
		return errors.New("opponent must be random or self")
	}

	trainer, err := training.NewTrainer(d.BoardSize, game.NewStandardRules(cfg.rules...), learner, opponent,
		training.WithEpisodes(cfg.episodes),
		training.WithMaxMoves(cfg.maxMoves),
		training.WithWorkers(cfg.workers),
		training.WithSeed(cfg.seed))
	if err != nil {
		return err
	}
	records, err := trainer.Run()
	if err != nil {
		return err
	}
	if err := saveAgent(cfg, learner); err != nil {
		return err
	}

	writer, err := metrics.NewWriter(cfg.telemetry, "training")
	if err != nil {
		return err
	}
	if err := writer.WriteEpisodes(records); err != nil {
		return err
	}
	if err := writer.WriteSummary(metrics.Summarize(records)); err != nil {
		return err
	}
	log.Info().Msgf("stored telemetry for run %s in %s", writer.RunID(), writer.Dir())
	return nil
}

func runEvaluation(cfg config) error {
	a, d, err := newAgent(cfg, game.Player1)
	if err != nil {
		return err
	}
	record, err := experiments.Evaluate(a, d.BoardSize, game.NewStandardRules(cfg.rules...), cfg.games, cfg.seed)
	if err != nil {
		return err
	}
	log.Info().Msgf("%d games against a random player: %d wins, %d losses, %d draws (win rate %.3f)",
		record.Games, record.Wins, record.Losses, record.Draws, record.WinRate())
	return nil
}

func runExperiment(cfg config) error {
	var err error
	switch cfg.experiment {
	case "difficulty":
		_, err = experiments.RunDifficultyExperiment(cfg.telemetry, cfg.episodes, cfg.seed)
	case "throughput":
		_, err = experiments.RunThroughputExperiment(cfg.telemetry, cfg.episodes, cfg.seed)
	default:
		err = errors.New("experiment must be difficulty or throughput")
	}
	return err
}

func runPlay(cfg config) error {
	human := game.Player(cfg.human)
	if human != game.Player1 && human != game.Player2 {
		return errors.New("human side must be 1 or 2")
	}
	computer, d, err := newAgent(cfg, human.Opponent())
	if err != nil {
		return err
	}
	computer.SetExplorationRate(0)

	session, err := engine.NewSession(d.BoardSize, game.NewStandardRules(cfg.rules...))
	if err != nil {
		return err
	}
	if err := session.SetDifficulty(d.Name); err != nil {
		return err
	}
	c := newConsole(os.Stdin, os.Stdout, session, computer, human, render.New(os.Stdout))
	return c.run()
}
