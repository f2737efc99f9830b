package training

import (
	"errors"
	"fmt"
	"sync"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"

	"github.com/rs/zerolog/log"
)

// Trainer plays episodes between a learning agent and an opponent and feeds
// the agent's completed transitions back into it.
type Trainer struct {
	size     int
	rules    game.Rules
	learner  *agent.Agent
	opponent engine.Mover
	episodes int
	maxMoves int
	workers  int
	progress int
	seed     uint64
	recorder metrics.Collector
}

type Option func(*Trainer)

func WithEpisodes(n int) Option {
	return func(t *Trainer) {
		t.episodes = n
	}
}

func WithMaxMoves(n int) Option {
	return func(t *Trainer) {
		t.maxMoves = n
	}
}

// WithWorkers plays episodes on n goroutines sharing the learner's table.
func WithWorkers(n int) Option {
	return func(t *Trainer) {
		t.workers = n
	}
}

func WithRecorder(c metrics.Collector) Option {
	return func(t *Trainer) {
		t.recorder = c
	}
}

// WithProgress logs a progress line every n episodes; 0 disables it.
func WithProgress(n int) Option {
	return func(t *Trainer) {
		t.progress = n
	}
}

// WithSeed seeds the random sources of forked workers.
func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		t.seed = seed
	}
}

// NewTrainer seats learner on its own side. A nil opponent, or the learner
// itself, means self-play. An opponent that is also an *agent.Agent learns
// from its own side of every game.
func NewTrainer(size int, rules game.Rules, learner *agent.Agent, opponent engine.Mover, options ...Option) (*Trainer, error) {
	if learner == nil {
		return nil, errors.New("trainer needs a learner")
	}
	if !game.ValidSize(size) {
		return nil, fmt.Errorf("%w: %d", game.ErrInvalidSize, size)
	}
	if opponent == nil {
		opponent = learner
	}
	t := &Trainer{
		size:     size,
		rules:    rules,
		learner:  learner,
		opponent: opponent,
		episodes: meta.EPISODES,
		maxMoves: engine.MaxMoves,
		workers:  meta.GO_ROUTINES,
		progress: meta.PROGRESS_INTERVAL,
		seed:     1,
		recorder: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	switch {
	case t.episodes < 0:
		return nil, fmt.Errorf("negative episode count %d", t.episodes)
	case t.maxMoves <= 0:
		return nil, fmt.Errorf("move limit must be positive, got %d", t.maxMoves)
	case t.workers <= 0:
		return nil, fmt.Errorf("worker count must be positive, got %d", t.workers)
	}
	return t, nil
}

// Run plays every episode and returns their records ordered by episode. After
// Run the learner's exploration rate has decayed once per episode.
func (t *Trainer) Run() ([]metrics.EpisodeRecord, error) {
	log.Info().Msgf("training %s for %d episodes on a %dx%d board with %d worker(s)",
		t.learner.Player(), t.episodes, t.size, t.size, t.workers)

	var records []metrics.EpisodeRecord
	var err error
	if t.workers == 1 {
		records, err = t.runSequential()
	} else {
		records, err = t.runParallel()
	}
	if err != nil {
		return nil, err
	}

	summary := metrics.Summarize(records)
	log.Info().Msgf("training done: win rate %.3f, mean reward %.3f, exploration %.4f, %d states",
		summary.WinRate, summary.MeanReward, t.learner.ExplorationRate(), t.learner.Table().Len())
	return records, nil
}

func (t *Trainer) runSequential() ([]metrics.EpisodeRecord, error) {
	s, err := t.newSeat(t.learner, t.opponent)
	if err != nil {
		return nil, err
	}
	records := make([]metrics.EpisodeRecord, 0, t.episodes)
	for i := 1; i <= t.episodes; i++ {
		record, err := s.play(i)
		if err != nil {
			return nil, err
		}
		s.decay()
		t.report(record, records)
		records = append(records, record)
	}
	return records, nil
}

// runParallel hands episode numbers to workers over a channel. Each worker
// owns its board and a fork of the agents, and the forks share their tables.
func (t *Trainer) runParallel() ([]metrics.EpisodeRecord, error) {
	tasks := make(chan int, t.workers)
	results := make(chan metrics.EpisodeRecord, t.workers)
	errs := make(chan error, t.workers)

	seats := make([]*seat, t.workers)
	for w := range seats {
		learner := t.learner.Fork(t.seed + uint64(w)*7919)
		opponent := forkMover(t.opponent, t.learner, learner, t.seed+uint64(w)*104729)
		s, err := t.newSeat(learner, opponent)
		if err != nil {
			return nil, err
		}
		seats[w] = s
	}

	var wg sync.WaitGroup
	for _, s := range seats {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				record, err := s.play(i)
				if err != nil {
					errs <- err
					for range tasks {
					}
					return
				}
				s.decay()
				results <- record
			}
		}()
	}

	go func() {
		for i := 1; i <= t.episodes; i++ {
			tasks <- i
		}
		close(tasks)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := metrics.NewCollector()
	var done []metrics.EpisodeRecord
	for record := range results {
		t.learner.UpdateExplorationRate()
		t.report(record, done)
		done = append(done, record)
		collected.Add(record)
	}

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	return collected.Records(), nil
}

func (t *Trainer) report(record metrics.EpisodeRecord, before []metrics.EpisodeRecord) {
	t.recorder.Add(record)
	n := len(before) + 1
	if t.progress > 0 && n%t.progress == 0 {
		window := append(append([]metrics.EpisodeRecord(nil), before[max(0, n-t.progress):]...), record)
		log.Info().Msgf("episode %d/%d: win rate %.3f over the last %d, exploration %.4f",
			n, t.episodes, metrics.WinRate(window), len(window), record.ExplorationRate)
	}
}

// forkMover gives a worker its own copy of the opponent. Self-play keeps using
// the worker's learner fork.
func forkMover(opponent engine.Mover, parent, learnerFork *agent.Agent, seed uint64) engine.Mover {
	switch o := opponent.(type) {
	case *agent.Agent:
		if o == parent {
			return learnerFork
		}
		return o.Fork(seed)
	case *agent.RandomPlayer:
		return o.Fork(seed)
	default:
		return opponent
	}
}
