package metrics

import (
	"sort"
	"sync"

	"checkers/game"
)

type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Draw Outcome = "draw"
)

// OutcomeFor reads a finished game result from p's side.
func OutcomeFor(p game.Player, r game.Result) Outcome {
	switch r.Winner() {
	case p:
		return Win
	case game.NoPlayer:
		return Draw
	default:
		return Loss
	}
}

// EpisodeRecord is the telemetry of one training episode.
type EpisodeRecord struct {
	Episode         int
	Reward          float64
	Outcome         Outcome
	ExplorationRate float64
	Moves           int
	Capped          bool
}

type Collector interface {
	Add(record EpisodeRecord)
	Records() []EpisodeRecord
}

type collector struct {
	mu      sync.Mutex
	records []EpisodeRecord
}

// NewCollector keeps every record in memory. Safe for concurrent use.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Add(record EpisodeRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
}

// Records returns the records ordered by episode.
func (c *collector) Records() []EpisodeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := append([]EpisodeRecord(nil), c.records...)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Episode < records[j].Episode })
	return records
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Add(record EpisodeRecord) {}
func (c *dummyCollector) Records() []EpisodeRecord { return nil }
