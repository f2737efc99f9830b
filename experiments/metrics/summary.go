package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a training run.
type Summary struct {
	RunID                string  `json:"run_id"`
	Episodes             int     `json:"episodes"`
	Wins                 int     `json:"wins"`
	Losses               int     `json:"losses"`
	Draws                int     `json:"draws"`
	Capped               int     `json:"capped"`
	WinRate              float64 `json:"win_rate"`
	MeanReward           float64 `json:"mean_reward"`
	StdReward            float64 `json:"std_reward"`
	MeanMoves            float64 `json:"mean_moves"`
	FinalExplorationRate float64 `json:"final_exploration_rate"`
}

// Summarize computes win rate and reward statistics over records, taken in
// episode order.
func Summarize(records []EpisodeRecord) Summary {
	s := Summary{Episodes: len(records)}
	if len(records) == 0 {
		return s
	}

	rewards := make([]float64, len(records))
	moves := make([]float64, len(records))
	last := records[0]
	for i, r := range records {
		rewards[i] = r.Reward
		moves[i] = float64(r.Moves)
		switch r.Outcome {
		case Win:
			s.Wins++
		case Loss:
			s.Losses++
		default:
			s.Draws++
		}
		if r.Capped {
			s.Capped++
		}
		if r.Episode >= last.Episode {
			last = r
		}
	}

	s.WinRate = float64(s.Wins) / float64(len(records))
	s.MeanMoves = stat.Mean(moves, nil)
	if len(records) > 1 {
		s.MeanReward, s.StdReward = stat.MeanStdDev(rewards, nil)
	} else {
		s.MeanReward = rewards[0]
	}
	s.FinalExplorationRate = last.ExplorationRate
	return s
}

// WinRate is the fraction of wins among records.
func WinRate(records []EpisodeRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	wins := 0
	for _, r := range records {
		if r.Outcome == Win {
			wins++
		}
	}
	return float64(wins) / float64(len(records))
}
