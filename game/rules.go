package game

import "fmt"

type Rules interface {
	// FlyingKingCaptures lets a capturing king land on any empty square past the
	// captured piece instead of only the square right behind it.
	FlyingKingCaptures() bool
	// MenCaptureBackward lets men jump in all four directions.
	MenCaptureBackward() bool
	Rewards() RewardTable
}

// RewardTable holds the rewards handed to the mover after a completed turn.
// Magnitudes are tunable; Validate enforces their relative ordering.
type RewardTable struct {
	Step      float64 // Turn without capture or promotion
	Capture   float64 // Per captured piece
	Promotion float64 // Bonus for crowning a man
	Win       float64
	Loss      float64
	Draw      float64
}

func DefaultRewards() RewardTable {
	return RewardTable{
		Step:      0.01,
		Capture:   1,
		Promotion: 2,
		Win:       10,
		Loss:      -10,
		Draw:      0,
	}
}

// Validate checks win > capture+promotion > capture > step > loss.
func (t RewardTable) Validate() error {
	switch {
	case !(t.Win > t.Capture+t.Promotion):
		return fmt.Errorf("win reward %v must exceed capture+promotion %v", t.Win, t.Capture+t.Promotion)
	case !(t.Promotion > 0):
		return fmt.Errorf("promotion bonus %v must be positive", t.Promotion)
	case !(t.Capture > t.Step):
		return fmt.Errorf("capture reward %v must exceed step reward %v", t.Capture, t.Step)
	case !(t.Step > t.Loss):
		return fmt.Errorf("step reward %v must exceed loss reward %v", t.Step, t.Loss)
	case !(t.Draw > t.Loss && t.Draw < t.Win):
		return fmt.Errorf("draw reward %v must lie between loss and win", t.Draw)
	}
	return nil
}

// For computes the mover's reward for a resolved turn.
func (t RewardTable) For(mover Player, captures int, promoted bool, result Result) float64 {
	switch result {
	case Draw:
		return t.Draw
	case Player1Wins, Player2Wins:
		if result.Winner() == mover {
			return t.Win
		}
		return t.Loss
	}

	if captures == 0 && !promoted {
		return t.Step
	}
	reward := t.Capture * float64(captures)
	if promoted {
		reward += t.Promotion
	}
	return reward
}
