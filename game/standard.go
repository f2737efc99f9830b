package game

type StandardRules struct {
	FlyingKings         bool
	BackwardMenCaptures bool
	RewardTable         RewardTable
}

type RuleOption func(sr *StandardRules)

func WithFlyingKings() RuleOption {
	return func(sr *StandardRules) {
		sr.FlyingKings = true
	}
}

func WithBackwardMenCaptures() RuleOption {
	return func(sr *StandardRules) {
		sr.BackwardMenCaptures = true
	}
}

func WithRewards(table RewardTable) RuleOption {
	return func(sr *StandardRules) {
		sr.RewardTable = table
	}
}

// NewStandardRules returns English draughts rules: men move and capture forward,
// kings land right behind the piece they capture.
func NewStandardRules(options ...RuleOption) *StandardRules {
	sr := &StandardRules{
		RewardTable: DefaultRewards(),
	}
	for _, option := range options {
		option(sr)
	}
	return sr
}

func (sr *StandardRules) FlyingKingCaptures() bool {
	return sr.FlyingKings
}

func (sr *StandardRules) MenCaptureBackward() bool {
	return sr.BackwardMenCaptures
}

func (sr *StandardRules) Rewards() RewardTable {
	return sr.RewardTable
}
