package agent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty bundles the board size and learning parameters of a named level.
type Difficulty struct {
	Name      string
	BoardSize int
	Params    Params
}

var difficulties = map[string]Difficulty{
	"easy": {
		Name:      "easy",
		BoardSize: 6,
		Params: Params{
			LearningRate:     0.1,
			DiscountFactor:   0.9,
			ExplorationRate:  0.3,
			ExplorationDecay: 0.999,
			ExplorationFloor: 0.05,
			UCBConstant:      1.0,
		},
	},
	"medium": {
		Name:      "medium",
		BoardSize: 8,
		Params: Params{
			LearningRate:     0.2,
			DiscountFactor:   0.95,
			ExplorationRate:  0.2,
			ExplorationDecay: 0.995,
			ExplorationFloor: 0.02,
			UCBConstant:      1.0,
		},
	},
	"hard": {
		Name:      "hard",
		BoardSize: 8,
		Params: Params{
			LearningRate:     0.3,
			DiscountFactor:   0.99,
			ExplorationRate:  0.1,
			ExplorationDecay: 0.99,
			ExplorationFloor: 0.01,
			UCBConstant:      0.5,
		},
	},
}

// aliases keeps the low/high level names working.
var aliases = map[string]string{
	"low":  "easy",
	"high": "hard",
}

// LookupDifficulty resolves a level name, case-insensitively.
func LookupDifficulty(name string) (Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	d, ok := difficulties[key]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDifficulty, name, strings.Join(DifficultyNames(), ", "))
	}
	return d, nil
}

// DifficultyNames lists the canonical level names, sorted.
func DifficultyNames() []string {
	names := make([]string, 0, len(difficulties))
	for name := range difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
