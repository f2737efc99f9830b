package agent

import (
	"fmt"
	"math"
	"strings"
)

// Selection decides how an exploiting agent ranks its legal moves.
type Selection int

const (
	// Greedy picks the highest value, breaking ties by move order.
	Greedy Selection = iota
	// UCB adds a visit-count bonus so rarely tried moves get revisited.
	UCB
)

func (s Selection) String() string {
	switch s {
	case Greedy:
		return "greedy"
	case UCB:
		return "ucb"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection accepts the names printed by Selection.String.
func ParseSelection(name string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy", "":
		return Greedy, nil
	case "ucb":
		return UCB, nil
	default:
		return Greedy, fmt.Errorf("unknown selection %q", name)
	}
}

type ucb struct {
	c   float64
	lnN float64
}

func newUCB(c float64, totalVisits int) *ucb {
	return &ucb{c: c, lnN: math.Log(float64(totalVisits) + 1)}
}

// UCB = value + c*sqrt(ln(N+1)/(1+n))
func (u ucb) evaluate(value float64, visits int) float64 {
	return value + u.c*math.Sqrt(u.lnN/float64(1+visits))
}

// argmax returns the index of the first maximum.
func argmax(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
