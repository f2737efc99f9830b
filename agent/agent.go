package agent

import (
	"fmt"
	"math"

	"checkers/game"

	"golang.org/x/exp/rand"
)

// Params are the learning hyperparameters of an Agent.
type Params struct {
	LearningRate     float64
	DiscountFactor   float64
	ExplorationRate  float64
	ExplorationDecay float64
	ExplorationFloor float64
	UCBConstant      float64
	InitialValue     float64
}

func (p Params) Validate() error {
	switch {
	case p.LearningRate <= 0 || p.LearningRate > 1:
		return fmt.Errorf("learning rate %v outside (0, 1]", p.LearningRate)
	case p.DiscountFactor < 0 || p.DiscountFactor > 1:
		return fmt.Errorf("discount factor %v outside [0, 1]", p.DiscountFactor)
	case p.ExplorationRate < 0 || p.ExplorationRate > 1:
		return fmt.Errorf("exploration rate %v outside [0, 1]", p.ExplorationRate)
	case p.ExplorationDecay <= 0 || p.ExplorationDecay > 1:
		return fmt.Errorf("exploration decay %v outside (0, 1]", p.ExplorationDecay)
	case p.ExplorationFloor < 0 || p.ExplorationFloor > 1:
		return fmt.Errorf("exploration floor %v outside [0, 1]", p.ExplorationFloor)
	case p.UCBConstant < 0:
		return fmt.Errorf("negative UCB constant %v", p.UCBConstant)
	}
	return nil
}

// Experience is one completed transition from the agent's point of view:
// the state it acted in, the reward collected until it was to move again, and
// the state it then faced.
type Experience struct {
	State game.StateKey
	// Legal must be game.ValidMoves of State. Learn trusts it to screen
	// Action; engine.Turn.Legal satisfies this.
	Legal  []game.Move
	Action game.Move
	Reward float64
	Next   game.StateKey
	// NextLegal must be game.ValidMoves of Next; the update maximizes over it.
	NextLegal []game.Move
	Terminal  bool
}

type Agent struct {
	player    game.Player
	params    Params
	rate      float64
	table     *QTable
	rng       *rand.Rand
	selection Selection
	memory    *SimilarityMemory
}

type Option func(*Agent)

// WithTable shares an existing table instead of allocating one.
func WithTable(table *QTable) Option {
	return func(a *Agent) {
		a.table = table
	}
}

func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func WithSelection(s Selection) Option {
	return func(a *Agent) {
		a.selection = s
	}
}

// WithSimilarity consults memory for states the table has never seen.
func WithSimilarity(memory *SimilarityMemory) Option {
	return func(a *Agent) {
		a.memory = memory
	}
}

func New(player game.Player, params Params, options ...Option) (*Agent, error) {
	if player != game.Player1 && player != game.Player2 {
		return nil, fmt.Errorf("invalid agent player %v", player)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent params: %w", err)
	}
	a := &Agent{
		player: player,
		params: params,
		rate:   params.ExplorationRate,
	}
	for _, option := range options {
		option(a)
	}
	if a.table == nil {
		a.table = NewQTable(params.InitialValue)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(1))
	}
	return a, nil
}

func (a *Agent) Player() game.Player {
	return a.player
}

func (a *Agent) Params() Params {
	return a.params
}

func (a *Agent) Table() *QTable {
	return a.table
}

func (a *Agent) ExplorationRate() float64 {
	return a.rate
}

// SetExplorationRate overrides the current rate, clamped to [0, 1].
func (a *Agent) SetExplorationRate(rate float64) {
	a.rate = math.Max(0, math.Min(1, rate))
}

// Fork returns an agent with its own random source and exploration rate that
// shares the table and similarity memory of a.
func (a *Agent) Fork(seed uint64) *Agent {
	fork := *a
	fork.rng = rand.New(rand.NewSource(seed))
	return &fork
}

// ChooseMove adapts the agent to a board position for the given mover.
func (a *Agent) ChooseMove(b *game.Board, mover game.Player, legal []game.Move) (game.Move, bool) {
	return a.ChooseAction(game.KeyOf(b, mover), legal)
}

// ChooseAction picks one of legal with the agent's configured selection. It
// returns false when legal is empty.
func (a *Agent) ChooseAction(state game.StateKey, legal []game.Move) (game.Move, bool) {
	return a.ChooseActionWith(state, legal, a.selection)
}

func (a *Agent) ChooseActionWith(state game.StateKey, legal []game.Move, selection Selection) (game.Move, bool) {
	if len(legal) == 0 {
		return game.Move{}, false
	}
	candidates := legal
	if jumps := game.Captures(legal); len(jumps) > 0 && len(jumps) < len(legal) {
		candidates = jumps
	}

	if a.rate > 0 && a.rng.Float64() < a.rate {
		return candidates[a.rng.Intn(len(candidates))], true
	}

	if a.memory != nil && !a.table.Known(state) {
		if m, ok := a.memory.Suggest(state, candidates); ok {
			return m, true
		}
	}

	scores := a.table.Values(state, candidates)
	if selection == UCB {
		bonus := newUCB(a.params.UCBConstant, a.table.TotalVisits(state))
		for i, m := range candidates {
			scores[i] = bonus.evaluate(scores[i], a.table.Visits(state, m))
		}
	}
	return candidates[argmax(scores)], true
}

// Learn applies the temporal-difference update for exp. It reports false and
// changes nothing when the action was not among the legal moves.
func (a *Agent) Learn(exp Experience) bool {
	if !game.Contains(exp.Legal, exp.Action) {
		return false
	}
	future := 0.0
	if !exp.Terminal && len(exp.NextLegal) > 0 {
		future = a.table.MaxValue(exp.Next, exp.NextLegal)
	}
	target := exp.Reward + a.params.DiscountFactor*future
	a.table.Update(exp.State, exp.Legal, exp.Action, func(q float64) float64 {
		return q + a.params.LearningRate*(target-q)
	})

	if a.memory != nil {
		values := a.table.Values(exp.State, exp.Legal)
		a.memory.Store(exp.State, exp.Legal[argmax(values)])
	}
	return true
}

// UpdateExplorationRate decays the exploration rate toward its floor.
func (a *Agent) UpdateExplorationRate() {
	a.rate = math.Max(a.params.ExplorationFloor, a.rate*a.params.ExplorationDecay)
}

// Save writes the table to path, picking the store from the file extension.
func (a *Agent) Save(path string) error {
	store, err := OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return a.SaveTo(store)
}

// Load replaces the table with the contents at path. A missing file leaves an
// empty table. Malformed contents leave an empty table and an error wrapping
// ErrCorruptTable.
func (a *Agent) Load(path string) error {
	store, err := OpenStore(path)
	if err != nil {
		a.table.Reset()
		return err
	}
	defer store.Close()
	return a.LoadFrom(store)
}

func (a *Agent) SaveTo(store TableStore) error {
	return store.Save(a.table.Snapshot())
}

func (a *Agent) LoadFrom(store TableStore) error {
	records, err := store.Load()
	if err != nil {
		a.table.Reset()
		return err
	}
	if err := a.table.Restore(records); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	return nil
}
