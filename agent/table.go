package agent

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"checkers/game"
)

type actionStat struct {
	value  float64
	visits int
}

type stateEntry struct {
	key     game.StateKey
	actions map[game.Move]*actionStat
}

// QTable maps (state, move) to a value estimate. States are bucketed by their
// Zobrist hash and told apart by their exact encoding, so hash collisions never
// share values. Safe for concurrent use with a single writer at a time.
type QTable struct {
	mu      sync.RWMutex
	initial float64
	buckets map[game.StateHash][]*stateEntry
	states  int
}

// NewQTable returns an empty table whose unseen entries read as initial.
func NewQTable(initial float64) *QTable {
	return &QTable{
		initial: initial,
		buckets: make(map[game.StateHash][]*stateEntry),
	}
}

func (t *QTable) InitialValue() float64 {
	return t.initial
}

// Len returns the number of states with entries.
func (t *QTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states
}

// Known reports whether the state has been learned from.
func (t *QTable) Known(state game.StateKey) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(state) != nil
}

// Value returns the estimate for a move in a state without creating entries.
func (t *QTable) Value(state game.StateKey, move game.Move) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value(t.find(state), move)
}

// Values returns the estimates for each of moves, in order.
func (t *QTable) Values(state game.StateKey, moves []game.Move) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry := t.find(state)
	values := make([]float64, len(moves))
	for i, m := range moves {
		values[i] = t.value(entry, m)
	}
	return values
}

// MaxValue returns the largest estimate among moves, the initial value when
// moves is empty.
func (t *QTable) MaxValue(state game.StateKey, moves []game.Move) float64 {
	if len(moves) == 0 {
		return t.initial
	}
	best := math.Inf(-1)
	for _, v := range t.Values(state, moves) {
		best = math.Max(best, v)
	}
	return best
}

// Visits returns how often a move was updated in a state.
func (t *QTable) Visits(state game.StateKey, move game.Move) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if entry := t.find(state); entry != nil {
		if stat, ok := entry.actions[move]; ok {
			return stat.visits
		}
	}
	return 0
}

// TotalVisits sums the visits of every move recorded for a state.
func (t *QTable) TotalVisits(state game.StateKey) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := 0
	if entry := t.find(state); entry != nil {
		for _, stat := range entry.actions {
			total += stat.visits
		}
	}
	return total
}

// Update creates the state's entries for legal on first visit, then replaces
// the value of move with update(current) and counts a visit.
func (t *QTable) Update(state game.StateKey, legal []game.Move, move game.Move, update func(current float64) float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.ensure(state, legal)
	stat, ok := entry.actions[move]
	if !ok {
		stat = &actionStat{value: t.initial}
		entry.actions[move] = stat
	}
	stat.value = update(stat.value)
	stat.visits++
	return stat.value
}

// Reset drops every entry.
func (t *QTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buckets = make(map[game.StateHash][]*stateEntry)
	t.states = 0
}

func (t *QTable) find(state game.StateKey) *stateEntry {
	for _, entry := range t.buckets[state.Hash] {
		if entry.key.Encoding == state.Encoding {
			return entry
		}
	}
	return nil
}

func (t *QTable) ensure(state game.StateKey, legal []game.Move) *stateEntry {
	entry := t.find(state)
	if entry == nil {
		entry = &stateEntry{key: state, actions: make(map[game.Move]*actionStat, len(legal))}
		t.buckets[state.Hash] = append(t.buckets[state.Hash], entry)
		t.states++
	}
	for _, m := range legal {
		if _, ok := entry.actions[m]; !ok {
			entry.actions[m] = &actionStat{value: t.initial}
		}
	}
	return entry
}

func (t *QTable) value(entry *stateEntry, move game.Move) float64 {
	if entry == nil {
		return t.initial
	}
	if stat, ok := entry.actions[move]; ok {
		return stat.value
	}
	return t.initial
}

// StateRecord is the persisted form of one state's entries.
type StateRecord struct {
	State   string         `json:"state"`
	Actions []ActionRecord `json:"actions"`
}

type ActionRecord struct {
	Move   [4]int  `json:"move"`
	Value  float64 `json:"value"`
	Visits int     `json:"visits"`
}

func (r ActionRecord) move() game.Move {
	return game.Move{FromRow: r.Move[0], FromCol: r.Move[1], ToRow: r.Move[2], ToCol: r.Move[3]}
}

// Snapshot exports the table sorted by state encoding and move.
func (t *QTable) Snapshot() []StateRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records := make([]StateRecord, 0, t.states)
	for _, bucket := range t.buckets {
		for _, entry := range bucket {
			record := StateRecord{State: entry.key.Encoding, Actions: make([]ActionRecord, 0, len(entry.actions))}
			for m, stat := range entry.actions {
				record.Actions = append(record.Actions, ActionRecord{
					Move:   [4]int{m.FromRow, m.FromCol, m.ToRow, m.ToCol},
					Value:  stat.value,
					Visits: stat.visits,
				})
			}
			sort.Slice(record.Actions, func(i, j int) bool {
				return lessMove(record.Actions[i].Move, record.Actions[j].Move)
			})
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].State < records[j].State })
	return records
}

// Restore replaces the table contents with records. On error the table is left
// empty.
func (t *QTable) Restore(records []StateRecord) error {
	buckets := make(map[game.StateHash][]*stateEntry, len(records))
	states := 0
	for _, record := range records {
		b, mover, err := game.ParseKey(record.State)
		if err != nil {
			t.Reset()
			return err
		}
		key := game.KeyOf(b, mover)
		entry := &stateEntry{key: key, actions: make(map[game.Move]*actionStat, len(record.Actions))}
		for _, a := range record.Actions {
			m := a.move()
			if !b.InBounds(m.FromRow, m.FromCol) || !b.InBounds(m.ToRow, m.ToCol) {
				t.Reset()
				return fmt.Errorf("move %v outside the %dx%d board of state %q", a.Move, b.Size(), b.Size(), record.State)
			}
			if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
				t.Reset()
				return fmt.Errorf("non-finite value for move %v of state %q", a.Move, record.State)
			}
			entry.actions[m] = &actionStat{value: a.Value, visits: a.Visits}
		}
		buckets[key.Hash] = append(buckets[key.Hash], entry)
		states++
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.buckets = buckets
	t.states = states
	return nil
}

func lessMove(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
