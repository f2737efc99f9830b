package agent

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

// trainedAgent plays a few greedy-distinct updates over a short game so the
// table holds several states.
func trainedAgent(t *testing.T) (*Agent, []game.StateKey, [][]game.Move) {
	t.Helper()
	a := newTestAgent(t)
	rules := game.NewStandardRules()
	b, err := game.NewBoard(6)
	require.NoError(t, err)

	var states []game.StateKey
	var legals [][]game.Move
	player := game.Player1
	for i := 0; i < 6; i++ {
		state := game.KeyOf(b, player)
		legal := game.ValidMoves(b, player, rules)
		require.NotEmpty(t, legal)
		pick := legal[len(legal)-1]
		a.Learn(Experience{State: state, Legal: legal, Action: pick, Reward: float64(i + 1), Terminal: true})
		states = append(states, state)
		legals = append(legals, legal)

		_, err := game.Apply(b, pick, player, rules, nil)
		require.NoError(t, err)
		player = player.Opponent()
	}
	return a, states, legals
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"qtable.json", "qtable.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			a, states, legals := trainedAgent(t)
			require.NoError(t, a.Save(path))

			restored := newTestAgent(t)
			require.NoError(t, restored.Load(path))

			require.Equal(t, a.Table().Len(), restored.Table().Len())
			require.Equal(t, a.Table().Snapshot(), restored.Table().Snapshot())
			for i, state := range states {
				want, _ := a.ChooseAction(state, legals[i])
				got, _ := restored.ChooseAction(state, legals[i])
				require.Equal(t, want, got)
			}
		})
	}

	t.Run("saving twice overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "qtable.db")
		a, _, _ := trainedAgent(t)
		require.NoError(t, a.Save(path))
		a.Table().Reset()
		require.NoError(t, a.Save(path))

		restored := newTestAgent(t)
		require.NoError(t, restored.Load(path))
		require.Zero(t, restored.Table().Len())
	})
}

func TestLoadMissing(t *testing.T) {
	for _, name := range []string{"missing.json", "missing.db"} {
		t.Run(name, func(t *testing.T) {
			a := newTestAgent(t)

			err := a.Load(filepath.Join(t.TempDir(), name))

			require.NoError(t, err)
			require.Zero(t, a.Table().Len())
		})
	}
}

func TestLoadCorrupt(t *testing.T) {
	cases := map[string][]byte{
		"qtable.json":    []byte("{not json"),
		"version.json":   []byte(`{"version":99,"states":[]}`),
		"state.json":     []byte(`{"version":1,"states":[{"state":"bogus","actions":[]}]}`),
		"bounds.json":    []byte(`{"version":1,"states":[{"state":"6/1/` + string(bytes.Repeat([]byte("0"), 36)) + `","actions":[{"move":[0,0,9,9],"value":1,"visits":1}]}]}`),
		"multibyte.json": []byte(`{"version":1,"states":[{"state":"6/1/` + string(bytes.Repeat([]byte("0"), 34)) + `é","actions":[]}]}`),
		"qtable.db":      bytes.Repeat([]byte{0xab}, 4*4096),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, data, 0o600))
			a, _, _ := trainedAgent(t)
			require.NotZero(t, a.Table().Len())

			err := a.Load(path)

			require.ErrorIs(t, err, ErrCorruptTable)
			require.Zero(t, a.Table().Len())
		})
	}
}

func TestFileStoreLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	a, _, _ := trainedAgent(t)
	require.NoError(t, a.Save(filepath.Join(dir, "nested", "qtable.json")))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "qtable.json", entries[0].Name())
}

func TestOpenStoreKind(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStoreKind("json", filepath.Join(dir, "table.db"))
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, store)

	store, err = OpenStoreKind("bolt", filepath.Join(dir, "table.json"))
	require.NoError(t, err)
	require.IsType(t, &BoltStore{}, store)
	require.NoError(t, store.Close())

	store, err = OpenStoreKind("auto", filepath.Join(dir, "table.bolt"))
	require.NoError(t, err)
	require.IsType(t, &BoltStore{}, store)
	require.NoError(t, store.Close())

	_, err = OpenStoreKind("redis", filepath.Join(dir, "table"))
	require.Error(t, err)
}
