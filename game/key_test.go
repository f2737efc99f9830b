package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	b, err := NewBoard(6)
	require.NoError(t, err)

	t.Run("equal boards share a key", func(t *testing.T) {
		other, err := NewBoard(6)
		require.NoError(t, err)

		require.Equal(t, KeyOf(b, Player1), KeyOf(other, Player1))
	})

	t.Run("key depends on the side to move", func(t *testing.T) {
		k1, k2 := KeyOf(b, Player1), KeyOf(b, Player2)

		require.NotEqual(t, k1.Hash, k2.Hash)
		require.NotEqual(t, k1.Encoding, k2.Encoding)
	})

	t.Run("same cells reached by different paths hash the same", func(t *testing.T) {
		viaMoves := b.Copy()
		viaMoves.Set(4, 0, Empty)
		viaMoves.Set(3, 1, Man1)
		viaMoves.Set(3, 1, Empty)
		viaMoves.Set(4, 0, Man1)

		require.Equal(t, KeyOf(b, Player1), KeyOf(viaMoves, Player1))
	})

	t.Run("different boards get different encodings", func(t *testing.T) {
		moved := b.Copy()
		moved.Set(4, 0, Empty)
		moved.Set(3, 1, Man1)

		require.NotEqual(t, KeyOf(b, Player1).Encoding, KeyOf(moved, Player1).Encoding)
	})
}

func TestParseKey(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		b, err := NewBoard(8)
		require.NoError(t, err)
		b.Set(3, 3, King1)
		key := KeyOf(b, Player2)

		parsed, mover, err := ParseKey(key.Encoding)

		require.NoError(t, err)
		require.Equal(t, Player2, mover)
		require.True(t, b.Equal(parsed))
		require.Equal(t, key, KeyOf(parsed, mover))
	})

	t.Run("rejects malformed encodings", func(t *testing.T) {
		for _, encoding := range []string{"", "6/1", "5/1/0", "6/3/" + string(make([]byte, 36)), "6/1/01",
			"6/1/" + strings.Repeat("0", 34) + "é", "6/1/" + strings.Repeat("0", 35) + "5"} {
			_, _, err := ParseKey(encoding)
			require.Error(t, err, "encoding %q", encoding)
		}
	})
}
