package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	assert.True(t, Equal(int64(1), int64(1)))
	assert.False(t, Equal(int64(1), int64(2)))

	// Different dynamic types never compare equal.
	assert.False(t, Equal(int64(1), float64(1)))
	assert.False(t, Equal("1", int64(1)))

	// Time equality is instant-based, not representation-based.
	utc := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, Equal(utc, utc.In(time.FixedZone("X", 3600))))

	assert.True(t, Equal([]byte("ab"), []byte("ab")))
	assert.False(t, Equal([]byte("ab"), []byte("ac")))

	assert.True(t, Equal([]any{int64(1), "a"}, []any{int64(1), "a"}))
	assert.False(t, Equal([]any{int64(1)}, []any{int64(1), int64(2)}))

	assert.True(t, Equal(
		map[string]any{"a": int64(1)},
		map[string]any{"a": int64(1)},
	))
	assert.False(t, Equal(
		map[string]any{"a": int64(1)},
		map[string]any{"a": int64(2)},
	))
}

func TestCompare_Scalars(t *testing.T) {
	c, err := Compare(int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare("b", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare(false, true)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	c, err = Compare(earlier, later)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompare_Lists(t *testing.T) {
	c, err := Compare([]any{int64(1), int64(2)}, []any{int64(1), int64(3)})
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	// Shorter prefix orders first.
	c, err = Compare([]any{int64(1)}, []any{int64(1), int64(0)})
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare([]any{int64(1)}, []any{int64(1)})
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare(int64(1), "1")
	require.Error(t, err)

	_, err = Compare(map[string]any{}, map[string]any{})
	require.Error(t, err)

	_, err = Compare([]any{int64(1)}, []any{"a"})
	require.Error(t, err)
}
