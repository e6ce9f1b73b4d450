package idgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func free(context.Context, string) (bool, error) { return false, nil }

func TestGenerate_Shape(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := Generate(context.Background(), free)
		require.NoError(t, err)
		assert.True(t, Valid(id), "bad id %q", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestGenerate_RetriesWhileTaken(t *testing.T) {
	calls := 0
	var rejected []string
	id, err := Generate(context.Background(), func(_ context.Context, id string) (bool, error) {
		calls++
		if calls <= 3 {
			rejected = append(rejected, id)
			return true, nil
		}
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.True(t, Valid(id))
	assert.NotContains(t, rejected, id)
}

func TestGenerate_PredicateError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Generate(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("ul4we4q4osvoyoa1"))
	assert.False(t, Valid("UL4WE4Q4OSVOYOA1"))
	assert.False(t, Valid("short"))
	assert.False(t, Valid("abcdefghijklmno-"))
}

func TestAlphabetCoverage(t *testing.T) {
	counts := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		id, err := Generate(context.Background(), free)
		require.NoError(t, err)
		for _, c := range id {
			counts[c]++
		}
	}
	assert.Len(t, counts, len(alphabet))
}
