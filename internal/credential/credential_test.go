package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("ABCdef123")
	require.NoError(t, err)
	assert.NotEqual(t, "ABCdef123", digest)

	assert.True(t, h.Verify(digest, "ABCdef123"))
	assert.False(t, h.Verify(digest, "ABCdef124"))
	assert.False(t, h.Verify("not-a-digest", "ABCdef123"))
}

func TestHash_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("ABCdef123")
	require.NoError(t, err)
	b, err := h.Hash("ABCdef123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, 12, NewHasher(12).cost)
}
