package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "drinklog")

	raw, issued, err := m.Issue("ul4we4q4osvoyoa1")
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ul4we4q4osvoyoa1", claims.UserID())
	assert.Equal(t, issued.ID, claims.ID)
}

func TestIssue_UniqueJTI(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "drinklog")
	_, a, err := m.Issue("u")
	require.NoError(t, err)
	_, b, err := m.Issue("u")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParse_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "drinklog")
	raw, _, err := m.Issue("u")
	require.NoError(t, err)

	other := NewTokenManager("other", time.Hour, "drinklog")
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenManager("secret", time.Hour, "someone-else")
	_, err = wrongIssuer.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, "drinklog")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := m.Issue("u")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
