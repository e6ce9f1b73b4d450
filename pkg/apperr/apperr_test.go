package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := fmt.Errorf("create post: %w", NotFound("user not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "create post: user not found", err.Error())

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestWrap(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := Wrap(KindConflict, cause, "token already revoked")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "token already revoked: UNIQUE constraint failed", err.Error())
	assert.Equal(t, "not found", ErrNotFound.Error())
}
