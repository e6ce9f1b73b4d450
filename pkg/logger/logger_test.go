package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { log = zap.NewNop() })

	require.NoError(t, Init("debug", "json"))
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("nonsense", "console"))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
	Info("hello", zap.String("k", "v"))
}
