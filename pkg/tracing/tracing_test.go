package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/drinklog/config"
)

func TestInit(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))

	// 导出器惰性连接，创建时不需要 collector
	shutdown, err = Init(ctx, config.TracingConfig{
		Enabled: true, Endpoint: "127.0.0.1:4318", ServiceName: "drinklog-test", Insecure: true,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
}
