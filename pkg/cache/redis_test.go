package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/drinklog/config"
)

func TestNewRedis(t *testing.T) {
	ctx := context.Background()

	client, err := NewRedis(ctx, config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = NewRedis(ctx, config.RedisConfig{Enabled: true, Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(ctx, config.RedisConfig{Enabled: true, Addr: addr})
	assert.Error(t, err)
}
