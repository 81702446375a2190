package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a running Redis; set REDIS_ADDR to enable.
func TestLimiter_DeniesAfterLimit(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := NewClient(ctx, config.RedisConfig{Addr: addr}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewLimiter(rdb, 3)
	key := "test:" + uuid.NewString()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
	}

	d, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Positive(t, d.RetryAfter)
	assert.Equal(t, 3, d.Limit)
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, nil)
	assert.Error(t, err)
}
