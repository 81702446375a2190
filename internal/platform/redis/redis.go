package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/phrazzld/tasks-api/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	if logger != nil {
		logger.Info("connected to redis", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	}
	return rdb, nil
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAfter time.Duration
}

// Limiter allows at most a fixed number of requests per key per minute.
type Limiter struct {
	limiter   *redis_rate.Limiter
	perMinute int
}

// NewLimiter creates a limiter on rdb allowing perMinute requests per key.
func NewLimiter(rdb *goredis.Client, perMinute int) *Limiter {
	return &Limiter{limiter: redis_rate.NewLimiter(rdb), perMinute: perMinute}
}

// Allow records one request for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := l.limiter.Allow(ctx, "rate_limit:"+key, redis_rate.PerMinute(l.perMinute))
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit check failed: %w", err)
	}
	return Decision{
		Allowed:    res.Allowed > 0,
		Limit:      l.perMinute,
		Remaining:  res.Remaining,
		RetryAfter: res.RetryAfter,
		ResetAfter: res.ResetAfter,
	}, nil
}
