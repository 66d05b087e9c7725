package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
)

const (
	defaultDialTimeout  = 2 * time.Second
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 2 * time.Second
	defaultPoolTimeout  = 2 * time.Second

	defaultPoolSize     = 20
	defaultMinIdleConns = 2
)

// NewClient returns nil when no address is configured; callers treat a
// nil client as "Redis disabled".
func NewClient(c core.RedisConfig, logger *slog.Logger) *redis.Client {
	if logger == nil {
		logger = slog.Default()
	}

	if c.Addr == "" {
		logger.Info("redis disabled, no address configured")
		return nil
	}

	logger = logger.With(
		slog.String("component", "redis"),
		slog.String("addr", c.Addr),
		slog.Int("db", c.DB),
	)

	opts := &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		PoolTimeout:  defaultPoolTimeout,
		PoolSize:     defaultPoolSize,
		MinIdleConns: defaultMinIdleConns,
	}

	logger.Info("initializing redis client")

	rdb := redis.NewClient(opts)

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		logger.Warn("Otel Tracing Instrumentation Failed", "err", err)
	}

	err = redisotel.InstrumentMetrics(rdb)
	if err != nil {
		logger.Warn("Otel Metrics instrumentation Failed", "err", err)
	}
	return rdb
}

func Ping(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
