package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/config"
)

// redisTimeout bounds dials and single commands; the mode store issues one
// GET or SET per request.
const redisTimeout = 2 * time.Second

// Redis holds the client behind the Redis mode store.
type Redis struct {
	Client *redis.Client
	addr   string
}

// NewRedis builds the client and probes it once. An unreachable server is
// logged, not fatal: mode reads then fail per request and /health/ready
// reports it.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  redisTimeout,
			ReadTimeout:  redisTimeout,
			WriteTimeout: redisTimeout,
		}),
		addr: cfg.Addr,
	}

	if err := r.Ping(ctx); err != nil {
		logger.Warn("mode store redis unreachable", zap.Error(err))
	} else {
		logger.Info("mode store redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", r.addr, err)
	}
	return nil
}
