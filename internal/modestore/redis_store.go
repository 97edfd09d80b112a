package modestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/capture-portal/internal/domain"
)

// RedisStore keeps the mode under a single Redis key.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore returns a store using key on client.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Get(ctx context.Context) (domain.Mode, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.DefaultMode, nil
	}
	if err != nil {
		return "", fmt.Errorf("get mode: %w", err)
	}
	return domain.ParseMode(raw), nil
}

func (s *RedisStore) Set(ctx context.Context, mode domain.Mode) error {
	if !mode.Valid() {
		return domain.ErrInvalidMode
	}
	if err := s.client.Set(ctx, s.key, string(mode), 0).Err(); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	return nil
}
