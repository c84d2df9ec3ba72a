package presence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/f1stly/call-signaling/config"
)

// Store persists the last known status per identity. Implementations are
// best-effort collaborators: callers treat every error as non-fatal and
// the signaling path never waits on one.
type Store interface {
	SetStatus(ctx context.Context, identity, status string) error
	Close() error
}

// RedisStore keeps statuses in Redis under user:<identity>:status.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) SetStatus(ctx context.Context, identity, status string) error {
	return s.client.Set(ctx, "user:"+identity+":status", status, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// NoopStore discards statuses. It stands in when Redis is unavailable so
// signaling keeps working without presence durability, and in tests.
type NoopStore struct{}

func (NoopStore) SetStatus(context.Context, string, string) error { return nil }

func (NoopStore) Close() error { return nil }
