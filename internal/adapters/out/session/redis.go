package session

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps each session as a Redis hash with a TTL.
type RedisStore struct {
	rdb *goredis.Client
}

// RedisConfig configures NewRedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects and pings Redis.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	values, err := s.rdb.HGetAll(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ports.ErrSessionNotFound
	}
	return values, nil
}

// Save replaces the hash and refreshes its TTL atomically.
func (s *RedisStore) Save(ctx context.Context, sessionID string, values map[string]string, ttl time.Duration) error {
	key := keyPrefix + sessionID
	fields := make([]any, 0, 2*len(values))
	for k, v := range values {
		fields = append(fields, k, v)
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.HSet(ctx, key, fields...)
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
