package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultUpdateKeyPrefix = "tg:update:"

// RedisUpdateStore remembers processed Telegram update ids across instances.
type RedisUpdateStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisUpdateStore(client *redis.Client, keyPrefix string) *RedisUpdateStore {
	if keyPrefix == "" {
		keyPrefix = defaultUpdateKeyPrefix
	}
	return &RedisUpdateStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed returns true only for the first caller of an id within ttl (SETNX).
func (s *RedisUpdateStore) MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+id, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark update as processed: %w", err)
	}
	return ok, nil
}

func (s *RedisUpdateStore) Close() error {
	return s.client.Close()
}
