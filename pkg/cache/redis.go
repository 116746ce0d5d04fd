package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the cache blob under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOptions holds connection settings for a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	key := opts.Key
	if key == "" {
		key = "chatbot:responses"
	}
	return &RedisStore{client: client, key: key}, nil
}

// Load reads the blob from the Redis key.
func (s *RedisStore) Load() ([]byte, error) {
	val, err := s.client.Get(context.Background(), s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Save writes the blob to the Redis key. The blob carries per-entry expiry,
// so no key-level TTL is set.
func (s *RedisStore) Save(blob []byte) error {
	if err := s.client.Set(context.Background(), s.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
