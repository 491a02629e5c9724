package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchant-review-shopify-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an OAuth install may take between redirect and callback
const DefaultTTL = 10 * time.Minute

const keyPrefix = "oauth:state:"

// RedisStateStore keeps OAuth state nonces in Redis with an expiry
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStateStore creates a state store; a non-positive ttl falls back to DefaultTTL
func NewRedisStateStore(client *redis.Client, ttl time.Duration) ports.StateStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStateStore{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Put binds a state nonce to the shop that started the install
func (s *RedisStateStore) Put(ctx context.Context, state, shop string) error {
	if err := s.client.Set(ctx, keyPrefix+state, shop, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// Consume returns the shop bound to the nonce and deletes it so it cannot be replayed
func (s *RedisStateStore) Consume(ctx context.Context, state string) (string, bool, error) {
	shop, err := s.client.GetDel(ctx, keyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read oauth state: %w", err)
	}
	return shop, true, nil
}
