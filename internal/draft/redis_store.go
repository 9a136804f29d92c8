// Package draft provides Redis-backed autosave of in-progress editor
// documents. A draft is the working copy snapshotted on a timer by the
// client; it outlives a browser crash but expires after a TTL so abandoned
// sessions do not accumulate.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storeforge/api/internal/editor"
)

// ErrNotFound is returned when no draft exists for the shop.
var ErrNotFound = errors.New("draft not found or expired")

// Record is the stored draft: the document plus bookkeeping the editor shows
// on resume.
type Record struct {
	Document editor.ShopSettings `json:"document"`
	SavedAt  time.Time           `json:"savedAt"`
}

// RedisStore implements draft storage using Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{
		client: client,
		prefix: "draft:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(shopID string) string {
	return s.prefix + shopID
}

// Save stores the draft for a shop, resetting its TTL.
func (s *RedisStore) Save(ctx context.Context, shopID string, doc editor.ShopSettings) error {
	record := Record{Document: doc, SavedAt: time.Now().UTC()}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := s.client.Set(ctx, s.key(shopID), jsonData, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Load retrieves the draft for a shop. Returns ErrNotFound when none exists
// or it has expired.
func (s *RedisStore) Load(ctx context.Context, shopID string) (Record, error) {
	jsonData, err := s.client.Get(ctx, s.key(shopID)).Result()
	if err == redis.Nil {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load draft: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(jsonData), &record); err != nil {
		return Record{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return record, nil
}

// Delete removes the draft, typically after a successful save to the primary
// store. Deleting a missing draft is not an error.
func (s *RedisStore) Delete(ctx context.Context, shopID string) error {
	if err := s.client.Del(ctx, s.key(shopID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
