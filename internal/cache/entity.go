package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind identifies which entity collection a cached document belongs to.
type Kind string

// Cached entity kinds.
const (
	KindUser    Kind = "user"
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// DefaultEntityTTL is the TTL for cached entity documents.
const DefaultEntityTTL = 10 * time.Minute

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// entityKey builds the Redis key for an entity document.
func entityKey(kind Kind, id int) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

// GetEntity retrieves a JSON-encoded entity from cache and decodes it into dest.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetEntity(ctx context.Context, kind Kind, id int, dest any) error {
	data, err := c.client.Get(ctx, entityKey(kind, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cached entity: %w", err)
	}

	return nil
}

// SetEntity stores a JSON-encoded entity in cache with the default TTL.
func (c *Cache) SetEntity(ctx context.Context, kind Kind, id int, entity any) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode entity for cache: %w", err)
	}

	if err := c.client.Set(ctx, entityKey(kind, id), data, DefaultEntityTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache entity: %w", err)
	}

	return nil
}

// DeleteEntity removes a single entity from cache.
func (c *Cache) DeleteEntity(ctx context.Context, kind Kind, id int) error {
	if err := c.client.Del(ctx, entityKey(kind, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete entity from cache: %w", err)
	}

	return nil
}

// InvalidateKind removes every cached document of the given kind.
// Used after bulk operations (seed, reload, delete-all, cascade).
func (c *Cache) InvalidateKind(ctx context.Context, kind Kind) error {
	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, string(kind)+":*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}
