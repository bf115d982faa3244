package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingTTL = 30 * time.Second

// ListingCache caches JSON-serialized list projections. Entries expire after
// a short TTL and are explicitly invalidated on every item or category
// mutation, so reads stay close to the live aggregates.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get unmarshals the cached value for key into dest. Returns false with a
// nil error when the key is absent.
func (c *ListingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ListingCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, listingTTL).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
