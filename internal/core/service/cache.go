package service

import "context"

// ListingCache abstracts the read-side cache for list projections (Redis).
// Cache failures are never surfaced to callers; services degrade to a direct
// store read.
type ListingCache interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

const (
	cacheKeyCategories = "listing:categories"
	cacheKeyItems      = "listing:items"
)
