package cache

import "time"

// Cache stores raw document bodies keyed by their data path.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, content []byte, duration time.Duration) error
}

// RequestOptions controls how a single load interacts with the cache.
type RequestOptions struct {
	// ForceRefresh skips the cache lookup but still stores the fresh result.
	ForceRefresh bool
	// Expiry is how long a stored body stays valid.
	Expiry time.Duration
}
