package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// Generated documents are cached as an optimization only: every run can be
// regenerated from its recorded seed, so eviction is never a correctness
// problem.
type CacheInterface interface {
	// Set stores a value under key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the value and true when present, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a key
	Delete(key string)

	// GetOrSet returns the cached value, or loads, stores and returns it
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections (Redis)
	Close() error
}
