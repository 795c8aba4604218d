package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by helpers that treat a miss as an error.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned when an operation runs against a closed cache.
	ErrClosed = errors.New("cache closed")
)
