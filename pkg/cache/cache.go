// Package cache provides pluggable byte caches used to avoid refetching
// prerequisite data and recomputing layouts. Backends include a file cache
// for CLI usage, a Redis cache for server deployments, and a null cache
// for tests or when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTLs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the artifacts the pipeline produces.
// Separating key derivation from storage lets callers scope or namespace
// keys without touching the backend.
type Keyer interface {
	// HTTPKey names a cached upstream HTTP response.
	HTTPKey(namespace, url string) string

	// GraphKey names a cached raw prerequisite graph for a course.
	GraphKey(courseID int) string

	// LayoutKey names a cached positioned layout. graphHash identifies
	// the canonical graph content and opts captures everything else that
	// affects coordinates.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that participate in the cache key.
// Two layouts with equal graph hashes and equal opts are identical.
type LayoutKeyOpts struct {
	Direction      string  `json:"direction"`
	NodeSeparation float64 `json:"node_separation"`
	RankSeparation float64 `json:"rank_separation"`
	MarginX        float64 `json:"margin_x"`
	MarginY        float64 `json:"margin_y"`
	TargetCourseID int     `json:"target_course_id"`
	ProgressHash   string  `json:"progress_hash"`
}

// DefaultKeyer derives hashed, collision-resistant keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, url string) string {
	return hashKey("http:"+namespace, url)
}

// GraphKey generates a key for raw graph caching.
func (k *DefaultKeyer) GraphKey(courseID int) string {
	return hashKey("graph", courseID)
}

// LayoutKey generates a key for positioned layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ScopedKeyer prefixes every derived key, isolating cache namespaces per
// student or per deployment.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps a keyer with a prefix. A nil inner keyer defaults
// to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, url string) string {
	return k.prefix + k.inner.HTTPKey(namespace, url)
}

func (k *ScopedKeyer) GraphKey(courseID int) string {
	return k.prefix + k.inner.GraphKey(courseID)
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}
