// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph normalization, pipeline execution, cache
// operations, and upstream API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine free of observability framework dependencies
//   - Preserves the pure-function contract of each pipeline stage: hooks
//     report degraded inputs (dropped edges, missing metadata) without ever
//     being required for correctness
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNormalizerHooks(&myNormalizerHooks{})
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Normalizer().OnEdgeDropped(ctx, source, target)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Normalizer Hooks
// =============================================================================

// NormalizerHooks receives diagnostic events from graph normalization.
// Raw prerequisite graphs are lenient by design: malformed references are
// dropped rather than rejected, and these hooks surface every such repair.
type NormalizerHooks interface {
	// OnEdgeDropped records an edge whose endpoint did not resolve to a node.
	OnEdgeDropped(ctx context.Context, source, target string)

	// OnUnknownKind records a node whose raw type was not recognized and
	// defaulted to a leaf requirement.
	OnUnknownKind(ctx context.Context, nodeID, rawType string)

	// OnMissingMetadata records a course node with no catalog metadata.
	OnMissingMetadata(ctx context.Context, nodeID string, courseID int)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the graph pipeline.
type PipelineHooks interface {
	// Normalize events
	OnNormalizeStart(ctx context.Context, rawNodes, rawEdges int)
	OnNormalizeComplete(ctx context.Context, nodes, edges int, duration time.Duration)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from upstream HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNormalizerHooks is a no-op implementation of NormalizerHooks.
type NoopNormalizerHooks struct{}

func (NoopNormalizerHooks) OnEdgeDropped(context.Context, string, string)  {}
func (NoopNormalizerHooks) OnUnknownKind(context.Context, string, string)  {}
func (NoopNormalizerHooks) OnMissingMetadata(context.Context, string, int) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnNormalizeStart(context.Context, int, int)                   {}
func (NoopPipelineHooks) OnNormalizeComplete(context.Context, int, int, time.Duration) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                           {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	normalizerHooks NormalizerHooks = NoopNormalizerHooks{}
	pipelineHooks   PipelineHooks   = NoopPipelineHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetNormalizerHooks registers custom normalizer hooks.
// This should be called once at application startup before any graph operations.
func SetNormalizerHooks(h NormalizerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		normalizerHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Normalizer returns the registered normalizer hooks.
func Normalizer() NormalizerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return normalizerHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	normalizerHooks = NoopNormalizerHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
