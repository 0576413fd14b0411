// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let a deployment instrument viewer activity, cache behavior, and
// outgoing HTTP without the libraries taking a dependency on any
// observability backend. Register implementations at startup:
//
//	func main() {
//	    observability.SetViewerHooks(&myViewerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call the registered hooks to emit events:
//
//	observability.Viewer().OnOpen(ctx, id, url)
//	observability.HTTP().OnRequest(ctx, method, host, path)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Viewer Hooks
// =============================================================================

// ViewerHooks receives events from viewer transitions.
type ViewerHooks interface {
	// OnOpen records an accepted open request.
	OnOpen(ctx context.Context, viewerID, url string)

	// OnClose records an accepted close request.
	OnClose(ctx context.Context, viewerID string)

	// OnRejected records a request dropped because a transition was
	// already running.
	OnRejected(ctx context.Context, viewerID, op string)
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

// HTTPHooks receives events from HTTP client operations.
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

// NoopViewerHooks is a no-op implementation of ViewerHooks.
type NoopViewerHooks struct{}

func (NoopViewerHooks) OnOpen(context.Context, string, string)     {}
func (NoopViewerHooks) OnClose(context.Context, string)            {}
func (NoopViewerHooks) OnRejected(context.Context, string, string) {}

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
	viewerHooks ViewerHooks = NoopViewerHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetViewerHooks registers custom viewer hooks.
// This should be called once at application startup.
func SetViewerHooks(h ViewerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Viewer returns the registered viewer hooks.
func Viewer() ViewerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewerHooks
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
	viewerHooks = NoopViewerHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
