package observability

import (
	"context"
	"testing"
	"time"
)

type testViewerHooks struct{ opens, closes, rejects int }

func (h *testViewerHooks) OnOpen(context.Context, string, string)     { h.opens++ }
func (h *testViewerHooks) OnClose(context.Context, string)            { h.closes++ }
func (h *testViewerHooks) OnRejected(context.Context, string, string) { h.rejects++ }

type testCacheHooks struct{ hits int }

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) {}

type testHTTPHooks struct{ requests int }

func (h *testHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *testHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (h *testHTTPHooks) OnError(context.Context, string, string, string, error) {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	v := NoopViewerHooks{}
	v.OnOpen(ctx, "id", "https://example.com/a.jpg")
	v.OnClose(ctx, "id")
	v.OnRejected(ctx, "id", "open")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "dimensions")
	c.OnCacheMiss(ctx, "dimensions")
	c.OnCacheSet(ctx, "dimensions", 64)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/a.jpg")
	h.OnResponse(ctx, "GET", "example.com", "/a.jpg", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/a.jpg", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Viewer().(NoopViewerHooks); !ok {
		t.Error("Viewer() should return NoopViewerHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customViewer := &testViewerHooks{}
	SetViewerHooks(customViewer)
	if Viewer() != customViewer {
		t.Error("SetViewerHooks should install custom hooks")
	}
	Viewer().OnOpen(context.Background(), "id", "url")
	if customViewer.opens != 1 {
		t.Error("custom viewer hooks not invoked")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should install custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should install custom hooks")
	}

	Reset()
	if _, ok := Viewer().(NoopViewerHooks); !ok {
		t.Error("Reset should restore noop viewer hooks")
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	Reset()
	SetViewerHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if _, ok := Viewer().(NoopViewerHooks); !ok {
		t.Error("nil registration should be ignored")
	}
}
