// Package pkg provides the core libraries for the zoomview photo viewer.
//
// # Overview
//
// Zoomview animates images between a thumbnail rectangle and a fullscreen
// aspect-fit view. The pkg directory is organized into the viewer core and
// the host infrastructure around it:
//
//  1. [viewer] - Transition state machine, controller facade, frame renderer
//  2. [geometry] - Animation target rectangles (live-bound and static)
//  3. [layout] - Aspect-fit math, frame descriptors, interpolation helpers
//  4. [imgsource] - Image source variants (URL string or rendered element)
//  5. [probe] - Natural dimension resolution with caching
//  6. [cache] - Dimension cache backends (file, memory, redis, null)
//  7. [httputil] - Bounded HTTP fetches with retry
//  8. [observability] - Pluggable lifecycle hooks
//  9. [errors] - Structured error codes for the host surfaces
//
// # Architecture
//
// The typical data flow through zoomview:
//
//	Host event (click, request)
//	         ↓
//	    [viewer.Controller] (facade, bound to a machine)
//	         ↓
//	    [viewer.Machine] (open/close transition sequencing)
//	         ↓
//	    [viewer.Render] (state → layout.Frame)
//	         ↓
//	    Renderer (terminal demo, HTTP client)
//
// # Quick Start
//
// Open an image and derive a paintable frame:
//
//	import (
//	    "github.com/askonen/zoomview/pkg/imgsource"
//	    "github.com/askonen/zoomview/pkg/layout"
//	    "github.com/askonen/zoomview/pkg/viewer"
//	)
//
//	m := viewer.New()
//	m.SetViewport(layout.Size{Width: 1920, Height: 1080})
//
//	c := viewer.NewController()
//	m.Attach(c)
//
//	c.OpenView(imgsource.FromURL("https://example.com/photo.jpg"), nil)
//	m.SetNaturalSize(layout.Size{Width: 4000, Height: 3000})
//
//	frame := m.Frame() // backdrop, container rect, image fill axes
//
// The machine resolves the animation target from the source element when
// none is given, falling back to a degenerate centered rectangle, so an
// open request can never fail on geometry.
//
// # Testing
//
// Transitions are driven by an injectable [viewer.Scheduler]; tests use
// [viewer.ManualScheduler] to advance a virtual clock instead of waiting
// on real timers:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/viewer/...   # State machine only
//
// [viewer]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/viewer
// [geometry]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/geometry
// [layout]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/layout
// [imgsource]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/imgsource
// [probe]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/probe
// [cache]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/askonen/zoomview/pkg/errors
package pkg
