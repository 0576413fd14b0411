package viewer

import (
	"sync"

	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
)

// Controls is the handler set a machine binds into a controller.
type Controls struct {
	Open  func(src *imgsource.Source, target geometry.Target)
	Close func(target geometry.Target)
}

// Controller is the long-lived facade external code calls. It decouples
// callers from the machine instance, which only exists once a view has
// bound itself. At most one handler set is bound at a time; calls made
// before the first bind are safe no-ops.
type Controller struct {
	mu       sync.RWMutex
	controls *Controls
}

// NewController creates an unbound controller.
func NewController() *Controller {
	return &Controller{}
}

// Bind installs the handler set. Last bind wins.
func (c *Controller) Bind(ctrl Controls) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controls = &ctrl
}

// Unbind clears the handler set on view teardown.
func (c *Controller) Unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controls = nil
}

// Bound reports whether a view is currently bound.
func (c *Controller) Bound() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controls != nil
}

// OpenView opens the viewer with an optional explicit target rectangle.
func (c *Controller) OpenView(src *imgsource.Source, target geometry.Target) {
	c.mu.RLock()
	ctrl := c.controls
	c.mu.RUnlock()
	if ctrl == nil || ctrl.Open == nil {
		return
	}
	ctrl.Open(src, target)
}

// OpenViewFromElement opens the viewer zooming out of el. Elements that
// implement geometry.Surface become live-bound targets; anything else
// falls through to the machine's own target resolution.
func (c *Controller) OpenViewFromElement(src *imgsource.Source, el imgsource.Element) {
	var target geometry.Target
	if s, ok := el.(geometry.Surface); ok {
		target = geometry.FromSurface(s)
	}
	c.OpenView(src, target)
}

// CloseView closes the viewer toward its stored animation target.
func (c *Controller) CloseView() {
	c.mu.RLock()
	ctrl := c.controls
	c.mu.RUnlock()
	if ctrl == nil || ctrl.Close == nil {
		return
	}
	ctrl.Close(nil)
}

// Context exposes the controller together with the current source and
// animation target, so arbitrary child UI (a close button, a caption) can
// act on the viewer without re-deriving state.
type Context struct {
	Controller *Controller
	Source     *imgsource.Source
	Target     geometry.Target
}
