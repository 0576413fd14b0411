// Package geometry models viewport-relative rectangles and the animation
// targets a zoom transition starts from and returns to.
//
// A target is anything that can report its current bounds. Two variants
// exist behind the same interface:
//
//	Static ("static"):
//	  - Fixed coordinates captured at construction. Used for explicit
//	    caller-supplied rectangles and the screen-center fallback.
//
//	Surface-bound ("live"):
//	  - Re-queries an external rendering surface on every read, so the
//	    reported bounds track scrolling and resizing. Position comes from
//	    the surface's bounding-box query, size from its rendered-box
//	    query; the two may disagree and both readings are preserved.
package geometry

// Rect is a rectangle in viewport coordinates.
// Width and Height are expected to be non-negative.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Surface is the read side of an on-screen element: the queries the
// external rendering surface answers about it. Both queries reflect the
// element's state at call time, never a cached snapshot.
type Surface interface {
	// BoundingBox returns the element's current on-screen position rect.
	BoundingBox() Rect

	// RenderedSize returns the element's current layout box size. This is
	// the content box, which is not necessarily equal to the bounding
	// box's size.
	RenderedSize() (width, height float64)
}

// Target provides the animation rectangle for a transition. Bounds is
// called on every render tick, so live-bound implementations stay in sync
// with the surface they wrap.
type Target interface {
	Bounds() Rect
}

// Static is a Target with fixed bounds.
type Static struct {
	Rect Rect
}

// NewStatic creates a fixed-bounds target from explicit coordinates.
func NewStatic(x, y, width, height float64) Static {
	return Static{Rect: Rect{X: x, Y: y, Width: width, Height: height}}
}

// Bounds returns the rectangle captured at construction.
func (s Static) Bounds() Rect { return s.Rect }

// surfaceTarget binds a target to a live surface element.
type surfaceTarget struct {
	surface Surface
}

// FromSurface creates a live-bound target. Every Bounds call re-queries
// the surface: X and Y come from the bounding box, Width and Height from
// the rendered box size.
func FromSurface(s Surface) Target {
	return surfaceTarget{surface: s}
}

func (t surfaceTarget) Bounds() Rect {
	box := t.surface.BoundingBox()
	w, h := t.surface.RenderedSize()
	return Rect{X: box.X, Y: box.Y, Width: w, Height: h}
}

// Ensure both variants implement Target.
var (
	_ Target = Static{}
	_ Target = surfaceTarget{}
)
