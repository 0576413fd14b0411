package layout

import "github.com/askonen/zoomview/pkg/geometry"

// Lerp linearly interpolates between a and b at t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic is the smooth in-out timing curve used for zoom
// transitions. Input outside [0,1] is clamped.
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Interpolate returns the rectangle between from and to at eased progress
// t. Hosts without a declarative transition mechanism (the terminal demo,
// for one) call this once per animation frame with t = elapsed/duration.
func Interpolate(from, to geometry.Rect, t float64) geometry.Rect {
	e := EaseInOutCubic(t)
	return geometry.Rect{
		X:      Lerp(from.X, to.X, e),
		Y:      Lerp(from.Y, to.Y, e),
		Width:  Lerp(from.Width, to.Width, e),
		Height: Lerp(from.Height, to.Height, e),
	}
}
