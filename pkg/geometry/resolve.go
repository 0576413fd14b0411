package geometry

// fallbackSize is the edge length of the degenerate rectangle used when no
// element or explicit target is available. The image then appears to zoom
// out of a small square at the screen center.
const fallbackSize = 10

// FallbackTarget returns the degenerate centered target for a viewport of
// the given dimensions.
func FallbackTarget(viewportWidth, viewportHeight float64) Target {
	return Static{Rect: Rect{
		X:      viewportWidth / 2,
		Y:      viewportHeight / 2,
		Width:  fallbackSize,
		Height: fallbackSize,
	}}
}

// Resolve picks the animation target for a transition. Preference order:
// the explicit target, then a live binding to the supplied surface, then
// the centered fallback. It never fails.
func Resolve(explicit Target, surface Surface, viewportWidth, viewportHeight float64) Target {
	if explicit != nil {
		return explicit
	}
	if surface != nil {
		return FromSurface(surface)
	}
	return FallbackTarget(viewportWidth, viewportHeight)
}
