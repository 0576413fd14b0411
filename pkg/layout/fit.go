// Package layout computes the aspect-fit presentation of an image inside
// a viewport and the per-tick style frame the external renderer paints.
//
// Everything in this package is a pure function of its inputs. The frame
// derivation in particular takes viewer state, viewport size, and the
// image's natural size and returns a complete style description; it never
// touches the rendering surface itself.
package layout

// Size is a width/height pair in viewport units or natural image pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Mode selects which axis the image fills and where the spare margin goes.
type Mode int

const (
	// ModeVertical centers the image vertically: the image fills the
	// container width and the spare height is letterboxed top/bottom.
	// Chosen when the image is relatively wider than the viewport.
	ModeVertical Mode = iota

	// ModeHorizontal centers the image horizontally: the image fills the
	// container height and the spare width is pillarboxed left/right.
	ModeHorizontal
)

// String returns the mode name for logs and JSON output.
func (m Mode) String() string {
	if m == ModeVertical {
		return "vertical"
	}
	return "horizontal"
}

// Fit describes the centered aspect-fit of an image in a viewport.
type Fit struct {
	Mode Mode
	// PadX is the symmetric left/right padding in ModeHorizontal.
	// Always zero in ModeVertical, never negative.
	PadX float64
}

// AspectRatio returns height/width, or 1 when either dimension is unknown
// or zero. The fallback keeps every downstream division well-defined
// before an image has finished loading.
func AspectRatio(s Size) float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return s.Height / s.Width
}

// FitImage computes the aspect-fit of an image with the given natural size
// inside the viewport. An image exactly matching the viewport's aspect
// ratio takes the horizontal-centering branch.
func FitImage(viewport, natural Size) Fit {
	imageAspect := AspectRatio(natural)
	screenAspect := AspectRatio(viewport)

	if imageAspect < screenAspect {
		return Fit{Mode: ModeVertical}
	}

	pad := (viewport.Width - (screenAspect/imageAspect)*viewport.Width) / 2
	if pad < 0 {
		pad = 0
	}
	return Fit{Mode: ModeHorizontal, PadX: pad}
}
