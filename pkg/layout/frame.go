package layout

import "github.com/askonen/zoomview/pkg/geometry"

// DefaultBackdropColor is the backdrop fill used when the host configures
// nothing else.
const DefaultBackdropColor = "#000000"

// Frame is the complete style description for one render tick. The
// external renderer applies it verbatim; nothing here carries state
// between ticks.
type Frame struct {
	Backdrop  Backdrop  `json:"backdrop"`
	Container Container `json:"container"`
	Image     Image     `json:"image"`
}

// Backdrop styles the full-viewport overlay behind the image.
type Backdrop struct {
	// Opacity is 1 only while the viewer is steadily open; it is 0 when
	// hidden, during the updating pulse, and for the whole close phase.
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"`
	// TransitionMS is the duration style changes should animate over.
	// Zero means snap instantly.
	TransitionMS int `json:"transition_ms"`
}

// Container styles the box the image is laid out in.
type Container struct {
	// Rect is the container box. While the updating pulse or the close
	// phase pins the box, this is the raw animation-target rectangle;
	// otherwise it is the full viewport at (0,0).
	Rect geometry.Rect `json:"rect"`
	// Fullscreen is true when Rect covers the whole viewport and the
	// aspect-fit padding applies.
	Fullscreen bool `json:"fullscreen"`
	// PadX is the symmetric horizontal padding from the aspect fit.
	// Forced to zero while the box is pinned to the animation target.
	PadX         float64 `json:"pad_x"`
	TransitionMS int     `json:"transition_ms"`
}

// Image carries the letterbox/pillarbox mode flags for the image element.
type Image struct {
	// FillWidth: the image spans the container width (vertical centering).
	FillWidth bool `json:"fill_width"`
	// FillHeight: the image spans the container height (horizontal centering).
	FillHeight bool `json:"fill_height"`
}
