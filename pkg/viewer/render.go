package viewer

import (
	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/layout"
)

// Render derives the style frame for one tick as a pure function of state
// and the image's natural size. It holds the whole visual contract:
//
//   - Backdrop opacity is 1 only while steadily visible: not during the
//     updating pulse and not at any point of the close phase. The close
//     phase drops the backdrop immediately rather than fading it out;
//     only the open direction fades.
//   - While the updating pulse or the close phase is active, the
//     container is pinned to the raw animation-target rectangle with no
//     aspect-fit padding, keeping the box anchored to the thumbnail
//     until the transform animation takes over.
//   - Otherwise the container is the full viewport at (0,0) with the
//     aspect-fit padding applied.
//   - Transitions run over the machine duration only while animating;
//     idle style changes (window resizes) snap with zero duration.
func Render(s State, natural layout.Size) layout.Frame {
	transition := 0
	if s.Animating() {
		transition = int(DefaultDuration.Milliseconds())
	}

	opacity := 0.0
	if s.Visible && !s.Updating && !s.Closing {
		opacity = 1
	}

	fit := layout.FitImage(s.Viewport, natural)

	frame := layout.Frame{
		Backdrop: layout.Backdrop{
			Opacity:      opacity,
			Color:        layout.DefaultBackdropColor,
			TransitionMS: transition,
		},
		Image: layout.Image{
			FillWidth:  fit.Mode == layout.ModeVertical,
			FillHeight: fit.Mode == layout.ModeHorizontal,
		},
	}

	if (s.Updating || s.Closing) && s.Target != nil {
		frame.Container = layout.Container{
			Rect:         s.Target.Bounds(),
			Fullscreen:   false,
			PadX:         0,
			TransitionMS: transition,
		}
		return frame
	}

	frame.Container = layout.Container{
		Rect: geometry.Rect{
			X:      0,
			Y:      0,
			Width:  s.Viewport.Width,
			Height: s.Viewport.Height,
		},
		Fullscreen:   true,
		PadX:         fit.PadX,
		TransitionMS: transition,
	}
	return frame
}
