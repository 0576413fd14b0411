package layout

import (
	"math"
	"testing"

	"github.com/askonen/zoomview/pkg/geometry"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{10, 0, 0.5, 5},
		{-10, 10, 0.75, 5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v,%v,%v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	if got := EaseInOutCubic(0); got != 0 {
		t.Errorf("ease(0) = %v, want 0", got)
	}
	if got := EaseInOutCubic(1); got != 1 {
		t.Errorf("ease(1) = %v, want 1", got)
	}
	if got := EaseInOutCubic(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ease(0.5) = %v, want 0.5", got)
	}
	// Clamped outside [0,1].
	if EaseInOutCubic(-1) != 0 || EaseInOutCubic(2) != 1 {
		t.Error("ease should clamp input to [0,1]")
	}
	// Monotonically non-decreasing over the unit interval.
	prev := 0.0
	for i := 0; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}

func TestInterpolate(t *testing.T) {
	from := geometry.Rect{X: 100, Y: 100, Width: 50, Height: 50}
	to := geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

	if got := Interpolate(from, to, 0); got != from {
		t.Errorf("Interpolate(t=0) = %+v, want start rect", got)
	}
	if got := Interpolate(from, to, 1); got != to {
		t.Errorf("Interpolate(t=1) = %+v, want end rect", got)
	}

	mid := Interpolate(from, to, 0.5)
	if math.Abs(mid.X-50) > 1e-9 || math.Abs(mid.Width-525) > 1e-9 {
		t.Errorf("Interpolate(t=0.5) = %+v, want midpoint (eased 0.5)", mid)
	}
}
