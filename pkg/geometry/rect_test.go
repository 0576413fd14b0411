package geometry

import "testing"

// fakeSurface is a mutable surface whose queries are counted, so tests
// can prove targets re-read it instead of snapshotting.
type fakeSurface struct {
	box       Rect
	rw, rh    float64
	boxReads  int
	sizeReads int
}

func (s *fakeSurface) BoundingBox() Rect {
	s.boxReads++
	return s.box
}

func (s *fakeSurface) RenderedSize() (float64, float64) {
	s.sizeReads++
	return s.rw, s.rh
}

func TestStaticBounds(t *testing.T) {
	target := NewStatic(10, 20, 30, 40)
	want := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if got := target.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	// A second read returns the identical snapshot.
	if got := target.Bounds(); got != want {
		t.Errorf("second Bounds() = %+v, want %+v", got, want)
	}
}

func TestSurfaceTargetReadsLive(t *testing.T) {
	surface := &fakeSurface{
		box: Rect{X: 100, Y: 100, Width: 48, Height: 48},
		rw:  50, rh: 50,
	}
	target := FromSurface(surface)

	got := target.Bounds()
	if got.X != 100 || got.Y != 100 {
		t.Errorf("position = (%v,%v), want (100,100)", got.X, got.Y)
	}
	if got.Width != 50 || got.Height != 50 {
		t.Errorf("size = (%v,%v), want rendered box (50,50)", got.Width, got.Height)
	}

	// Scroll the element and resize it; the target must track both.
	surface.box = Rect{X: 100, Y: 40, Width: 48, Height: 48}
	surface.rw, surface.rh = 64, 32

	got = target.Bounds()
	if got.Y != 40 {
		t.Errorf("after scroll, Y = %v, want 40", got.Y)
	}
	if got.Width != 64 || got.Height != 32 {
		t.Errorf("after resize, size = (%v,%v), want (64,32)", got.Width, got.Height)
	}

	if surface.boxReads != 2 || surface.sizeReads != 2 {
		t.Errorf("reads = (%d box, %d size), want one of each per Bounds call",
			surface.boxReads, surface.sizeReads)
	}
}

func TestSurfaceTargetSizeAsymmetry(t *testing.T) {
	// Position comes from the bounding box, size from the rendered box,
	// even when the two disagree.
	surface := &fakeSurface{
		box: Rect{X: 5, Y: 6, Width: 120, Height: 80},
		rw:  100, rh: 60,
	}
	got := FromSurface(surface).Bounds()
	want := Rect{X: 5, Y: 6, Width: 100, Height: 60}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestFallbackTarget(t *testing.T) {
	tests := []struct {
		name   string
		vw, vh float64
		want   Rect
	}{
		{"Square", 1000, 1000, Rect{X: 500, Y: 500, Width: 10, Height: 10}},
		{"Wide", 1920, 1080, Rect{X: 960, Y: 540, Width: 10, Height: 10}},
		{"Zero", 0, 0, Rect{X: 0, Y: 0, Width: 10, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackTarget(tt.vw, tt.vh).Bounds(); got != tt.want {
				t.Errorf("FallbackTarget(%v,%v) = %+v, want %+v", tt.vw, tt.vh, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	explicit := NewStatic(1, 2, 3, 4)
	surface := &fakeSurface{box: Rect{X: 9, Y: 9}, rw: 7, rh: 7}

	t.Run("ExplicitWins", func(t *testing.T) {
		got := Resolve(explicit, surface, 1000, 1000)
		if got.Bounds() != explicit.Bounds() {
			t.Errorf("Resolve with explicit target = %+v, want %+v", got.Bounds(), explicit.Bounds())
		}
	})

	t.Run("SurfaceWhenNoExplicit", func(t *testing.T) {
		got := Resolve(nil, surface, 1000, 1000)
		want := Rect{X: 9, Y: 9, Width: 7, Height: 7}
		if got.Bounds() != want {
			t.Errorf("Resolve with surface = %+v, want %+v", got.Bounds(), want)
		}
	})

	t.Run("FallbackWhenNothing", func(t *testing.T) {
		got := Resolve(nil, nil, 1000, 1000)
		want := Rect{X: 500, Y: 500, Width: 10, Height: 10}
		if got.Bounds() != want {
			t.Errorf("Resolve fallback = %+v, want %+v", got.Bounds(), want)
		}
	})
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	cx, cy := r.Center()
	if cx != 25 || cy != 40 {
		t.Errorf("Center() = (%v,%v), want (25,40)", cx, cy)
	}
	if r.Empty() {
		t.Error("Empty() = true for non-degenerate rect")
	}
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("Empty() = false for zero-width rect")
	}
}
