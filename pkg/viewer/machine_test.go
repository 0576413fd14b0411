package viewer

import (
	"testing"
	"time"

	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
	"github.com/askonen/zoomview/pkg/layout"
)

// newTestMachine returns a machine on a virtual clock with a 1000x1000
// viewport.
func newTestMachine(t *testing.T) (*Machine, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	m := New(WithScheduler(sched))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})
	return m, sched
}

func TestOpenSequencing(t *testing.T) {
	m, sched := newTestMachine(t)

	if !m.Open(imgsource.FromURL("https://example.com/a.jpg"), geometry.NewStatic(100, 100, 50, 50), nil) {
		t.Fatal("Open rejected on idle machine")
	}

	// Immediately after the call: visible, opening, updating.
	s := m.State()
	if !s.Visible || !s.Opening || !s.Updating {
		t.Fatalf("after Open: %+v, want Visible, Opening, Updating all true", s)
	}
	if s.Closing {
		t.Fatal("Closing must never be true while Opening")
	}

	// The zero-delay pulse ends the updating tick without touching the
	// opening phase.
	sched.Advance(0)
	s = m.State()
	if s.Updating {
		t.Fatal("Updating still true after pulse")
	}
	if !s.Opening || !s.Visible {
		t.Fatalf("after pulse: %+v, want Opening and Visible", s)
	}

	// One tick short of the duration nothing more happens.
	sched.Advance(DefaultDuration - time.Millisecond)
	if s := m.State(); !s.Opening {
		t.Fatal("Opening ended before the duration elapsed")
	}

	sched.Advance(time.Millisecond)
	s = m.State()
	if s.Opening || s.Updating {
		t.Fatalf("after duration: %+v, want steady open state", s)
	}
	if !s.Visible {
		t.Fatal("Visible must stay true after the open transition")
	}
}

func TestOpenPulseBeforeDurationCallback(t *testing.T) {
	sched := NewManualScheduler()
	m := New(WithScheduler(sched), WithDuration(0))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})

	// With a zero duration both callbacks are due at the same instant;
	// the pulse was scheduled first and must be observed first.
	var sawOpeningAtPulse bool
	m.Open(imgsource.FromURL("x"), nil, func() { sawOpeningAtPulse = m.State().Opening })
	sched.Advance(0)

	if !sawOpeningAtPulse {
		t.Fatal("pulse delivered after the phase-end callback")
	}
	if s := m.State(); s.Opening || s.Updating {
		t.Fatalf("after zero-duration open: %+v, want settled", s)
	}
}

func TestOpenResolvesFallbackTarget(t *testing.T) {
	m, _ := newTestMachine(t)

	m.Open(imgsource.FromURL("https://example.com/a.jpg"), nil, nil)

	got := m.State().Target.Bounds()
	want := geometry.Rect{X: 500, Y: 500, Width: 10, Height: 10}
	if got != want {
		t.Errorf("fallback target = %+v, want %+v", got, want)
	}
}

// surfaceElement is an image handle that also reports screen bounds.
type surfaceElement struct {
	url  string
	box  geometry.Rect
	w, h float64
}

func (e *surfaceElement) SourceURL() string          { return e.url }
func (e *surfaceElement) BoundingBox() geometry.Rect { return e.box }
func (e *surfaceElement) RenderedSize() (float64, float64) {
	return e.w, e.h
}

func TestOpenUsesElementSourceAsTarget(t *testing.T) {
	m, _ := newTestMachine(t)

	el := &surfaceElement{
		url: "https://example.com/thumb.jpg",
		box: geometry.Rect{X: 100, Y: 100, Width: 50, Height: 50},
		w:   50, h: 50,
	}
	m.Open(imgsource.FromElement(el), nil, nil)

	got := m.State().Target.Bounds()
	want := geometry.Rect{X: 100, Y: 100, Width: 50, Height: 50}
	if got != want {
		t.Errorf("element-derived target = %+v, want %+v", got, want)
	}
}

func TestConcurrentRequestsDropped(t *testing.T) {
	m, sched := newTestMachine(t)

	m.Open(imgsource.FromURL("a"), geometry.NewStatic(0, 0, 1, 1), nil)
	sched.Advance(0)

	// Close during the open window is dropped: Closing never becomes true.
	if m.Close(nil) {
		t.Error("Close accepted while opening")
	}
	if s := m.State(); s.Closing {
		t.Fatal("Closing became true during the open window")
	}

	// A second open during the window is dropped too.
	if m.Open(imgsource.FromURL("b"), nil, nil) {
		t.Error("second Open accepted while opening")
	}
	if got := m.State().Source.URL(); got != "a" {
		t.Errorf("source = %q, want the first open's source", got)
	}

	// After completion the machine accepts requests again.
	sched.Advance(DefaultDuration)
	if !m.Close(nil) {
		t.Error("Close rejected after the open transition completed")
	}
}

func TestCloseSequencing(t *testing.T) {
	m, sched := newTestMachine(t)
	m.Open(imgsource.FromURL("a"), geometry.NewStatic(100, 100, 50, 50), nil)
	sched.Advance(DefaultDuration)

	if !m.Close(nil) {
		t.Fatal("Close rejected on open machine")
	}
	s := m.State()
	if !s.Closing || !s.Updating || !s.Visible {
		t.Fatalf("after Close: %+v, want Closing, Updating, Visible", s)
	}

	sched.Advance(0)
	if s := m.State(); s.Updating {
		t.Fatal("Updating still true after close pulse")
	}

	sched.Advance(DefaultDuration)
	s = m.State()
	if s.Closing || s.Visible {
		t.Fatalf("after close duration: %+v, want hidden idle state", s)
	}
	if s.Target != nil {
		t.Error("Target should be discarded when the close transition finishes")
	}
}

func TestCloseWhenClosedIsNoop(t *testing.T) {
	m, _ := newTestMachine(t)
	if m.Close(nil) {
		t.Error("Close accepted on a never-opened machine")
	}
	if s := m.State(); s.Closing || s.Visible || s.Updating {
		t.Fatalf("state after no-op Close: %+v, want untouched", s)
	}
}

func TestCloseWithReplacementTarget(t *testing.T) {
	m, sched := newTestMachine(t)
	m.Open(imgsource.FromURL("a"), geometry.NewStatic(100, 100, 50, 50), nil)
	sched.Advance(DefaultDuration)

	replacement := geometry.NewStatic(700, 700, 20, 20)
	m.Close(replacement)

	if got := m.State().Target.Bounds(); got != replacement.Bounds() {
		t.Errorf("close target = %+v, want the replacement rect", got)
	}
}

func TestReopenAfterFullCycle(t *testing.T) {
	m, sched := newTestMachine(t)

	m.Open(imgsource.FromURL("first"), nil, nil)
	sched.Advance(DefaultDuration)
	m.Close(nil)
	sched.Advance(DefaultDuration)

	if !m.Open(imgsource.FromURL("second"), nil, nil) {
		t.Fatal("Open rejected after a completed cycle")
	}
	s := m.State()
	if !s.Visible || !s.Opening {
		t.Fatalf("reopen state: %+v", s)
	}
	if got := s.Source.URL(); got != "second" {
		t.Errorf("source = %q, want the new open's source", got)
	}
}

func TestReopenWhileFullyOpenRestartsCycle(t *testing.T) {
	m, sched := newTestMachine(t)

	m.Open(imgsource.FromURL("first"), nil, nil)
	sched.Advance(DefaultDuration)

	// Not animating anymore, so a fresh open is accepted and replaces
	// the source descriptor.
	if !m.Open(imgsource.FromURL("second"), nil, nil) {
		t.Fatal("Open rejected on a steadily open machine")
	}
	s := m.State()
	if !s.Opening || !s.Updating {
		t.Fatalf("restart state: %+v", s)
	}
	if got := s.Source.URL(); got != "second" {
		t.Errorf("source = %q, want replaced descriptor", got)
	}
}

func TestOpenEndToEnd(t *testing.T) {
	// Scenario: viewport 1000x1000, element at (100,100,50,50).
	m, sched := newTestMachine(t)

	target := geometry.NewStatic(100, 100, 50, 50)
	m.Open(imgsource.FromURL("https://example.com/photo.jpg"), target, nil)

	s := m.State()
	if !s.Visible || !s.Opening {
		t.Fatalf("immediately after open: %+v", s)
	}
	if got := s.Target.Bounds(); got != (geometry.Rect{X: 100, Y: 100, Width: 50, Height: 50}) {
		t.Errorf("animation target = %+v", got)
	}

	sched.Advance(0)
	sched.Advance(DefaultDuration)

	s = m.State()
	if s.Opening {
		t.Fatal("still opening after duration")
	}
	frame := m.Frame()
	if !frame.Container.Fullscreen {
		t.Error("container should be fullscreen after the open transition")
	}
	if frame.Container.Rect != (geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}) {
		t.Errorf("container rect = %+v, want full viewport", frame.Container.Rect)
	}
}

func TestNotifySnapshots(t *testing.T) {
	sched := NewManualScheduler()
	var states []State
	m := New(WithScheduler(sched), WithNotify(func(s State) { states = append(states, s) }))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})
	states = states[:0]

	m.Open(imgsource.FromURL("a"), nil, nil)
	sched.Advance(0)
	sched.Advance(DefaultDuration)

	if len(states) != 3 {
		t.Fatalf("notifications = %d, want 3 (open, pulse, phase end)", len(states))
	}
	if !states[0].Updating || states[1].Updating {
		t.Error("notification order should show the updating pulse ending second")
	}
	if !states[1].Opening || states[2].Opening {
		t.Error("notification order should show opening ending last")
	}
}

func TestSetNaturalSizeResetOnOpen(t *testing.T) {
	m, sched := newTestMachine(t)
	m.Open(imgsource.FromURL("a"), nil, nil)
	m.SetNaturalSize(layout.Size{Width: 2000, Height: 1000})
	sched.Advance(DefaultDuration)
	m.Close(nil)
	sched.Advance(DefaultDuration)

	// A new open starts a new image cycle: dimensions are unknown again.
	m.Open(imgsource.FromURL("b"), nil, nil)
	if got := m.NaturalSize(); got != (layout.Size{}) {
		t.Errorf("natural size after reopen = %+v, want unknown", got)
	}
}
