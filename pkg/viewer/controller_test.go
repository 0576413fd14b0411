package viewer

import (
	"testing"

	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
	"github.com/askonen/zoomview/pkg/layout"
)

func TestControllerUnboundIsNoop(t *testing.T) {
	c := NewController()
	if c.Bound() {
		t.Fatal("new controller reports bound")
	}

	// Neither call may panic or have any effect before a view binds.
	c.OpenView(imgsource.FromURL("a"), nil)
	c.OpenViewFromElement(imgsource.FromURL("a"), nil)
	c.CloseView()
}

func TestControllerForwardsToMachine(t *testing.T) {
	sched := NewManualScheduler()
	m := New(WithScheduler(sched))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})

	c := NewController()
	m.Attach(c)
	if !c.Bound() {
		t.Fatal("controller not bound after Attach")
	}

	c.OpenView(imgsource.FromURL("https://example.com/a.jpg"), geometry.NewStatic(1, 2, 3, 4))
	if s := m.State(); !s.Visible || !s.Opening {
		t.Fatalf("machine state after OpenView: %+v", s)
	}

	sched.Advance(DefaultDuration)
	c.CloseView()
	if s := m.State(); !s.Closing {
		t.Fatalf("machine state after CloseView: %+v", s)
	}
}

func TestControllerOpenViewFromElement(t *testing.T) {
	sched := NewManualScheduler()
	m := New(WithScheduler(sched))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})
	c := NewController()
	m.Attach(c)

	el := &surfaceElement{
		url: "https://example.com/thumb.jpg",
		box: geometry.Rect{X: 40, Y: 60, Width: 32, Height: 32},
		w:   32, h: 32,
	}
	c.OpenViewFromElement(imgsource.FromElement(el), el)

	got := m.State().Target.Bounds()
	want := geometry.Rect{X: 40, Y: 60, Width: 32, Height: 32}
	if got != want {
		t.Errorf("target = %+v, want the element's live bounds %+v", got, want)
	}
}

func TestControllerLastBindWins(t *testing.T) {
	c := NewController()

	var first, second int
	c.Bind(Controls{Open: func(*imgsource.Source, geometry.Target) { first++ }})
	c.Bind(Controls{Open: func(*imgsource.Source, geometry.Target) { second++ }})

	c.OpenView(nil, nil)
	if first != 0 || second != 1 {
		t.Errorf("handler calls = (%d,%d), want only the last binding invoked", first, second)
	}
}

func TestControllerUnbind(t *testing.T) {
	c := NewController()
	called := 0
	c.Bind(Controls{Close: func(geometry.Target) { called++ }})
	c.Unbind()

	c.CloseView()
	if called != 0 {
		t.Error("handler invoked after Unbind")
	}
	if c.Bound() {
		t.Error("Bound() = true after Unbind")
	}
}

func TestMachineContext(t *testing.T) {
	sched := NewManualScheduler()
	m := New(WithScheduler(sched))
	m.SetViewport(layout.Size{Width: 1000, Height: 1000})
	c := NewController()
	m.Attach(c)

	src := imgsource.FromURL("https://example.com/a.jpg")
	c.OpenView(src, geometry.NewStatic(1, 1, 1, 1))

	ctx := m.Context(c)
	if ctx.Controller != c {
		t.Error("context controller mismatch")
	}
	if ctx.Source != src {
		t.Error("context source mismatch")
	}
	if ctx.Target == nil {
		t.Error("context target missing while open")
	}
}
