// Package viewer implements the zoom transition state machine and the
// controller facade hosts call into.
//
// The machine owns a single mutable State and sequences the open and
// close transitions through two scheduled callbacks each: a zero-delay
// pulse that ends the one-tick updating phase, and a duration-delay
// callback that ends the opening or closing phase. Requests that arrive
// while a transition is running are silently dropped, which also means no
// two timers ever race on the same transition.
//
// State is turned into something paintable by Render, a pure function
// from (state, natural image size) to a layout.Frame. Hosts re-render on
// every change notification and apply the frame verbatim.
package viewer

import (
	"sync"
	"time"

	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
	"github.com/askonen/zoomview/pkg/layout"
)

// DefaultDuration is the length of the open and close transitions.
const DefaultDuration = 2000 * time.Millisecond

// State is the viewer state snapshot consumed by Render. Opening and
// Closing are never both true; Updating is true for exactly one scheduler
// tick at the start of each transition.
type State struct {
	Visible  bool
	Opening  bool
	Closing  bool
	Updating bool

	// Target is the animation rectangle provider. Nil while closed.
	Target geometry.Target
	// Source identifies the image being shown. Replaced on each open.
	Source *imgsource.Source
	// Viewport is the current window size.
	Viewport layout.Size
}

// Animating reports whether a transition is in flight.
func (s State) Animating() bool { return s.Opening || s.Closing }

// Machine sequences zoom transitions. All state mutation happens under
// one lock, entered either from host calls or from scheduled callbacks.
type Machine struct {
	mu      sync.Mutex
	state   State
	natural layout.Size

	duration time.Duration
	backdrop string
	sched    Scheduler
	notify   func(State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithScheduler replaces the production timer scheduler. Tests pass a
// ManualScheduler to drive transitions with a virtual clock.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.sched = s }
}

// WithDuration overrides the transition duration.
func WithDuration(d time.Duration) Option {
	return func(m *Machine) { m.duration = d }
}

// WithBackdropColor overrides the backdrop fill color.
func WithBackdropColor(color string) Option {
	return func(m *Machine) { m.backdrop = color }
}

// WithNotify registers a callback invoked with a state snapshot after
// every mutation. The callback runs outside the machine lock.
func WithNotify(fn func(State)) Option {
	return func(m *Machine) { m.notify = fn }
}

// New creates a machine with the default duration and timer scheduler.
func New(opts ...Option) *Machine {
	m := &Machine{
		duration: DefaultDuration,
		backdrop: layout.DefaultBackdropColor,
		sched:    TimerScheduler{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Duration returns the configured transition duration.
func (m *Machine) Duration() time.Duration { return m.duration }

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetViewport records the current window size. Hosts call this from
// whatever resize subscription they maintain; size changes while idle
// render with a zero transition so they snap instead of animating.
func (m *Machine) SetViewport(s layout.Size) {
	m.mu.Lock()
	m.state.Viewport = s
	m.mu.Unlock()
	m.changed()
}

// SetNaturalSize records the image's natural pixel dimensions once the
// host has them. Before this the aspect ratio defaults to 1.
func (m *Machine) SetNaturalSize(s layout.Size) {
	m.mu.Lock()
	m.natural = s
	m.mu.Unlock()
	m.changed()
}

// NaturalSize returns the recorded natural dimensions, zero if unknown.
func (m *Machine) NaturalSize() layout.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.natural
}

// Open starts the open transition. The target falls back to a live
// binding of the source element, then to the centered degenerate
// rectangle. opened, if non-nil, runs right after the updating pulse.
// Returns false without effect while a transition is already running.
func (m *Machine) Open(src *imgsource.Source, target geometry.Target, opened func()) bool {
	m.mu.Lock()
	if m.state.Animating() {
		m.mu.Unlock()
		return false
	}

	if target == nil {
		var surface geometry.Surface
		if src.IsElement() {
			surface, _ = src.Element().(geometry.Surface)
		}
		target = geometry.Resolve(nil, surface, m.state.Viewport.Width, m.state.Viewport.Height)
	}

	m.natural = layout.Size{}
	m.state.Visible = true
	m.state.Source = src
	m.state.Target = target
	m.state.Opening = true
	m.state.Updating = true
	m.mu.Unlock()
	m.changed()

	// The pulse forces a second render pass so the renderer paints the
	// pre-animation frame before the long transition begins.
	m.sched.Schedule(0, func() {
		m.mu.Lock()
		m.state.Updating = false
		m.mu.Unlock()
		m.changed()
		if opened != nil {
			opened()
		}
	})
	m.sched.Schedule(m.duration, func() {
		m.mu.Lock()
		m.state.Opening = false
		m.mu.Unlock()
		m.changed()
	})
	return true
}

// Close starts the close transition, optionally toward a replacement
// target. Returns false without effect while animating or while not
// visible, so closing an already-closed viewer is a no-op.
func (m *Machine) Close(target geometry.Target) bool {
	m.mu.Lock()
	if m.state.Animating() || !m.state.Visible {
		m.mu.Unlock()
		return false
	}

	if target != nil {
		m.state.Target = target
	}
	m.state.Closing = true
	m.state.Updating = true
	m.mu.Unlock()
	m.changed()

	m.sched.Schedule(0, func() {
		m.mu.Lock()
		m.state.Updating = false
		m.mu.Unlock()
		m.changed()
	})
	m.sched.Schedule(m.duration, func() {
		m.mu.Lock()
		m.state.Closing = false
		m.state.Visible = false
		m.state.Target = nil
		m.mu.Unlock()
		m.changed()
	})
	return true
}

// Frame derives the current style frame. Equivalent to calling Render on
// a snapshot, with the machine's configured backdrop color applied.
func (m *Machine) Frame() layout.Frame {
	m.mu.Lock()
	state := m.state
	natural := m.natural
	color := m.backdrop
	m.mu.Unlock()

	f := Render(state, natural)
	f.Backdrop.Color = color
	if state.Animating() {
		ms := int(m.duration.Milliseconds())
		f.Backdrop.TransitionMS = ms
		f.Container.TransitionMS = ms
	}
	return f
}

// Attach binds this machine to a controller, replacing any previous
// binding. The controller then forwards OpenView/CloseView calls here.
func (m *Machine) Attach(c *Controller) {
	c.Bind(Controls{
		Open: func(src *imgsource.Source, target geometry.Target) {
			m.Open(src, target, nil)
		},
		Close: func(target geometry.Target) {
			m.Close(target)
		},
	})
}

// Context returns the pieces child UI needs to act on the viewer without
// re-deriving state: the controller plus the current source and target.
func (m *Machine) Context(c *Controller) Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Context{
		Controller: c,
		Source:     m.state.Source,
		Target:     m.state.Target,
	}
}

func (m *Machine) changed() {
	if m.notify == nil {
		return
	}
	m.notify(m.State())
}
