package viewer

import (
	"sort"
	"sync"
	"time"
)

// Scheduler delivers deferred callbacks for phase transitions. The machine
// schedules exactly two callbacks per transition: a zero-delay pulse that
// ends the updating tick, and a duration-delay callback that ends the
// phase. Implementations must deliver callbacks with equal readiness in
// the order they were scheduled, so the pulse is always observed before
// the phase end.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
}

// TimerScheduler runs callbacks on real timers. This is the production
// scheduler; each callback fires on its own timer goroutine and
// re-serializes through the machine's lock.
type TimerScheduler struct{}

// Schedule fires fn after d.
func (TimerScheduler) Schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ManualScheduler is a virtual-clock scheduler for tests. Nothing fires
// until Advance moves the clock; callbacks due at the same instant run in
// scheduling order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []manualEntry
}

type manualEntry struct {
	due time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fn to run once the virtual clock has advanced by d.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = append(s.pending, manualEntry{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the virtual clock forward by d and runs every callback
// that became due, in due-time then scheduling order. Callbacks may
// schedule further callbacks; those run too if already due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()

	for {
		fn := s.takeDue()
		if fn == nil {
			return
		}
		fn()
	}
}

// Pending returns the number of callbacks not yet delivered.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// takeDue pops the earliest due callback, or nil if none is ready.
func (s *ManualScheduler) takeDue() func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due != s.pending[j].due {
			return s.pending[i].due < s.pending[j].due
		}
		return s.pending[i].seq < s.pending[j].seq
	})

	if len(s.pending) == 0 || s.pending[0].due > s.now {
		return nil
	}
	fn := s.pending[0].fn
	s.pending = s.pending[1:]
	return fn
}
