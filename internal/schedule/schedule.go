// Package schedule abstracts deferred execution so UI timers can run on real
// clocks in production and on a hand-cranked clock in tests.
package schedule

import (
	"sync"
	"time"
)

// Timer is a handle to a pending callback. Stop cancels the callback if it
// has not fired yet.
type Timer interface {
	Stop() bool
}

// Scheduler arranges for a function to run after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real schedules on the runtime timer wheel.
type Real struct{}

// NewReal returns a Scheduler backed by time.AfterFunc.
func NewReal() Real { return Real{} }

func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a deterministic Scheduler for tests. Callbacks fire only when the
// test advances the clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending map[int]*manualEntry
}

type manualEntry struct {
	due time.Duration
	fn  func()
}

// NewManual returns a Manual scheduler with its clock at zero.
func NewManual() *Manual {
	return &Manual{pending: map[int]*manualEntry{}}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.pending[id] = &manualEntry{due: m.now + d, fn: fn}
	return &manualTimer{scheduler: m, id: id}
}

// Advance moves the clock forward and fires every callback that comes due,
// earliest first. The clock steps to each callback's due time before the
// callback runs, so work rescheduled from inside a callback still fires in
// the same Advance when its delay fits within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now + d
	m.mu.Unlock()

	for {
		entry := m.popDue(deadline)
		if entry == nil {
			break
		}
		m.mu.Lock()
		if entry.due > m.now {
			m.now = entry.due
		}
		m.mu.Unlock()
		entry.fn()
	}

	m.mu.Lock()
	m.now = deadline
	m.mu.Unlock()
}

// Pending reports how many callbacks are waiting to fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *Manual) popDue(deadline time.Duration) *manualEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	bestID := 0
	for id, entry := range m.pending {
		if entry.due > deadline {
			continue
		}
		if bestID == 0 || entry.due < m.pending[bestID].due || (entry.due == m.pending[bestID].due && id < bestID) {
			bestID = id
		}
	}
	if bestID == 0 {
		return nil
	}
	entry := m.pending[bestID]
	delete(m.pending, bestID)
	return entry
}

type manualTimer struct {
	scheduler *Manual
	id        int
}

func (t *manualTimer) Stop() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	if _, ok := t.scheduler.pending[t.id]; !ok {
		return false
	}
	delete(t.scheduler.pending, t.id)
	return true
}
