package sequencer

import (
	"sync"
	"time"
)

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The scheduler never sleeps; it only asks the
// clock to call it back.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is backed by time.AfterFunc.
var SystemClock Clock = systemClock{}

// ManualClock is a virtual clock. Time only moves on Advance, and due
// callbacks run on the goroutine calling Advance, in deadline order.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	id    uint64
	at    time.Duration
	fn    func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (m *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.nextID++
	t := &manualTimer{clock: m, id: m.nextID, at: m.now + d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

// Now returns elapsed virtual time.
func (m *ManualClock) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of scheduled, unfired timers.
func (m *ManualClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves virtual time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks during the advance.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		idx := -1
		for i, t := range m.timers {
			if t.at > target {
				continue
			}
			if idx < 0 || t.at < m.timers[idx].at || (t.at == m.timers[idx].at && t.id < m.timers[idx].id) {
				idx = i
			}
		}
		if idx < 0 {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := m.timers[idx]
		m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
		m.now = t.at
		m.mu.Unlock()

		t.fn()
	}
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}
