package testutil

import (
	"sync"
	"time"
)

// MockTimer implements the after(duration) boundary for testing
// delay-based operators without real waits. Each After call returns a
// channel that fires only when Fire is called.
type MockTimer struct {
	mu      sync.Mutex
	pending []chan time.Time
	waits   []time.Duration
}

// NewMockTimer creates a MockTimer with no pending waits.
func NewMockTimer() *MockTimer {
	return &MockTimer{}
}

// After records the requested duration and returns a channel that
// fires on the next Fire call.
func (m *MockTimer) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan time.Time, 1)
	m.pending = append(m.pending, ch)
	m.waits = append(m.waits, d)
	return ch
}

// Fire releases every pending wait.
func (m *MockTimer) Fire() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	now := time.Now()
	for _, ch := range pending {
		ch <- now
	}
}

// Waits returns the durations requested so far, in order.
func (m *MockTimer) Waits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	waits := make([]time.Duration, len(m.waits))
	copy(waits, m.waits)
	return waits
}

// PendingCount returns the number of waits not yet fired.
func (m *MockTimer) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
