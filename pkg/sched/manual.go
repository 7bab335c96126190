package sched

import "sync"

// Manual is a Scheduler whose slices run only when the caller asks.
type Manual struct {
	mu    sync.Mutex
	queue []func(Deadline)
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// ScheduleIdle implements Scheduler.
func (m *Manual) ScheduleIdle(cb func(Deadline)) {
	m.mu.Lock()
	m.queue = append(m.queue, cb)
	m.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// RunIdle runs one slice: every callback queued before the call is invoked
// with d. Callbacks scheduled while the slice runs wait for the next call.
// It returns the number of callbacks invoked.
func (m *Manual) RunIdle(d Deadline) int {
	m.mu.Lock()
	batch := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, cb := range batch {
		cb(d)
	}
	return len(batch)
}

// RunSlices runs up to n slices, creating a fresh deadline for each, and
// stops early once a slice finds nothing queued. It returns the number of
// slices that ran a callback.
func (m *Manual) RunSlices(n int, deadline func() Deadline) int {
	ran := 0
	for i := 0; i < n; i++ {
		if m.RunIdle(deadline()) == 0 {
			break
		}
		ran++
	}
	return ran
}
