package sched

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrLoopClosed is returned when work is submitted to a closed loop.
var ErrLoopClosed = errors.New("sched: loop is closed")

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the time between idle slices. Default 16ms.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithBudget sets the length of each idle slice. Default is half the
// interval, leaving the rest of the tick for submitted tasks.
func WithBudget(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.budget = d
		}
	}
}

// WithLoopLogger sets the logger used to report panicking tasks.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is a Scheduler backed by a single goroutine. Idle callbacks and
// submitted tasks all run on that goroutine, one at a time.
type Loop struct {
	interval time.Duration
	budget   time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	idle   []func(Deadline)
	tasks  []func()
	closed bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewLoop creates a loop. Call Start or Run to begin processing.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		interval: 16 * time.Millisecond,
		logger:   slog.Default(),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.budget == 0 {
		l.budget = l.interval / 2
	}
	return l
}

// Start runs the loop on a new goroutine.
func (l *Loop) Start() {
	go func() { _ = l.Run(context.Background()) }()
}

// Run processes tasks and idle slices until ctx is done or Close is called.
// It blocks, and must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.markClosed()
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.wake:
			l.runTasks()
		case <-ticker.C:
			l.runTasks()
			l.runIdle(Budget(l.budget))
		}
	}
}

// ScheduleIdle implements Scheduler. Callbacks scheduled on a closed loop
// are dropped.
func (l *Loop) ScheduleIdle(cb func(Deadline)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.idle = append(l.idle, cb)
	}
}

// Submit queues fn to run on the loop goroutine ahead of the next idle
// slice. It is safe for concurrent use.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Call submits fn and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Submit(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Pending tasks and idle callbacks are discarded.
// Done reports when the goroutine has exited.
func (l *Loop) Close() error {
	if !l.markClosed() {
		return ErrLoopClosed
	}
	l.once.Do(func() { close(l.stop) })
	return nil
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) markClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.closed = true
	l.tasks, l.idle = nil, nil
	return true
}

func (l *Loop) runTasks() {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range batch {
		l.safeExecute(fn)
	}
}

func (l *Loop) runIdle(d Deadline) {
	l.mu.Lock()
	batch := l.idle
	l.idle = nil
	l.mu.Unlock()

	for _, cb := range batch {
		l.safeExecute(func() { cb(d) })
	}
}

// safeExecute keeps the loop alive when a task panics.
func (l *Loop) safeExecute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("sched: task panicked", "panic", r)
		}
	}()
	fn()
}
