package sched

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestUnitsDeadline(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{3, 3},
		{0, 1},
	}
	for _, tt := range tests {
		d := Units(tt.n)
		// Perform units until the deadline reports no time, as the engine does.
		units := 0
		for {
			units++
			if d.TimeRemaining() <= 0 {
				break
			}
		}
		if units != tt.want {
			t.Errorf("Units(%d) allowed %d units, want %d", tt.n, units, tt.want)
		}
	}
}

func TestBudgetExpires(t *testing.T) {
	d := Budget(-time.Second)
	if got := d.TimeRemaining(); got != 0 {
		t.Errorf("TimeRemaining() = %v, want 0", got)
	}
	if Unlimited().TimeRemaining() <= time.Hour {
		t.Error("Unlimited should never run out")
	}
}

func TestManualRunsOnlyQueuedCallbacks(t *testing.T) {
	m := NewManual()
	calls := 0
	var tick func(Deadline)
	tick = func(Deadline) {
		calls++
		m.ScheduleIdle(tick)
	}
	m.ScheduleIdle(tick)

	if n := m.RunIdle(Unlimited()); n != 1 {
		t.Fatalf("RunIdle = %d, want 1", n)
	}
	if calls != 1 || m.Pending() != 1 {
		t.Errorf("calls = %d, pending = %d; re-armed callback must wait for the next slice", calls, m.Pending())
	}

	ran := m.RunSlices(5, Unlimited)
	if ran != 5 || calls != 6 {
		t.Errorf("RunSlices ran %d, calls = %d", ran, calls)
	}
}

func TestManualRunSlicesStopsWhenEmpty(t *testing.T) {
	m := NewManual()
	m.ScheduleIdle(func(Deadline) {})
	if ran := m.RunSlices(10, Unlimited); ran != 1 {
		t.Errorf("RunSlices = %d, want 1", ran)
	}
}

func TestLoopRunsTasksAndSlices(t *testing.T) {
	l := NewLoop(WithInterval(time.Millisecond))
	l.Start()
	defer l.Close()

	var slices atomic.Int32
	sliced := make(chan struct{})
	l.ScheduleIdle(func(d Deadline) {
		if d.TimeRemaining() <= 0 {
			t.Error("slice started with no time remaining")
		}
		slices.Add(1)
		close(sliced)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var ran bool
	if err := l.Call(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !ran {
		t.Error("Call returned before the task ran")
	}

	select {
	case <-sliced:
	case <-ctx.Done():
		t.Fatal("idle callback never ran")
	}
	if slices.Load() != 1 {
		t.Errorf("slices = %d, want 1", slices.Load())
	}
}

func TestLoopSurvivesPanic(t *testing.T) {
	l := NewLoop(WithInterval(time.Millisecond))
	l.Start()
	defer l.Close()

	_ = l.Submit(func() { panic("boom") })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.Call(ctx, func() {}); err != nil {
		t.Fatalf("loop died after panic: %v", err)
	}
}

func TestLoopClose(t *testing.T) {
	l := NewLoop()
	l.Start()

	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	<-l.Done()

	if err := l.Submit(func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Submit after Close = %v, want ErrLoopClosed", err)
	}
	if err := l.Close(); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("second Close = %v, want ErrLoopClosed", err)
	}
}
