package sched

import (
	"math"
	"time"
)

// Deadline exposes the time remaining in the current idle slice.
type Deadline interface {
	TimeRemaining() time.Duration
}

// Scheduler runs callbacks in later idle slices.
type Scheduler interface {
	ScheduleIdle(cb func(Deadline))
}

// DeadlineFunc adapts a function to the Deadline interface.
type DeadlineFunc func() time.Duration

// TimeRemaining implements Deadline.
func (f DeadlineFunc) TimeRemaining() time.Duration { return f() }

// Until returns a Deadline that expires at end on the wall clock.
func Until(end time.Time) Deadline {
	return DeadlineFunc(func() time.Duration {
		if d := time.Until(end); d > 0 {
			return d
		}
		return 0
	})
}

// Budget returns a Deadline that expires d from now.
func Budget(d time.Duration) Deadline {
	return Until(time.Now().Add(d))
}

// Unlimited returns a Deadline that never expires.
func Unlimited() Deadline {
	return DeadlineFunc(func() time.Duration { return math.MaxInt64 })
}

// Units returns a Deadline that reports time left for exactly n queries and
// none afterwards. A reconciler that checks the deadline once per work unit
// therefore performs n units in the slice, independent of the clock.
func Units(n int) Deadline {
	left := n
	return DeadlineFunc(func() time.Duration {
		left--
		if left <= 0 {
			return 0
		}
		return math.MaxInt64
	})
}
