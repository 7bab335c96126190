package fiber

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/didact/pkg/sched"
	"go.opentelemetry.io/otel/trace"
)

// DefaultYieldThreshold is the remaining slice time below which the work
// loop yields.
const DefaultYieldThreshold = time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler runs the engine on s. Without a scheduler the engine only
// advances through Step and Flush.
func WithScheduler(s sched.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records engine metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer for pass and commit spans. Default: the
// global provider's "didact" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithYieldThreshold sets the remaining slice time below which the work
// loop yields to the scheduler.
func WithYieldThreshold(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.yieldThreshold = d
		}
	}
}

// WithErrorHandler receives errors from passes that were abandoned and from
// panicking effects.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithOnCommit is called after every commit, once the new tree is current.
func WithOnCommit(fn func(CommitStats)) Option {
	return func(e *Engine) {
		e.onCommit = fn
	}
}

// WithContext sets the parent context of every pass. Components receive a
// context derived from it.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		if ctx != nil {
			e.baseCtx = ctx
		}
	}
}
