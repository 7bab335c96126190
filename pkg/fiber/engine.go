package fiber

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/sched"
	"github.com/vango-dev/didact/pkg/vdom"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrClosed is returned by an engine after Close.
	ErrClosed = stderrors.New("fiber: engine is closed")

	// ErrBusy is returned when Render is called from inside a component
	// render or a commit.
	ErrBusy = stderrors.New("fiber: Render called while the engine is rendering")
)

// Engine owns all reconciliation state for one root: the committed tree,
// the pass in progress, its cursor and deletion list. Engines are
// independent of one another.
type Engine struct {
	renderer       host.Renderer
	scheduler      sched.Scheduler
	logger         *slog.Logger
	metrics        *Metrics
	tracer         trace.Tracer
	yieldThreshold time.Duration
	onError        func(error)
	onCommit       func(CommitStats)
	baseCtx        context.Context

	currentRoot *Fiber
	wipRoot     *Fiber
	nextUnit    *Fiber
	deletions   []deletion
	pass        *pass

	// container is the node this engine renders into, fixed by the first
	// commit. attached lists the host nodes placed directly in it.
	container host.Node
	attached  []host.Node

	inUnit     bool
	committing bool
	rerender   bool // an update arrived that could not start a pass yet
	armed      bool
	closed     bool
	torn       bool // a commit failed partway; the host no longer matches currentRoot
	seq        uint64
	err        error
}

// pass tracks one traversal from root to commit.
type pass struct {
	seq     uint64
	trigger string
	ctx     context.Context
	span    trace.Span
	units   int
}

// New creates an engine that applies mutations through renderer.
func New(renderer host.Renderer, opts ...Option) *Engine {
	e := &Engine{
		renderer:       renderer,
		logger:         slog.Default(),
		tracer:         defaultTracer(),
		yieldThreshold: DefaultYieldThreshold,
		baseCtx:        context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render begins a pass that reconciles el into container. The pass runs on
// the engine's scheduler, or through Step and Flush when it has none. A pass
// already in flight is discarded.
//
// An engine serves a single container: once a tree is committed, Render
// must be given the same container.
func (e *Engine) Render(el *vdom.Element, container host.Node) error {
	if e.closed {
		return ErrClosed
	}
	if e.inUnit || e.committing {
		return ErrBusy
	}
	if el == nil {
		return errors.New("E010").WithDetail("Render requires a non-nil element.")
	}
	if err := e.renderer.Validate(container); err != nil {
		return errors.New("E020").Wrap(err)
	}
	if e.container != nil && e.container != container {
		return errors.New("E020").
			WithDetail("This engine already renders into another container.").
			WithSuggestion("Create one engine per container.")
	}

	e.startPass(&Fiber{
		Tag:       RootFiber,
		Node:      container,
		Props:     vdom.Props{vdom.ChildrenKey: []*vdom.Element{el}},
		Alternate: e.reusable(),
	}, "render")
	return nil
}

// requestUpdate starts a pass from the committed root. It is called by
// state setters. Updates that arrive before the first commit, during a
// component render, or during a commit start their pass once the engine is
// able to.
func (e *Engine) requestUpdate() {
	if e.closed {
		return
	}
	if e.currentRoot == nil || e.inUnit || e.committing {
		e.rerender = true
		return
	}
	e.startPass(e.updateRoot(), "update")
}

func (e *Engine) updateRoot() *Fiber {
	cur := e.currentRoot
	return &Fiber{
		Tag:       RootFiber,
		Node:      cur.Node,
		Props:     cur.Props,
		Alternate: e.reusable(),
	}
}

// reusable returns the committed root a new pass may diff against. After a
// failed commit there is none: the next pass mounts everything again.
func (e *Engine) reusable() *Fiber {
	if e.torn {
		return nil
	}
	return e.currentRoot
}

func (e *Engine) startPass(root *Fiber, trigger string) {
	if e.wipRoot != nil {
		e.discard(trigger)
	}
	e.seq++
	e.wipRoot = root
	e.nextUnit = root
	e.deletions = nil

	ctx, span := e.startPassSpan(trigger, e.seq)
	e.pass = &pass{seq: e.seq, trigger: trigger, ctx: ctx, span: span}
	e.metrics.passStarted(trigger)
	e.logger.Debug("pass started", "pass", e.seq, "trigger", trigger)
	e.arm()
}

// discard drops the pass in flight. Its updates stay queued on committed
// hooks and are folded by the pass that replaces it.
func (e *Engine) discard(reason string) {
	e.logger.Warn("discarding in-flight pass",
		"pass", e.pass.seq,
		"units", e.pass.units,
		"reason", reason,
	)
	e.metrics.passDiscarded()
	endPassSpan(e.pass.span, "discarded", nil)
	e.clearPass()
}

// fail abandons the pass in flight. The committed tree is left as it was.
func (e *Engine) fail(err error) {
	code := errors.CodeOf(err)
	e.logger.Error("pass abandoned", "pass", e.pass.seq, "code", code, "error", err)
	e.metrics.passFailed(code)
	endPassSpan(e.pass.span, "failed", err)
	e.clearPass()
	e.report(err)
}

func (e *Engine) clearPass() {
	e.restoreDeletions()
	e.wipRoot = nil
	e.nextUnit = nil
	e.pass = nil
}

func (e *Engine) report(err error) {
	e.err = err
	if e.onError != nil {
		e.onError(err)
	}
}

func (e *Engine) arm() {
	if e.scheduler == nil || e.armed {
		return
	}
	e.armed = true
	e.scheduler.ScheduleIdle(e.workLoop)
}

// workLoop performs units until the slice runs low, commits a finished
// pass, and re-arms for the next slice.
func (e *Engine) workLoop(d sched.Deadline) {
	if e.closed {
		e.armed = false
		return
	}
	for e.nextUnit != nil {
		if err := e.performUnit(); err != nil {
			break
		}
		if d.TimeRemaining() < e.yieldThreshold {
			break
		}
	}
	if e.wipRoot != nil && e.nextUnit == nil {
		// A failed commit has already been reported through fail.
		_ = e.commitRoot()
	}
	e.scheduler.ScheduleIdle(e.workLoop)
}

// Step performs the next unit of work, or the commit once the pass has no
// units left. It reports whether more work remains.
func (e *Engine) Step() (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	if e.wipRoot == nil {
		return false, nil
	}
	if e.nextUnit != nil {
		if err := e.performUnit(); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := e.commitRoot(); err != nil {
		return false, err
	}
	return e.wipRoot != nil, nil
}

// Flush runs Step until the engine is idle.
func (e *Engine) Flush() error {
	for {
		more, err := e.Step()
		if err != nil || !more {
			return err
		}
	}
}

// Idle reports whether no pass is in progress.
func (e *Engine) Idle() bool {
	return e.wipRoot == nil
}

// Current returns the root of the last committed tree, or nil.
func (e *Engine) Current() *Fiber {
	return e.currentRoot
}

// WorkInProgress returns the root of the pass in progress, or nil.
func (e *Engine) WorkInProgress() *Fiber {
	return e.wipRoot
}

// Deletions returns the committed fibers the pass in progress will remove.
func (e *Engine) Deletions() []*Fiber {
	out := make([]*Fiber, len(e.deletions))
	for i, d := range e.deletions {
		out[i] = d.fiber
	}
	return out
}

// Err returns the most recent error reported by the engine.
func (e *Engine) Err() error {
	return e.err
}

// Close discards any pass in flight and stops the engine. The host tree is
// left as last committed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	if e.wipRoot != nil {
		e.discard("close")
	}
	e.closed = true
}
