package fiber

import (
	"context"
	"reflect"

	"github.com/vango-dev/didact/internal/errors"
)

// Deps lists the values an effect depends on. A nil Deps means the effect
// runs after every commit; an empty, non-nil Deps runs it once after mount.
type Deps []any

type hookKind uint8

const (
	stateKind hookKind = iota + 1
	effectKind
)

func (k hookKind) String() string {
	switch k {
	case stateKind:
		return "UseState"
	case effectKind:
		return "UseEffect"
	default:
		return "unknown"
	}
}

type hook interface {
	kind() hookKind
}

// stateCell holds the updates queued for one state slot. Every render of the
// slot shares the cell, so setters from any earlier render reach it.
type stateCell struct {
	queue []func(any) any
}

type stateHook struct {
	value   any
	cell    *stateCell
	applied int // queue entries folded into value
}

func (*stateHook) kind() hookKind { return stateKind }

type effectHook struct {
	effect  func() func() // nil when deps are unchanged
	cleanup func()
	deps    Deps
}

func (*effectHook) kind() hookKind { return effectKind }

// scope is the render scope of the component fiber currently being processed.
type scope struct {
	engine *Engine
	fiber  *Fiber
	index  int
	active bool
}

type scopeKey struct{}

func withScope(ctx context.Context, s *scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// activeScope returns the render scope carried by ctx. It panics with E001
// when ctx carries no scope or the render it belongs to has returned.
func activeScope(ctx context.Context, name string) *scope {
	var s *scope
	if ctx != nil {
		s, _ = ctx.Value(scopeKey{}).(*scope)
	}
	if s == nil || !s.active {
		panic(errors.New("E001").
			WithDetailf("%s was called without an active component render.", name).
			WithSuggestion("Call hooks from the component body using the context passed to the component."))
	}
	return s
}

// previous returns the hook at the current slot of the fiber's last render,
// checking that it has the expected kind.
func (s *scope) previous(want hookKind) hook {
	alt := s.fiber.Alternate
	if alt == nil {
		return nil
	}
	if s.index >= len(alt.hooks) {
		panic(hookOrderError(s.fiber, s.index, "not called", want.String()))
	}
	old := alt.hooks[s.index]
	if old.kind() != want {
		panic(hookOrderError(s.fiber, s.index, old.kind().String(), want.String()))
	}
	return old
}

func (s *scope) push(h hook) {
	s.fiber.hooks = append(s.fiber.hooks, h)
	s.index++
}

func hookOrderError(f *Fiber, slot int, was, now string) *errors.DidactError {
	return errors.New("E002").
		WithDetailf("%s: hook %d was %s on the previous render and is %s now.", f.Type, slot, was, now).
		WithSuggestion("Call hooks unconditionally and in the same order on every render.")
}

// UseState returns the current value of a state slot and a setter. The
// setter queues an update function and schedules a new pass; queued updates
// are folded in order on the next render.
//
// On the first render the slot holds initial. UseState panics with E001
// outside a component render and with E002 when hook order changes.
func UseState[T any](ctx context.Context, initial T) (T, func(func(T) T)) {
	s := activeScope(ctx, "UseState")

	h := &stateHook{value: initial, cell: &stateCell{}}
	if old, ok := s.previous(stateKind).(*stateHook); ok {
		h.value = old.value
		h.cell = old.cell
		for _, update := range h.cell.queue {
			h.value = update(h.value)
		}
		h.applied = len(h.cell.queue)
	}
	s.push(h)

	value, _ := h.value.(T)
	engine, cell := s.engine, h.cell
	setter := func(update func(T) T) {
		if update == nil {
			return
		}
		cell.queue = append(cell.queue, func(v any) any {
			cur, _ := v.(T)
			return update(cur)
		})
		engine.requestUpdate()
	}
	return value, setter
}

// Set returns an update function that replaces the state with v.
func Set[T any](v T) func(T) T {
	return func(T) T { return v }
}

// UseEffect schedules effect to run after the commit of this render when
// deps differ from the previous render's. The function effect returns, if
// any, is the cleanup: it runs before the effect runs again and when the
// component is removed.
//
// Effects run once the whole commit has reached the host, so an effect
// sees the complete mounted tree, not just its own component's nodes.
//
// UseEffect panics with E001 outside a component render and with E002 when
// hook order changes.
func UseEffect(ctx context.Context, effect func() func(), deps Deps) {
	s := activeScope(ctx, "UseEffect")

	h := &effectHook{deps: deps}
	old, _ := s.previous(effectKind).(*effectHook)
	if old == nil || depsChanged(old.deps, deps) {
		h.effect = effect
	} else {
		h.cleanup = old.cleanup
	}
	s.push(h)
}

// depsChanged reports whether an effect must run again. Omitted deps always
// count as changed.
func depsChanged(prev, next Deps) bool {
	if prev == nil || next == nil || len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !depEqual(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// depEqual compares comparable values with ==. Values of incomparable
// types, functions included, never compare equal.
func depEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() || ta.Kind() == reflect.Func {
		return false
	}
	return a == b
}

// commitHooks settles a committed fiber's hooks: folded updates leave the
// queue, and effects with changed deps run after their previous cleanup.
func (e *Engine) commitHooks(f *Fiber, stats *CommitStats) {
	var prev []hook
	if f.Alternate != nil {
		prev = f.Alternate.hooks
	}
	for i, h := range f.hooks {
		switch h := h.(type) {
		case *stateHook:
			h.cell.queue = append([]func(any) any(nil), h.cell.queue[h.applied:]...)
			h.applied = 0
		case *effectHook:
			if h.effect == nil {
				continue
			}
			if i < len(prev) {
				if old, ok := prev[i].(*effectHook); ok && old.cleanup != nil {
					e.runCleanup(f, old.cleanup, stats)
				}
			}
			h.cleanup = e.runEffect(f, h.effect, stats)
			h.effect = nil
		}
	}
}

// unmountHooks runs the cleanups of every effect of f.
func (e *Engine) unmountHooks(f *Fiber, stats *CommitStats) {
	for _, h := range f.hooks {
		if eh, ok := h.(*effectHook); ok && eh.cleanup != nil {
			e.runCleanup(f, eh.cleanup, stats)
			eh.cleanup = nil
		}
	}
}

func (e *Engine) runEffect(f *Fiber, effect func() func(), stats *CommitStats) (cleanup func()) {
	defer func() {
		if r := recover(); r != nil {
			cleanup = nil
			e.report(effectPanic(f, "effect", r))
		}
	}()
	stats.Effects++
	e.metrics.effectRun("effect")
	return effect()
}

func (e *Engine) runCleanup(f *Fiber, cleanup func(), stats *CommitStats) {
	defer func() {
		if r := recover(); r != nil {
			e.report(effectPanic(f, "cleanup", r))
		}
	}()
	stats.Cleanups++
	e.metrics.effectRun("cleanup")
	cleanup()
}

func effectPanic(f *Fiber, what string, r any) error {
	de := errors.New("E031").WithDetailf("%s %s panicked: %v", f.Type, what, r)
	if err, ok := r.(error); ok {
		return de.Wrap(err)
	}
	return de
}
