// Package didact provides the public API for the didact reconciliation
// engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/didact"
//
// Usage:
//
//	var Counter = didact.Define("Counter", func(ctx context.Context, props didact.Props) *didact.Element {
//	    n, set := didact.UseState(ctx, 0)
//	    return vdom.Button(vdom.OnClick(func() { set(didact.Inc) }), n)
//	})
//
//	mem := host.NewMemory()
//	engine := didact.NewEngine(mem, didact.WithScheduler(sched.NewLoop()))
//	err := engine.Render(Counter.El(nil), mem.NewContainer("root"))
package didact

import (
	"context"

	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/vdom"
)

// Version is the didact release, overridden at link time.
var Version = "0.1.0-dev"

// =============================================================================
// Elements
// =============================================================================

// Element is an immutable description of one node of the desired UI.
type Element = vdom.Element

// Props is the property map of an element.
type Props = vdom.Props

// Component is a function component created with Define.
type Component = vdom.Component

// RenderFunc is the body of a function component.
type RenderFunc = vdom.RenderFunc

// CreateElement builds an element of the given kind. It panics with an E010
// error if a child cannot become an element; use New to get the error back.
//
// Example:
//
//	didact.CreateElement("div", didact.Props{"id": "app"}, "hello", 42)
func CreateElement(kind any, props Props, children ...any) *Element {
	return vdom.CreateElement(kind, props, children...)
}

// New builds an element of the given kind, returning an E010 error for an
// invalid child.
func New(kind any, props Props, children ...any) (*Element, error) {
	return vdom.New(kind, props, children...)
}

// Define creates a function component.
func Define(name string, render RenderFunc) *Component {
	return vdom.Define(name, render)
}

// =============================================================================
// Hooks
// =============================================================================

// Deps lists the values an effect depends on. A nil Deps runs the effect
// after every commit; an empty Deps runs it once after mount.
type Deps = fiber.Deps

// UseState returns the component's state value at this hook position and a
// setter that queues an update function.
func UseState[T any](ctx context.Context, initial T) (T, func(func(T) T)) {
	return fiber.UseState(ctx, initial)
}

// UseEffect schedules effect to run after the commit in which deps changed.
func UseEffect(ctx context.Context, effect func() func(), deps Deps) {
	fiber.UseEffect(ctx, effect, deps)
}

// Set returns an update function that replaces the state with v.
func Set[T any](v T) func(T) T {
	return fiber.Set(v)
}

// Inc is an update function that adds one to an int state.
func Inc(n int) int { return n + 1 }

// =============================================================================
// Engine
// =============================================================================

// Engine owns one fiber tree rendered into one host container.
type Engine = fiber.Engine

// Option configures an Engine.
type Option = fiber.Option

// Engine options.
var (
	WithScheduler      = fiber.WithScheduler
	WithLogger         = fiber.WithLogger
	WithMetrics        = fiber.WithMetrics
	WithTracer         = fiber.WithTracer
	WithYieldThreshold = fiber.WithYieldThreshold
	WithErrorHandler   = fiber.WithErrorHandler
	WithOnCommit       = fiber.WithOnCommit
)

// NewEngine creates an engine that mutates the host through renderer.
func NewEngine(renderer host.Renderer, opts ...Option) *Engine {
	return fiber.New(renderer, opts...)
}

// =============================================================================
// Errors
// =============================================================================

// Error is the structured error type returned by the engine.
type Error = errors.DidactError

// HasCode reports whether err carries the given didact error code.
func HasCode(err error, code string) bool {
	return errors.HasCode(err, code)
}

// CodeOf returns the didact error code of err, or "".
func CodeOf(err error) string {
	return errors.CodeOf(err)
}
