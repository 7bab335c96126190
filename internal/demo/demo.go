// Package demo contains the counter application used by the didact CLI.
//
// App renders a heading with a shared counter and three Btn children. Each
// Btn keeps its own count, seeded from the App counter on mount, and logs
// from an effect whenever its count changes.
package demo

import (
	"context"
	"log/slog"

	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/vdom"
)

// Buttons is the number of Btn children App renders.
const Buttons = 3

// Demo holds the demo components and the App setter from its last render.
type Demo struct {
	App *vdom.Component
	Btn *vdom.Component

	logger *slog.Logger
	add    func(func(int) int)
}

// New creates the demo components. Effects log to logger.
func New(logger *slog.Logger) *Demo {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Demo{logger: logger}
	d.Btn = vdom.Define("Btn", d.renderBtn)
	d.App = vdom.Define("App", d.renderApp)
	return d
}

// Element returns the App element greeting name.
func (d *Demo) Element(name string) *vdom.Element {
	return d.App.El(vdom.Props{"name": name})
}

// Add queues an increment of the App counter. It reports false before App
// has rendered. Like any setter it must run on the engine's goroutine.
func (d *Demo) Add(n int) bool {
	if d.add == nil {
		return false
	}
	d.add(func(v int) int { return v + n })
	return true
}

func (d *Demo) renderApp(ctx context.Context, props vdom.Props) *vdom.Element {
	text, setText := fiber.UseState(ctx, 1)
	d.add = setText

	buttons := make([]*vdom.Element, Buttons)
	for i := range buttons {
		buttons[i] = d.Btn.El(vdom.Props{"value": text})
	}
	return vdom.Div(
		vdom.H1("Hello ", props.String("name"), " ", text),
		buttons,
	)
}

func (d *Demo) renderBtn(ctx context.Context, props vdom.Props) *vdom.Element {
	initial, _ := props.Get("value").(int)
	count, setCount := fiber.UseState(ctx, initial)

	fiber.UseEffect(ctx, func() func() {
		d.logger.Info("button effect", "count", count)
		return func() {
			d.logger.Info("button cleanup", "count", count)
		}
	}, fiber.Deps{count})

	return vdom.Button(
		vdom.OnClick(func() { setCount(func(c int) int { return c + 1 }) }),
		count,
	)
}
