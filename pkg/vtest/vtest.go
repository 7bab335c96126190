package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/didact/pkg/fiber"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/render"
	"github.com/vango-dev/didact/pkg/sched"
	"github.com/vango-dev/didact/pkg/vdom"
)

// Harness is an engine mounted on an in-memory container.
type Harness struct {
	t *testing.T

	Engine   *fiber.Engine
	Host     *host.Memory
	Recorder *host.Recorder
	Root     *host.MemNode

	manual *sched.Manual
}

// Option configures a Harness.
type Option func(*config)

type config struct {
	slicing bool
	engine  []fiber.Option
}

// WithSlicing runs the engine on a manual scheduler. Work only advances
// through Slice.
func WithSlicing() Option {
	return func(c *config) { c.slicing = true }
}

// WithEngineOptions passes extra options to the engine.
func WithEngineOptions(opts ...fiber.Option) Option {
	return func(c *config) { c.engine = append(c.engine, opts...) }
}

// Mount creates a harness and renders el into its container. Unless
// WithSlicing is set, the first pass is committed before Mount returns.
//
// Example:
//
//	h := vtest.Mount(t, vdom.Div("hello"))
//	h.ExpectContains("hello")
func Mount(t *testing.T, el *vdom.Element, opts ...Option) *Harness {
	t.Helper()
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	mem := host.NewMemory()
	h := &Harness{
		t:        t,
		Host:     mem,
		Recorder: host.NewRecorder(mem),
		Root:     mem.NewContainer("root"),
	}
	engineOpts := []fiber.Option{
		fiber.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if cfg.slicing {
		h.manual = sched.NewManual()
		engineOpts = append(engineOpts, fiber.WithScheduler(h.manual))
	}
	h.Engine = fiber.New(h.Recorder, append(engineOpts, cfg.engine...)...)
	t.Cleanup(h.Engine.Close)

	h.Render(el)
	return h
}

// Render starts a pass for el and, without slicing, flushes it.
func (h *Harness) Render(el *vdom.Element) {
	h.t.Helper()
	if err := h.Engine.Render(el, h.Root); err != nil {
		h.t.Fatalf("Render: %v", err)
	}
	h.Flush()
}

// Flush commits all pending work. With slicing it does nothing.
func (h *Harness) Flush() {
	h.t.Helper()
	if h.manual != nil {
		return
	}
	if err := h.Engine.Flush(); err != nil {
		h.t.Fatalf("Flush: %v", err)
	}
}

// Slice runs one idle slice allowing at most units work units.
func (h *Harness) Slice(units int) {
	h.t.Helper()
	if h.manual == nil {
		h.t.Fatal("Slice requires WithSlicing")
	}
	h.manual.RunIdle(sched.Units(units))
}

// Find returns the first node in the container matching pred, failing the
// test when there is none.
func (h *Harness) Find(pred func(*host.MemNode) bool) *host.MemNode {
	h.t.Helper()
	n := h.Root.Find(pred)
	if n == nil {
		h.t.Fatalf("no matching node in:\n%s", truncate(h.HTML(), 500))
	}
	return n
}

// Dispatch fires event on the first node matching pred and flushes the
// resulting updates.
func (h *Harness) Dispatch(pred func(*host.MemNode) bool, event string, payload any) {
	h.t.Helper()
	n := h.Find(pred)
	called, err := h.Host.Dispatch(n, event, payload)
	if err != nil {
		h.t.Fatalf("Dispatch %s: %v", event, err)
	}
	if called == 0 {
		h.t.Fatalf("no %s listener on <%s>", event, n.Tag)
	}
	h.Flush()
}

// Click dispatches a click on the first node matching pred.
func (h *Harness) Click(pred func(*host.MemNode) bool) {
	h.t.Helper()
	h.Dispatch(pred, "click", nil)
}

// HTML returns the markup of the container's children.
func (h *Harness) HTML() string {
	return render.HTML(h.Root)
}

// ExpectHTML asserts the container's markup equals want.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("html = %q, want %q", got, want)
	}
}

// ExpectContains asserts the container's markup contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	ExpectContains(h.t, h.HTML(), expected)
}

// ExpectNotContains asserts the container's markup does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	ExpectNotContains(h.t, h.HTML(), unexpected)
}

// RenderToString mounts el on a fresh in-memory host, commits it, and
// returns the resulting HTML. It returns "" when rendering fails.
//
// Example:
//
//	html := vtest.RenderToString(Greeting.El(vdom.Props{"name": "Ada"}))
func RenderToString(el *vdom.Element) string {
	mem := host.NewMemory()
	root := mem.NewContainer("root")
	e := fiber.New(mem, fiber.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer e.Close()
	if err := e.Render(el, root); err != nil {
		return ""
	}
	if err := e.Flush(); err != nil {
		return ""
	}
	return render.HTML(root)
}

// ExpectContains asserts that html contains expected.
//
// Example:
//
//	vtest.ExpectContains(t, vtest.RenderToString(el), "Welcome")
func ExpectContains(t *testing.T, html, expected string) {
	t.Helper()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that html does not contain unexpected.
func ExpectNotContains(t *testing.T, html, unexpected string) {
	t.Helper()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that html contains a tag.
func ExpectElement(t *testing.T, html, tag string) {
	t.Helper()
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that html contains attr="value".
func ExpectAttribute(t *testing.T, html, attr, value string) {
	t.Helper()
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
