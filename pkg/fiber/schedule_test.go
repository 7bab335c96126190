package fiber

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/didact/pkg/sched"
	"github.com/vango-dev/didact/pkg/vdom"
)

var Card = vdom.Define("Card", func(_ context.Context, props vdom.Props) *vdom.Element {
	return vdom.Section(vdom.Class("card"),
		vdom.H2(props.String("title")),
		vdom.P(props.String("body")),
	)
})

func page(label string, items int) *vdom.Element {
	lis := make([]*vdom.Element, 0, items)
	for i := 0; i < items; i++ {
		lis = append(lis, vdom.Li(vdom.Data("i", label), label, i))
	}
	return vdom.Main(
		vdom.Header(vdom.H1(label)),
		Card.El(vdom.Props{"title": label, "body": "body " + label}),
		vdom.Ul(lis),
		vdom.Footer("end"),
	)
}

func TestAtomicPublishAcrossSlices(t *testing.T) {
	// Reference: the same two renders, each in a single uninterrupted pass.
	ref := newHarness(t)
	ref.render(page("one", 4))
	ref.render(page("two", 6))

	manual := sched.NewManual()
	h := newHarness(t, WithScheduler(manual))

	if err := h.engine.Render(page("one", 4), h.root); err != nil {
		t.Fatal(err)
	}
	// Initial render: the container stays empty until the commit.
	slices := 0
	for !h.engine.Idle() {
		if len(h.root.Children) != 0 {
			t.Fatalf("host tree populated after %d slices, before commit", slices)
		}
		if manual.RunIdle(sched.Units(1)) == 0 {
			t.Fatal("work loop did not re-arm")
		}
		slices++
	}
	if slices < 10 {
		t.Errorf("initial pass took %d slices, expected one unit per slice", slices)
	}

	if err := h.engine.Render(page("two", 6), h.root); err != nil {
		t.Fatal(err)
	}
	before := h.root.Snapshot()
	mutations := h.mem.AttachedMutations()
	slices = 0
	for !h.engine.Idle() {
		manual.RunIdle(sched.Units(2))
		slices++
		if h.engine.Idle() {
			break
		}
		if diff := cmp.Diff(before, h.root.Snapshot()); diff != "" {
			t.Fatalf("host tree changed mid-pass after %d slices (-before +now):\n%s", slices, diff)
		}
		if h.mem.AttachedMutations() != mutations {
			t.Fatalf("attached mutations changed mid-pass")
		}
	}
	if slices < 2 {
		t.Errorf("update pass took %d slices, want several", slices)
	}

	if diff := cmp.Diff(ref.root.Snapshot(), h.root.Snapshot()); diff != "" {
		t.Errorf("sliced result differs from single pass (-single +sliced):\n%s", diff)
	}
	if ref.root.Count() != h.root.Count() {
		t.Errorf("node count = %d, want %d", h.root.Count(), ref.root.Count())
	}
}

func TestWorkLoopYieldThreshold(t *testing.T) {
	lowOnTime := sched.DeadlineFunc(func() time.Duration { return 500 * time.Microsecond })

	tests := []struct {
		name      string
		threshold time.Duration
		wantIdle  bool
	}{
		{"yields below threshold", DefaultYieldThreshold, false},
		{"zero threshold never yields", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manual := sched.NewManual()
			h := newHarness(t, WithScheduler(manual), WithYieldThreshold(tt.threshold))
			if err := h.engine.Render(page("x", 3), h.root); err != nil {
				t.Fatal(err)
			}
			manual.RunIdle(lowOnTime)

			if h.engine.Idle() != tt.wantIdle {
				t.Errorf("Idle() = %v after one slice, want %v", h.engine.Idle(), tt.wantIdle)
			}
			if !tt.wantIdle && h.engine.pass.units != 1 {
				t.Errorf("units in first slice = %d, want 1", h.engine.pass.units)
			}
		})
	}
}

func TestLoopServicesLaterUpdates(t *testing.T) {
	var set func(func(int) int)
	C := vdom.Define("C", func(ctx context.Context, _ vdom.Props) *vdom.Element {
		n, s := UseState(ctx, 0)
		set = s
		return vdom.Span(n)
	})

	manual := sched.NewManual()
	h := newHarness(t, WithScheduler(manual))
	if err := h.engine.Render(C.El(nil), h.root); err != nil {
		t.Fatal(err)
	}
	manual.RunIdle(sched.Unlimited())
	h.expectHTML(`<span>0</span>`)

	// The loop stays armed while idle and picks up the update.
	if manual.Pending() != 1 {
		t.Fatalf("pending callbacks = %d, want 1", manual.Pending())
	}
	set(func(x int) int { return x + 1 })
	manual.RunIdle(sched.Unlimited())
	h.expectHTML(`<span>1</span>`)
}

func TestCloseStopsWorkLoop(t *testing.T) {
	manual := sched.NewManual()
	h := newHarness(t, WithScheduler(manual))
	if err := h.engine.Render(vdom.Div(), h.root); err != nil {
		t.Fatal(err)
	}
	h.engine.Close()
	manual.RunIdle(sched.Unlimited())

	if manual.Pending() != 0 {
		t.Errorf("closed engine re-armed: %d pending", manual.Pending())
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	h := newHarness(t, WithMetrics(m))

	h.render(vdom.Ul(vdom.Li("a"), vdom.Li("b")))
	h.render(vdom.Ul(vdom.Li("a")))

	bad, _ := vdom.New(3.5, nil)
	_ = h.engine.Render(bad, h.root)
	_ = h.engine.Flush()

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"passes render", testutil.ToFloat64(m.passesStarted.WithLabelValues("render")), 3},
		{"committed", testutil.ToFloat64(m.passesCommitted), 2},
		{"placements", testutil.ToFloat64(m.mutations.WithLabelValues("Placement")), 5},
		{"updates", testutil.ToFloat64(m.mutations.WithLabelValues("Update")), 3},
		{"deletions", testutil.ToFloat64(m.mutations.WithLabelValues("Deletion")), 1},
		{"errors E011", testutil.ToFloat64(m.passErrors.WithLabelValues("E011")), 1},
		{"units", testutil.ToFloat64(m.unitsProcessed), 11},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}
