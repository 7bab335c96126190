package didact_test

import (
	"context"
	"testing"

	"github.com/vango-dev/didact"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/render"
)

func TestPublicAPI(t *testing.T) {
	var effects int
	counter := didact.Define("Counter", func(ctx context.Context, props didact.Props) *didact.Element {
		n, set := didact.UseState(ctx, 0)
		didact.UseEffect(ctx, func() func() {
			effects++
			return nil
		}, didact.Deps{n})
		return didact.CreateElement("button",
			didact.Props{"onclick": func() { set(didact.Inc) }},
			props.String("label"), n,
		)
	})

	mem := host.NewMemory()
	root := mem.NewContainer("root")
	engine := didact.NewEngine(mem)
	defer engine.Close()

	if err := engine.Render(counter.El(didact.Props{"label": "n="}), root); err != nil {
		t.Fatal(err)
	}
	if err := engine.Flush(); err != nil {
		t.Fatal(err)
	}
	btn := root.Find(host.ByTag("button"))
	if _, err := mem.Dispatch(btn, "click", nil); err != nil {
		t.Fatal(err)
	}
	if err := engine.Flush(); err != nil {
		t.Fatal(err)
	}

	if got, want := render.HTML(root), `<button>n=1</button>`; got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
	if effects != 2 {
		t.Errorf("effects = %d, want 2", effects)
	}
}

func TestErrorCodes(t *testing.T) {
	_, err := didact.New("div", nil, struct{}{})
	if !didact.HasCode(err, "E010") {
		t.Fatalf("New error = %v, want E010", err)
	}
	if got := didact.CodeOf(err); got != "E010" {
		t.Errorf("CodeOf = %q, want E010", got)
	}

	defer func() {
		r := recover()
		derr, ok := r.(*didact.Error)
		if !ok || derr.Code != "E010" {
			t.Errorf("CreateElement panic = %v, want E010", r)
		}
	}()
	didact.CreateElement("div", nil, make(chan int))
}

func TestSet(t *testing.T) {
	if got := didact.Set("x")("y"); got != "x" {
		t.Errorf("Set = %q, want x", got)
	}
}
