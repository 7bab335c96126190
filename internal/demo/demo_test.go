package demo

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/vtest"
)

func TestDemo(t *testing.T) {
	var logs bytes.Buffer
	d := New(slog.New(slog.NewTextHandler(&logs, nil)))

	if d.Add(1) {
		t.Error("Add before mount = true, want false")
	}

	h := vtest.Mount(t, d.Element("foso"))
	h.ExpectHTML(`<div><h1>Hello foso 1</h1><button>1</button><button>1</button><button>1</button></div>`)
	if got := strings.Count(logs.String(), "button effect"); got != Buttons {
		t.Errorf("effects after mount = %d, want %d", got, Buttons)
	}

	// Clicking the second button only changes that button.
	buttons := h.Root.FindAll(host.ByTag("button"))
	if _, err := h.Host.Dispatch(buttons[1], "click", nil); err != nil {
		t.Fatal(err)
	}
	h.Flush()
	h.ExpectHTML(`<div><h1>Hello foso 1</h1><button>1</button><button>2</button><button>1</button></div>`)
	if got := strings.Count(logs.String(), "button cleanup"); got != 1 {
		t.Errorf("cleanups after click = %d, want 1", got)
	}

	// Button state is seeded once; App updates do not reset it.
	if !d.Add(2) {
		t.Fatal("Add after mount = false")
	}
	h.Flush()
	h.ExpectHTML(`<div><h1>Hello foso 3</h1><button>1</button><button>2</button><button>1</button></div>`)
}

func TestDemoRerenderWithNewName(t *testing.T) {
	d := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	h := vtest.Mount(t, d.Element("foso"))
	h.Render(d.Element("foso2"))

	h.ExpectContains("Hello foso2 1")
	if n := h.Recorder.Count(host.OpRemoveChild); n != 0 {
		t.Errorf("RemoveChild ops = %d, want 0", n)
	}
}
