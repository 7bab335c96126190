package scene

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/vdom"
)

var greeting = vdom.Define("Greeting", func(_ context.Context, props vdom.Props) *vdom.Element {
	return vdom.P("hi ", props.String("name"))
})

func TestParse(t *testing.T) {
	src := `title: Demo
root:
  tag: div
  props:
    id: app
    count: 3
  children:
    - tag: h1
      children: [Hello]
    - text: plain
    - component: Greeting
      props:
        name: Ada
`
	s, err := Parse("demo.yaml", []byte(src), Components{"Greeting": greeting})
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if s.Title != "Demo" {
		t.Errorf("Title = %q, want Demo", s.Title)
	}

	root := s.Root
	if root.Type != vdom.HostType("div") {
		t.Fatalf("root type = %v, want div", root.Type)
	}
	if root.Props.String("id") != "app" {
		t.Errorf("id = %q, want app", root.Props.String("id"))
	}
	if root.Props.Get("count") != 3 {
		t.Errorf("count = %#v, want 3", root.Props.Get("count"))
	}

	kids := root.Children()
	if len(kids) != 3 {
		t.Fatalf("children = %d, want 3", len(kids))
	}
	if kids[0].Type != vdom.HostType("h1") || kids[0].Children()[0].Text() != "Hello" {
		t.Errorf("first child = %v, want h1 with text Hello", kids[0])
	}
	if !kids[1].Type.IsText() || kids[1].Text() != "plain" {
		t.Errorf("second child = %v, want text plain", kids[1])
	}
	if kids[2].Type != greeting.Type() || kids[2].Props.String("name") != "Ada" {
		t.Errorf("third child = %v, want Greeting name=Ada", kids[2])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode string
		wantLine int
	}{
		{"malformed", "root: [\n", "E050", 0},
		{"no root", "title: x\n", "E050", 1},
		{"tag and text", "root:\n  tag: div\n  text: x\n", "E051", 2},
		{"neither", "root:\n  props: {a: 1}\n", "E051", 2},
		{"text with children", "root:\n  text: x\n  children: [y]\n", "E051", 2},
		{"unknown component", "root:\n  tag: div\n  children:\n    - component: Nope\n", "E051", 4},
		{"sequence node", "root:\n  tag: div\n  children:\n    - [a, b]\n", "E051", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.src), nil)
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("Parse() = %v, want %s", err, tt.wantCode)
			}
			if tt.wantLine == 0 {
				return
			}
			derr := err.(*errors.DidactError)
			if derr.Location == nil || derr.Location.Line != tt.wantLine {
				t.Errorf("Location = %v, want line %d", derr.Location, tt.wantLine)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("root: hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	if s.Root.Text() != "hello" {
		t.Errorf("root text = %q, want hello", s.Root.Text())
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if !errors.HasCode(err, "E050") {
		t.Errorf("LoadFile(missing) = %v, want E050", err)
	}
}

func TestRead(t *testing.T) {
	s, err := Read("stdin", strings.NewReader("root:\n  tag: br\n"), nil)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}
	if s.Root.Type != vdom.HostType("br") {
		t.Errorf("root type = %v, want br", s.Root.Type)
	}
}
