package fiber

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/didact/pkg/vdom"
)

// tree links fibers named by tag:
//
//	a
//	├── b
//	│   ├── d
//	│   └── e
//	└── c
//	    └── f
func tree() (*Fiber, map[string]*Fiber) {
	fibers := map[string]*Fiber{}
	mk := func(name string, parent *Fiber) *Fiber {
		f := &Fiber{Tag: HostFiber, Type: vdom.HostType(name), Parent: parent}
		fibers[name] = f
		return f
	}
	a := mk("a", nil)
	b, c := mk("b", a), mk("c", a)
	d, e := mk("d", b), mk("e", b)
	f := mk("f", c)
	a.Child, b.Sibling = b, c
	b.Child, d.Sibling = d, e
	c.Child = f
	return a, fibers
}

func TestNextIsPreOrder(t *testing.T) {
	root, _ := tree()
	var got []string
	for f := root; f != nil; f = next(f, root) {
		got = append(got, f.Type.Name)
	}
	if diff := cmp.Diff([]string{"a", "b", "d", "e", "c", "f"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNextStopsAtSubtreeRoot(t *testing.T) {
	_, fibers := tree()
	b := fibers["b"]
	var got []string
	for f := b; f != nil; f = next(f, b) {
		got = append(got, f.Type.Name)
	}
	if diff := cmp.Diff([]string{"b", "d", "e"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name  string
		start string
		skip  string
		want  []string
	}{
		{"full", "a", "", []string{"a", "b", "d", "e", "c", "f"}},
		{"skip children", "a", "b", []string{"a", "b", "c", "f"}},
		{"subtree", "c", "", []string{"c", "f"}},
		{"leaf with sibling", "d", "", []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fibers := tree()
			var got []string
			fibers[tt.start].Walk(func(f *Fiber) bool {
				got = append(got, f.Type.Name)
				return f.Type.Name != tt.skip
			})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Walk mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagFor(t *testing.T) {
	comp := vdom.Define("X", nil)
	tests := []struct {
		typ  vdom.Type
		want Tag
	}{
		{vdom.HostType("div"), HostFiber},
		{vdom.TextType, TextFiber},
		{comp.Type(), ComponentFiber},
		{vdom.TypeOf(42), HostFiber},
	}
	for _, tt := range tests {
		if got := tagFor(tt.typ); got != tt.want {
			t.Errorf("tagFor(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestChildren(t *testing.T) {
	root, _ := tree()
	var got []string
	for _, c := range root.Children() {
		got = append(got, c.Type.Name)
	}
	if diff := cmp.Diff([]string{"b", "c"}, got); diff != "" {
		t.Errorf("Children mismatch (-want +got):\n%s", diff)
	}
}
