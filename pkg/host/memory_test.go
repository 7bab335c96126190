package host

import (
	"errors"
	"testing"
)

func mustNode(t *testing.T) func(Node, error) *MemNode {
	return func(n Node, err error) *MemNode {
		t.Helper()
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return n.(*MemNode)
	}
}

func TestMemoryTreeOperations(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("root")
	a := mustNode(t)(m.CreateNode("a"))
	b := mustNode(t)(m.CreateNode("b"))
	c := mustNode(t)(m.CreateNode("c"))

	if err := m.AppendChild(root, a); err != nil {
		t.Fatal(err)
	}
	if err := m.AppendChild(root, c); err != nil {
		t.Fatal(err)
	}
	if err := m.InsertBefore(root, b, c); err != nil {
		t.Fatal(err)
	}

	var tags []string
	for _, ch := range root.Children {
		tags = append(tags, ch.Tag)
	}
	if got := tags; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("children = %v, want [a b c]", got)
	}

	if err := m.RemoveChild(root, b); err != nil {
		t.Fatal(err)
	}
	if b.Parent != nil || len(root.Children) != 2 {
		t.Errorf("b should be detached, root has %d children", len(root.Children))
	}
	if err := m.RemoveChild(root, b); !errors.Is(err, ErrNotChild) {
		t.Errorf("second RemoveChild err = %v, want ErrNotChild", err)
	}
}

func TestMemoryAppendMovesNode(t *testing.T) {
	m := NewMemory()
	p1 := mustNode(t)(m.CreateNode("p1"))
	p2 := mustNode(t)(m.CreateNode("p2"))
	x := mustNode(t)(m.CreateNode("x"))

	_ = m.AppendChild(p1, x)
	_ = m.AppendChild(p2, x)

	if len(p1.Children) != 0 || x.Parent != p2 {
		t.Error("AppendChild should move a node that already has a parent")
	}
	if err := m.AppendChild(x, p2); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}
	if err := m.AppendChild(x, x); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}
}

func TestMemoryRejectsForeignNodes(t *testing.T) {
	m1, m2 := NewMemory(), NewMemory()
	foreign := m2.NewContainer("root")

	if err := m1.Validate(foreign); !errors.Is(err, ErrForeignNode) {
		t.Errorf("Validate err = %v, want ErrForeignNode", err)
	}
	if err := m1.Validate("not a node"); !errors.Is(err, ErrForeignNode) {
		t.Errorf("Validate err = %v, want ErrForeignNode", err)
	}
	if err := m1.SetProperty(foreign, "id", "x"); !errors.Is(err, ErrForeignNode) {
		t.Errorf("SetProperty err = %v, want ErrForeignNode", err)
	}

	text := mustNode(t)(m1.CreateTextNode())
	if err := m1.Validate(text); err == nil {
		t.Error("a text node must not be accepted as a container")
	}
}

func TestMemoryTextNodeValue(t *testing.T) {
	m := NewMemory()
	text := mustNode(t)(m.CreateTextNode())

	_ = m.SetProperty(text, "nodeValue", 42)
	if text.Text != "42" {
		t.Errorf("Text = %q, want 42", text.Text)
	}
	_ = m.RemoveProperty(text, "nodeValue")
	if text.Text != "" {
		t.Errorf("Text = %q, want empty", text.Text)
	}
}

func TestMemoryAttachedMutations(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("root")

	div := mustNode(t)(m.CreateNode("div"))
	_ = m.SetProperty(div, "class", "x")
	if m.AttachedMutations() != 0 {
		t.Fatalf("detached work counted: %d", m.AttachedMutations())
	}

	_ = m.AppendChild(root, div)
	_ = m.SetProperty(div, "class", "y")
	if got := m.AttachedMutations(); got != 2 {
		t.Errorf("AttachedMutations = %d, want 2", got)
	}
}

func TestMemoryDispatch(t *testing.T) {
	m := NewMemory()
	btn := mustNode(t)(m.CreateNode("button"))

	var calls []string
	plain := func() { calls = append(calls, "plain") }
	withEvent := func(e Event) { calls = append(calls, "event:"+e.Type+":"+e.Payload.(string)) }

	_ = m.AddListener(btn, "click", plain)
	_ = m.AddListener(btn, "click", withEvent)
	_ = m.AddListener(btn, "focus", plain)

	n, err := m.Dispatch(btn, "click", "p")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(calls) != 2 || calls[1] != "event:click:p" {
		t.Errorf("calls = %v (n=%d)", calls, n)
	}

	if err := m.RemoveListener(btn, "click", plain); err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveListener(btn, "click", plain); !errors.Is(err, ErrListenerNotFound) {
		t.Errorf("err = %v, want ErrListenerNotFound", err)
	}
	if got := btn.Events(); len(got) != 2 || got[0] != "click" || got[1] != "focus" {
		t.Errorf("Events() = %v", got)
	}
}

func TestMemoryFindAndTextContent(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("root")
	ul := mustNode(t)(m.CreateNode("ul"))
	_ = m.AppendChild(root, ul)
	for _, s := range []string{"a", "b"} {
		li := mustNode(t)(m.CreateNode("li"))
		txt := mustNode(t)(m.CreateTextNode())
		_ = m.SetProperty(txt, "nodeValue", s)
		_ = m.AppendChild(li, txt)
		_ = m.AppendChild(ul, li)
	}

	if got := len(root.FindAll(ByTag("li"))); got != 2 {
		t.Errorf("FindAll(li) = %d, want 2", got)
	}
	if got := root.TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q, want ab", got)
	}
	if got := root.Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
	if root.Find(ByTag("table")) != nil {
		t.Error("Find should return nil when nothing matches")
	}
}
