package host

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/didact/pkg/vdom"
)

var (
	// ErrForeignNode is returned for handles a Memory did not create.
	ErrForeignNode = errors.New("host: node does not belong to this renderer")

	// ErrNotChild is returned when a node is not a child of the given parent.
	ErrNotChild = errors.New("host: node is not a child of parent")

	// ErrListenerNotFound is returned when removing a listener that was never added.
	ErrListenerNotFound = errors.New("host: listener not found")

	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("host: node cannot contain itself")
)

// NodeKind distinguishes element nodes from text nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	if k == TextNode {
		return "Text"
	}
	return "Element"
}

// listener is a bound event handler.
type listener struct {
	event   string
	handler any
}

// MemNode is a node of the in-memory host tree.
type MemNode struct {
	ID       int
	Kind     NodeKind
	Tag      string
	Text     string
	Props    map[string]any
	Parent   *MemNode
	Children []*MemNode

	listeners []listener
	container bool
	owner     *Memory
}

// Memory is an in-memory host tree. It is not safe for concurrent use.
type Memory struct {
	nextID    int
	mutations int
}

// NewMemory creates an empty in-memory host.
func NewMemory() *Memory {
	return &Memory{}
}

// NewContainer creates a root node that can be passed to Render.
func (m *Memory) NewContainer(tag string) *MemNode {
	n := m.newNode(ElementNode, tag)
	n.container = true
	return n
}

func (m *Memory) newNode(kind NodeKind, tag string) *MemNode {
	m.nextID++
	return &MemNode{
		ID:    m.nextID,
		Kind:  kind,
		Tag:   tag,
		Props: make(map[string]any),
		owner: m,
	}
}

// AttachedMutations counts operations that changed a node reachable from a
// container. Work on detached nodes is not counted.
func (m *Memory) AttachedMutations() int {
	return m.mutations
}

func (m *Memory) node(h Node) (*MemNode, error) {
	n, ok := h.(*MemNode)
	if !ok || n == nil || n.owner != m {
		return nil, fmt.Errorf("%w: %T", ErrForeignNode, h)
	}
	return n, nil
}

func (m *Memory) touch(n *MemNode) {
	if n.Attached() {
		m.mutations++
	}
}

// Validate implements Renderer.
func (m *Memory) Validate(container Node) error {
	n, err := m.node(container)
	if err != nil {
		return err
	}
	if n.Kind != ElementNode {
		return fmt.Errorf("host: container must be an element node, got %s", n.Kind)
	}
	return nil
}

// CreateNode implements Renderer.
func (m *Memory) CreateNode(tag string) (Node, error) {
	if tag == "" {
		return nil, errors.New("host: empty tag")
	}
	return m.newNode(ElementNode, tag), nil
}

// CreateTextNode implements Renderer.
func (m *Memory) CreateTextNode() (Node, error) {
	return m.newNode(TextNode, "#text"), nil
}

// SetProperty implements Renderer. On text nodes the nodeValue property sets
// the text content.
func (m *Memory) SetProperty(h Node, key string, value any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	if n.Kind == TextNode && key == vdom.TextValueKey {
		n.Text = vdom.ValueString(value)
	} else {
		n.Props[key] = value
	}
	m.touch(n)
	return nil
}

// RemoveProperty implements Renderer.
func (m *Memory) RemoveProperty(h Node, key string) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	if n.Kind == TextNode && key == vdom.TextValueKey {
		n.Text = ""
	} else {
		delete(n.Props, key)
	}
	m.touch(n)
	return nil
}

// AddListener implements Renderer.
func (m *Memory) AddListener(h Node, event string, handler any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	n.listeners = append(n.listeners, listener{event: event, handler: handler})
	m.touch(n)
	return nil
}

// RemoveListener implements Renderer.
func (m *Memory) RemoveListener(h Node, event string, handler any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	for i, l := range n.listeners {
		if l.event == event && sameHandler(l.handler, handler) {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			m.touch(n)
			return nil
		}
	}
	return fmt.Errorf("%w: %s on node %d", ErrListenerNotFound, event, n.ID)
}

// AppendChild implements Renderer. A child that already has a parent is
// moved.
func (m *Memory) AppendChild(ph, ch Node) error {
	parent, child, err := m.pair(ph, ch)
	if err != nil {
		return err
	}
	m.detach(child)
	child.Parent = parent
	parent.Children = append(parent.Children, child)
	m.touch(parent)
	return nil
}

// InsertBefore implements Renderer.
func (m *Memory) InsertBefore(ph, ch, rh Node) error {
	parent, child, err := m.pair(ph, ch)
	if err != nil {
		return err
	}
	ref, err := m.node(rh)
	if err != nil {
		return err
	}
	if ref.Parent != parent {
		return fmt.Errorf("%w: ref %d", ErrNotChild, ref.ID)
	}
	m.detach(child)
	idx := parent.indexOf(ref)
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[idx+1:], parent.Children[idx:])
	parent.Children[idx] = child
	child.Parent = parent
	m.touch(parent)
	return nil
}

// RemoveChild implements Renderer.
func (m *Memory) RemoveChild(ph, ch Node) error {
	parent, child, err := m.pair(ph, ch)
	if err != nil {
		return err
	}
	if child.Parent != parent {
		return fmt.Errorf("%w: node %d", ErrNotChild, child.ID)
	}
	m.touch(parent)
	m.detach(child)
	return nil
}

func (m *Memory) pair(ph, ch Node) (*MemNode, *MemNode, error) {
	parent, err := m.node(ph)
	if err != nil {
		return nil, nil, err
	}
	child, err := m.node(ch)
	if err != nil {
		return nil, nil, err
	}
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return nil, nil, ErrCycle
		}
	}
	return parent, child, nil
}

func (m *Memory) detach(n *MemNode) {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	if i := p.indexOf(n); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = nil
}

// Dispatch invokes the listeners bound to node for event, in bind order.
// Handlers may be func(), func(Event), or func(any). It returns the number
// of handlers invoked.
func (m *Memory) Dispatch(n *MemNode, event string, payload any) (int, error) {
	if n == nil || n.owner != m {
		return 0, ErrForeignNode
	}
	// Handlers may rebind listeners on this node; iterate over a copy.
	bound := append([]listener(nil), n.listeners...)
	called := 0
	for _, l := range bound {
		if l.event != event {
			continue
		}
		switch h := l.handler.(type) {
		case func():
			h()
		case func(Event):
			h(Event{Type: event, Target: n, Payload: payload})
		case func(any):
			h(payload)
		default:
			return called, fmt.Errorf("host: unsupported handler type %T for %s", l.handler, event)
		}
		called++
	}
	return called, nil
}

// sameHandler matches handlers by identity, comparing functions by code pointer.
func sameHandler(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && !vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return false
}

// IsContainer reports whether n was created by NewContainer.
func (n *MemNode) IsContainer() bool {
	return n.container
}

// Attached reports whether n is reachable from a container.
func (n *MemNode) Attached() bool {
	for p := n; p != nil; p = p.Parent {
		if p.container {
			return true
		}
	}
	return false
}

func (n *MemNode) indexOf(child *MemNode) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Events returns the events n listens to, sorted, one entry per binding.
func (n *MemNode) Events() []string {
	events := make([]string, 0, len(n.listeners))
	for _, l := range n.listeners {
		events = append(events, l.event)
	}
	sort.Strings(events)
	return events
}

// TextContent concatenates the text of all descendant text nodes.
func (n *MemNode) TextContent() string {
	var b strings.Builder
	n.Walk(func(d *MemNode) bool {
		if d.Kind == TextNode {
			b.WriteString(d.Text)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *MemNode) Walk(fn func(*MemNode) bool) {
	stack := []*MemNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			return
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Find returns the first node in document order that matches pred.
func (n *MemNode) Find(pred func(*MemNode) bool) *MemNode {
	var found *MemNode
	n.Walk(func(d *MemNode) bool {
		if pred(d) {
			found = d
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in document order that matches pred.
func (n *MemNode) FindAll(pred func(*MemNode) bool) []*MemNode {
	var out []*MemNode
	n.Walk(func(d *MemNode) bool {
		if pred(d) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// ByTag returns a predicate matching element nodes with the given tag.
func ByTag(tag string) func(*MemNode) bool {
	return func(n *MemNode) bool { return n.Kind == ElementNode && n.Tag == tag }
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *MemNode) Count() int {
	count := 0
	n.Walk(func(*MemNode) bool {
		count++
		return true
	})
	return count
}
