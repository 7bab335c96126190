package host

import "github.com/vango-dev/didact/pkg/vdom"

// Snapshot is a value copy of a MemNode subtree, suitable for comparison.
// Listeners are recorded by event name only.
type Snapshot struct {
	Tag      string
	Text     string            `json:",omitempty"`
	Props    map[string]string `json:",omitempty"`
	Events   []string          `json:",omitempty"`
	Children []Snapshot        `json:",omitempty"`
}

// Snapshot copies the subtree rooted at n.
func (n *MemNode) Snapshot() Snapshot {
	s := Snapshot{Tag: n.Tag, Text: n.Text}
	if len(n.Props) > 0 {
		s.Props = make(map[string]string, len(n.Props))
		for k, v := range n.Props {
			s.Props[k] = vdom.ValueString(v)
		}
	}
	if len(n.listeners) > 0 {
		s.Events = n.Events()
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, c.Snapshot())
	}
	return s
}
