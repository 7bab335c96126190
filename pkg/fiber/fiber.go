package fiber

import (
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/vdom"
)

// Tag identifies what a fiber represents.
type Tag uint8

const (
	HostFiber Tag = iota
	TextFiber
	ComponentFiber
	RootFiber
)

// String returns the string representation of the Tag.
func (t Tag) String() string {
	switch t {
	case HostFiber:
		return "Host"
	case TextFiber:
		return "Text"
	case ComponentFiber:
		return "Component"
	case RootFiber:
		return "Root"
	default:
		return "Unknown"
	}
}

func tagFor(t vdom.Type) Tag {
	switch t.Tag {
	case vdom.TypeText:
		return TextFiber
	case vdom.TypeComponent:
		return ComponentFiber
	default:
		return HostFiber
	}
}

// Intent is the mutation a commit applies for a fiber.
type Intent uint8

const (
	None Intent = iota
	Placement
	Update
	Deletion
)

// String returns the string representation of the Intent.
func (i Intent) String() string {
	switch i {
	case None:
		return "None"
	case Placement:
		return "Placement"
	case Update:
		return "Update"
	case Deletion:
		return "Deletion"
	default:
		return "Unknown"
	}
}

// Fiber is the unit of work for one element position in the tree.
//
// Parent owns Child, and Child links its siblings through Sibling. Alternate
// points at the fiber occupying the same position in the last committed tree
// and is cleared once the fiber itself is committed.
type Fiber struct {
	Tag    Tag
	Type   vdom.Type
	Props  vdom.Props
	Node   host.Node
	Intent Intent

	Parent    *Fiber
	Child     *Fiber
	Sibling   *Fiber
	Alternate *Fiber

	hooks []hook
}

// Children returns the fiber's child chain as a slice.
func (f *Fiber) Children() []*Fiber {
	var out []*Fiber
	for c := f.Child; c != nil; c = c.Sibling {
		out = append(out, c)
	}
	return out
}

// HookCount returns the number of hooks recorded by the fiber's last render.
func (f *Fiber) HookCount() int {
	return len(f.hooks)
}

// String describes the fiber for logs.
func (f *Fiber) String() string {
	if f.Tag == RootFiber {
		return "Root"
	}
	return f.Tag.String() + "(" + f.Type.String() + ")"
}

// next returns the fiber after f in a pre-order walk of the tree rooted at
// root, or nil when the walk is complete.
func next(f, root *Fiber) *Fiber {
	if f.Child != nil {
		return f.Child
	}
	for n := f; n != nil && n != root; n = n.Parent {
		if n.Sibling != nil {
			return n.Sibling
		}
	}
	return nil
}

// Walk visits f and its descendants in pre-order. Returning false from fn
// skips the visited fiber's children.
func (f *Fiber) Walk(fn func(*Fiber) bool) {
	n := f
	for n != nil {
		descend := fn(n)
		if descend && n.Child != nil {
			n = n.Child
			continue
		}
		for n != nil && n != f && n.Sibling == nil {
			n = n.Parent
		}
		if n == nil || n == f {
			return
		}
		n = n.Sibling
	}
}

// hostParent returns the nearest ancestor that owns a host node.
func hostParent(f *Fiber) *Fiber {
	p := f.Parent
	for p != nil && p.Node == nil {
		p = p.Parent
	}
	return p
}

// hostSibling returns the host node that f's node must be inserted before to
// keep host order equal to fiber order, or nil to append. Siblings that are
// themselves being placed are not attached yet and are skipped.
func hostSibling(f *Fiber) host.Node {
	n := f
search:
	for {
		for n.Sibling == nil {
			if n.Parent == nil || n.Parent.Node != nil {
				return nil
			}
			n = n.Parent
		}
		n = n.Sibling
		for n.Node == nil {
			if n.Intent == Placement || n.Child == nil {
				continue search
			}
			n = n.Child
		}
		if n.Intent != Placement {
			return n.Node
		}
	}
}
