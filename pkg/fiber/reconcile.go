package fiber

import "github.com/vango-dev/didact/pkg/vdom"

// reconcileChildren builds parent's new child chain from elements, pairing
// the i-th element with the i-th fiber of the previous chain. A pair with
// equal types is reused as an Update; otherwise the element becomes a
// Placement and the old fiber is marked for Deletion.
func (e *Engine) reconcileChildren(parent *Fiber, elements []*vdom.Element) {
	var old *Fiber
	if parent.Alternate != nil {
		old = parent.Alternate.Child
	}
	parent.Child = nil

	var prev *Fiber
	for i := 0; i < len(elements) || old != nil; i++ {
		var el *vdom.Element
		if i < len(elements) {
			el = elements[i]
		}
		same := el != nil && old != nil && el.Type == old.Type

		var nf *Fiber
		switch {
		case same:
			nf = &Fiber{
				Tag:       old.Tag,
				Type:      old.Type,
				Props:     el.Props,
				Node:      old.Node,
				Parent:    parent,
				Alternate: old,
				Intent:    Update,
			}
		case el != nil:
			nf = &Fiber{
				Tag:    tagFor(el.Type),
				Type:   el.Type,
				Props:  el.Props,
				Parent: parent,
				Intent: Placement,
			}
		}

		if old != nil && !same {
			e.markDeletion(old)
		}
		if old != nil {
			old = old.Sibling
		}

		if nf == nil {
			continue
		}
		if prev == nil {
			parent.Child = nf
		} else {
			prev.Sibling = nf
		}
		prev = nf
	}
}

// markDeletion flags a committed fiber for removal. The previous intent is
// kept so an abandoned pass can restore it.
func (e *Engine) markDeletion(f *Fiber) {
	e.deletions = append(e.deletions, deletion{fiber: f, was: f.Intent})
	f.Intent = Deletion
}

type deletion struct {
	fiber *Fiber
	was   Intent
}

// restoreDeletions undoes markDeletion for a pass that will not commit.
func (e *Engine) restoreDeletions() {
	for i := len(e.deletions) - 1; i >= 0; i-- {
		d := e.deletions[i]
		d.fiber.Intent = d.was
	}
	e.deletions = nil
}
