package fiber

import (
	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/vdom"
)

// performUnit processes the fiber at the cursor and advances it.
func (e *Engine) performUnit() error {
	f := e.nextUnit
	e.inUnit = true
	err := e.processUnit(f)
	e.inUnit = false

	if err != nil {
		e.fail(err)
		return err
	}
	e.pass.units++
	e.metrics.unit()
	e.nextUnit = next(f, e.wipRoot)

	// A setter called while this unit rendered restarts from the committed root.
	if e.rerender && e.currentRoot != nil {
		e.rerender = false
		e.startPass(e.updateRoot(), "update")
	}
	return nil
}

func (e *Engine) processUnit(f *Fiber) error {
	switch {
	case f.Tag == RootFiber:
		e.reconcileChildren(f, f.Props.Children())
		return nil
	case f.Type.Tag == vdom.TypeInvalid || (f.Tag == ComponentFiber && f.Type.Comp == nil):
		return errors.New("E011").WithDetailf("Cannot render element of kind %s.", f.Type)
	case f.Tag == ComponentFiber:
		return e.updateComponent(f)
	default:
		return e.updateHost(f)
	}
}

// updateHost creates the fiber's host node on first visit and reconciles
// its children. New nodes stay detached until commit.
func (e *Engine) updateHost(f *Fiber) error {
	if f.Node == nil {
		var err error
		if f.Tag == TextFiber {
			f.Node, err = e.renderer.CreateTextNode()
		} else {
			f.Node, err = e.renderer.CreateNode(f.Type.Name)
		}
		if err != nil {
			return errors.New("E021").WithDetailf("creating %s", f.Type).Wrap(err)
		}
	}
	e.reconcileChildren(f, f.Props.Children())
	return nil
}

// updateComponent renders a component with a fresh hook scope and
// reconciles the element it returns.
func (e *Engine) updateComponent(f *Fiber) (err error) {
	s := &scope{engine: e, fiber: f, active: true}
	f.hooks = nil
	defer func() {
		s.active = false
		if r := recover(); r != nil {
			err = renderPanic(f, r)
		}
	}()

	child := f.Type.Comp.Render(withScope(e.pass.ctx, s), f.Props)
	s.active = false

	if alt := f.Alternate; alt != nil && len(f.hooks) < len(alt.hooks) {
		n := len(f.hooks)
		return hookOrderError(f, n, alt.hooks[n].kind().String(), "not called")
	}

	var children []*vdom.Element
	if child != nil {
		children = []*vdom.Element{child}
	}
	e.reconcileChildren(f, children)
	return nil
}

// renderPanic converts a recovered panic into a pass error. Coded errors,
// such as hook misuse, are passed through.
func renderPanic(f *Fiber, r any) error {
	if de, ok := r.(*errors.DidactError); ok {
		return de
	}
	de := errors.New("E030").WithDetailf("%s panicked: %v", f.Type, r)
	if err, ok := r.(error); ok {
		return de.Wrap(err)
	}
	return de
}
