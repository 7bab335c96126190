package fiber

import (
	"fmt"
	"time"

	"github.com/vango-dev/didact/internal/errors"
	"github.com/vango-dev/didact/pkg/host"
	"github.com/vango-dev/didact/pkg/vdom"
)

// CommitStats summarizes one commit.
type CommitStats struct {
	Pass       uint64
	Trigger    string
	Units      int // units processed by the pass
	Placements int
	Updates    int
	Deletions  int
	HostOps    int // property and listener operations applied
	Effects    int
	Cleanups   int
	Duration   time.Duration
}

// String returns a one-line summary.
func (s CommitStats) String() string {
	return fmt.Sprintf("pass %d (%s): +%d ~%d -%d, %d host ops, %d effects, %s",
		s.Pass, s.Trigger, s.Placements, s.Updates, s.Deletions, s.HostOps, s.Effects, s.Duration)
}

// commitRoot applies the finished pass: deletions first, then a pre-order
// walk applying placements and updates, then effects. The new tree becomes
// current only after all of it succeeded.
func (e *Engine) commitRoot() error {
	start := time.Now()
	root, p := e.wipRoot, e.pass
	stats := CommitStats{Pass: p.seq, Trigger: p.trigger, Units: p.units}

	_, span := e.tracer.Start(p.ctx, "didact.commit")
	e.committing = true
	err := e.applyCommit(root, &stats)
	e.committing = false

	if err != nil {
		span.RecordError(err)
		span.End()
		e.torn = true
		e.fail(err)
		return err
	}

	e.torn = false
	e.currentRoot = root
	e.wipRoot = nil
	e.nextUnit = nil
	e.deletions = nil
	e.pass = nil
	root.Alternate = nil

	stats.Duration = time.Since(start)
	span.SetAttributes(commitAttributes(stats)...)
	span.End()
	endPassSpan(p.span, "committed", nil)
	e.metrics.committed(stats)
	e.logger.Debug("pass committed",
		"pass", stats.Pass,
		"placements", stats.Placements,
		"updates", stats.Updates,
		"deletions", stats.Deletions,
		"host_ops", stats.HostOps,
		"duration", stats.Duration,
	)
	if e.onCommit != nil {
		e.onCommit(stats)
	}

	if e.rerender && !e.closed {
		e.rerender = false
		e.startPass(e.updateRoot(), "update")
	}
	return nil
}

func (e *Engine) applyCommit(root *Fiber, stats *CommitStats) error {
	e.container = root.Node
	if e.torn {
		if err := e.unmountTorn(stats); err != nil {
			return err
		}
	}

	for _, d := range e.deletions {
		if err := e.commitDeletion(d.fiber, stats); err != nil {
			return err
		}
	}

	var components []*Fiber
	for f := root.Child; f != nil; f = next(f, root) {
		if err := e.commitWork(f, stats); err != nil {
			return err
		}
		if f.Tag == ComponentFiber {
			components = append(components, f)
		} else {
			f.Alternate = nil
		}
	}

	for _, f := range components {
		e.commitHooks(f, stats)
		f.Alternate = nil
	}
	return nil
}

// commitWork applies one fiber's intent to the host tree.
func (e *Engine) commitWork(f *Fiber, stats *CommitStats) error {
	switch f.Intent {
	case Placement:
		stats.Placements++
		if f.Node == nil {
			return nil
		}
		if err := e.applyProps(f.Node, nil, f.Props, stats); err != nil {
			return err
		}
		parent := hostParent(f)
		var err error
		if ref := hostSibling(f); ref != nil {
			err = e.renderer.InsertBefore(parent.Node, f.Node, ref)
		} else {
			err = e.renderer.AppendChild(parent.Node, f.Node)
		}
		if err != nil {
			return hostError(f, "placing", err)
		}
		if parent.Tag == RootFiber {
			e.attached = append(e.attached, f.Node)
		}
	case Update:
		stats.Updates++
		if f.Node != nil && f.Alternate != nil {
			return e.applyProps(f.Node, f.Alternate.Props, f.Props, stats)
		}
	}
	return nil
}

// commitDeletion unmounts a removed subtree: effect cleanups run for every
// component in it, in pre-order, then its top-level host nodes are removed.
func (e *Engine) commitDeletion(d *Fiber, stats *CommitStats) error {
	stats.Deletions++
	d.Walk(func(f *Fiber) bool {
		if f.Tag == ComponentFiber {
			e.unmountHooks(f, stats)
		}
		return true
	})

	parent := hostParent(d)
	if parent == nil {
		return nil
	}
	var err error
	d.Walk(func(f *Fiber) bool {
		if err != nil {
			return false
		}
		if f.Node != nil {
			if rmErr := e.renderer.RemoveChild(parent.Node, f.Node); rmErr != nil {
				err = hostError(f, "removing", rmErr)
			} else if parent.Tag == RootFiber {
				e.detached(f.Node)
			}
			return false
		}
		return true
	})
	return err
}

// unmountTorn clears what a failed commit left behind. The cleanups still
// held by the committed tree run, and every node the engine placed in the
// container is removed, so the pass can mount onto an empty container.
// Nodes are forgotten one by one; a retry resumes where this stopped.
func (e *Engine) unmountTorn(stats *CommitStats) error {
	e.logger.Warn("remounting after a failed commit", "nodes", len(e.attached))
	if e.currentRoot != nil {
		e.currentRoot.Walk(func(f *Fiber) bool {
			if f.Tag == ComponentFiber {
				e.unmountHooks(f, stats)
			}
			return true
		})
	}
	for len(e.attached) > 0 {
		last := len(e.attached) - 1
		if err := e.renderer.RemoveChild(e.container, e.attached[last]); err != nil {
			return errors.New("E021").WithDetail("removing nodes left by a failed commit").Wrap(err)
		}
		e.attached = e.attached[:last]
	}
	return nil
}

// detached drops node from the container's attached list.
func (e *Engine) detached(node host.Node) {
	for i, n := range e.attached {
		if n == node {
			e.attached = append(e.attached[:i], e.attached[i+1:]...)
			return
		}
	}
}

// applyProps turns prev props into next props on node.
func (e *Engine) applyProps(node host.Node, prev, next vdom.Props, stats *CommitStats) error {
	d := vdom.DiffProps(prev, next)
	for _, key := range d.Removed {
		if err := e.renderer.RemoveProperty(node, key); err != nil {
			return hostPropError(key, err)
		}
	}
	for _, l := range d.Unbind {
		if err := e.renderer.RemoveListener(node, l.Event, l.Handler); err != nil {
			return hostPropError(l.Key, err)
		}
	}
	for _, l := range d.Bind {
		if err := e.renderer.AddListener(node, l.Event, l.Handler); err != nil {
			return hostPropError(l.Key, err)
		}
	}
	for _, c := range d.Set {
		if err := e.renderer.SetProperty(node, c.Key, c.Value); err != nil {
			return hostPropError(c.Key, err)
		}
	}
	stats.HostOps += d.Len()
	return nil
}

func hostError(f *Fiber, op string, err error) error {
	return errors.New("E021").WithDetailf("%s %s", op, f.Type).Wrap(err)
}

func hostPropError(key string, err error) error {
	return errors.New("E021").WithDetailf("applying %q", key).Wrap(err)
}
