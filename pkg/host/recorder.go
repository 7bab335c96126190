package host

// Recorder is a Renderer that forwards to another Renderer and records every
// operation in call order.
type Recorder struct {
	next Renderer
	ops  []Op

	// OnOp, if set, is called after each operation is forwarded.
	OnOp func(Op)
}

// NewRecorder wraps next.
func NewRecorder(next Renderer) *Recorder {
	return &Recorder{next: next}
}

// Ops returns the operations recorded so far.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset discards recorded operations.
func (r *Recorder) Reset() {
	r.ops = nil
}

// Count returns how many recorded operations have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Mutations returns how many recorded operations change existing nodes.
func (r *Recorder) Mutations() int {
	n := 0
	for _, op := range r.ops {
		if op.Kind.Mutates() {
			n++
		}
	}
	return n
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
	if r.OnOp != nil {
		r.OnOp(op)
	}
}

// Validate implements Renderer. It is not recorded.
func (r *Recorder) Validate(container Node) error {
	return r.next.Validate(container)
}

// CreateNode implements Renderer.
func (r *Recorder) CreateNode(tag string) (Node, error) {
	n, err := r.next.CreateNode(tag)
	r.record(Op{Kind: OpCreateNode, Node: n, Key: tag, Err: err})
	return n, err
}

// CreateTextNode implements Renderer.
func (r *Recorder) CreateTextNode() (Node, error) {
	n, err := r.next.CreateTextNode()
	r.record(Op{Kind: OpCreateText, Node: n, Err: err})
	return n, err
}

// SetProperty implements Renderer.
func (r *Recorder) SetProperty(node Node, key string, value any) error {
	err := r.next.SetProperty(node, key, value)
	r.record(Op{Kind: OpSetProperty, Node: node, Key: key, Value: value, Err: err})
	return err
}

// RemoveProperty implements Renderer.
func (r *Recorder) RemoveProperty(node Node, key string) error {
	err := r.next.RemoveProperty(node, key)
	r.record(Op{Kind: OpRemoveProperty, Node: node, Key: key, Err: err})
	return err
}

// AddListener implements Renderer.
func (r *Recorder) AddListener(node Node, event string, handler any) error {
	err := r.next.AddListener(node, event, handler)
	r.record(Op{Kind: OpAddListener, Node: node, Key: event, Value: handler, Err: err})
	return err
}

// RemoveListener implements Renderer.
func (r *Recorder) RemoveListener(node Node, event string, handler any) error {
	err := r.next.RemoveListener(node, event, handler)
	r.record(Op{Kind: OpRemoveListener, Node: node, Key: event, Value: handler, Err: err})
	return err
}

// AppendChild implements Renderer.
func (r *Recorder) AppendChild(parent, child Node) error {
	err := r.next.AppendChild(parent, child)
	r.record(Op{Kind: OpAppendChild, Node: child, Parent: parent, Err: err})
	return err
}

// InsertBefore implements Renderer.
func (r *Recorder) InsertBefore(parent, child, ref Node) error {
	err := r.next.InsertBefore(parent, child, ref)
	r.record(Op{Kind: OpInsertBefore, Node: child, Parent: parent, Ref: ref, Err: err})
	return err
}

// RemoveChild implements Renderer.
func (r *Recorder) RemoveChild(parent, child Node) error {
	err := r.next.RemoveChild(parent, child)
	r.record(Op{Kind: OpRemoveChild, Node: child, Parent: parent, Err: err})
	return err
}
