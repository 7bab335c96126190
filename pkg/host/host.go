package host

// Node is an opaque handle to a host-tree node. Each Renderer defines its
// own concrete node type and rejects handles it did not create.
type Node any

// Renderer is the host tree contract consumed by the reconciler.
//
// Nodes returned by CreateNode and CreateTextNode start detached. Every
// method returns an error when given a handle the renderer does not own.
type Renderer interface {
	// Validate reports whether container may serve as a render root.
	Validate(container Node) error

	CreateNode(tag string) (Node, error)
	CreateTextNode() (Node, error)

	SetProperty(node Node, key string, value any) error
	RemoveProperty(node Node, key string) error

	AddListener(node Node, event string, handler any) error
	RemoveListener(node Node, event string, handler any) error

	AppendChild(parent, child Node) error
	// InsertBefore inserts child into parent before ref. ref must already be
	// a child of parent.
	InsertBefore(parent, child, ref Node) error
	RemoveChild(parent, child Node) error
}

// Event is passed to listeners that accept an argument.
type Event struct {
	Type    string
	Target  *MemNode
	Payload any
}
