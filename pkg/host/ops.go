package host

import "fmt"

// OpKind is the type of a recorded host operation.
type OpKind uint8

const (
	OpCreateNode     OpKind = iota + 1 // Create a detached element node
	OpCreateText                       // Create a detached text node
	OpSetProperty                      // Set/update a property
	OpRemoveProperty                   // Remove a property
	OpAddListener                      // Bind an event listener
	OpRemoveListener                   // Unbind an event listener
	OpAppendChild                      // Append a child node
	OpInsertBefore                     // Insert a child before a sibling
	OpRemoveChild                      // Remove a child node
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateNode:
		return "CreateNode"
	case OpCreateText:
		return "CreateText"
	case OpSetProperty:
		return "SetProperty"
	case OpRemoveProperty:
		return "RemoveProperty"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemoveChild:
		return "RemoveChild"
	default:
		return "Unknown"
	}
}

// Mutates reports whether the operation changes an existing node rather
// than creating a detached one.
func (k OpKind) Mutates() bool {
	return k != OpCreateNode && k != OpCreateText
}

// Op is a single recorded host operation.
type Op struct {
	Kind   OpKind
	Node   Node   // target (or child for tree operations)
	Parent Node   // for AppendChild/InsertBefore/RemoveChild
	Ref    Node   // for InsertBefore
	Key    string // property key, event name, or tag
	Value  any    // property value or handler
	Err    error  // error returned by the wrapped renderer
}

// String returns a readable form of the operation.
func (o Op) String() string {
	switch o.Kind {
	case OpCreateNode:
		return fmt.Sprintf("CreateNode(%s)", o.Key)
	case OpCreateText:
		return "CreateText()"
	case OpSetProperty:
		return fmt.Sprintf("SetProperty(%s=%v)", o.Key, o.Value)
	case OpRemoveProperty, OpAddListener, OpRemoveListener:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Key)
	default:
		return o.Kind.String()
	}
}
