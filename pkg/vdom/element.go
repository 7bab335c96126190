package vdom

import (
	"context"
	"fmt"
	"strings"
)

// TypeTag discriminates element kinds.
type TypeTag uint8

const (
	TypeInvalid   TypeTag = iota // kind the factory could not classify
	TypeHost                     // <div>, <button>, etc.
	TypeText                     // text node
	TypeComponent                // function component
)

// String returns the string representation of the TypeTag.
func (t TypeTag) String() string {
	switch t {
	case TypeHost:
		return "Host"
	case TypeText:
		return "Text"
	case TypeComponent:
		return "Component"
	default:
		return "Invalid"
	}
}

// TextTypeName is the name carried by text element types.
const TextTypeName = "TEXT_ELEMENT"

// Type is the kind of an element, resolved once when the element is created.
// Types are comparable: a host type equals another host type with the same
// tag, a component type equals another with the same *Component.
type Type struct {
	Tag  TypeTag
	Name string
	Comp *Component
}

// TextType is the type of every text element.
var TextType = Type{Tag: TypeText, Name: TextTypeName}

// HostType returns the type for a host tag.
func HostType(tag string) Type {
	return Type{Tag: TypeHost, Name: tag}
}

// TypeOf classifies a kind value. Unknown values yield a TypeInvalid type
// that names the offending Go type; the factory does not reject it.
func TypeOf(kind any) Type {
	switch k := kind.(type) {
	case Type:
		return k
	case string:
		if k == TextTypeName {
			return TextType
		}
		if k == "" {
			return Type{Tag: TypeInvalid, Name: `""`}
		}
		return HostType(k)
	case *Component:
		if k == nil {
			return Type{Tag: TypeInvalid, Name: "(*Component)(nil)"}
		}
		return k.Type()
	default:
		return Type{Tag: TypeInvalid, Name: fmt.Sprintf("%T", kind)}
	}
}

// IsHost reports whether t is a host tag.
func (t Type) IsHost() bool { return t.Tag == TypeHost }

// IsText reports whether t is the text type.
func (t Type) IsText() bool { return t.Tag == TypeText }

// IsComponent reports whether t is a component.
func (t Type) IsComponent() bool { return t.Tag == TypeComponent && t.Comp != nil }

// String returns a short description such as "div" or "Counter()".
func (t Type) String() string {
	switch t.Tag {
	case TypeComponent:
		return t.Name + "()"
	case TypeInvalid:
		return "invalid(" + t.Name + ")"
	default:
		return t.Name
	}
}

// Element is an immutable description of a UI node.
type Element struct {
	Type  Type
	Props Props
}

// Children returns the element's child list.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return e.Props.Children()
}

// Text returns the value of a text element, or "" for other kinds.
func (e *Element) Text() string {
	if e == nil || !e.Type.IsText() {
		return ""
	}
	return e.Props.String(TextValueKey)
}

// String renders a compact debugging form of the element tree.
func (e *Element) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Element) writeTo(b *strings.Builder) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	if e.Type.IsText() {
		fmt.Fprintf(b, "%q", e.Text())
		return
	}
	b.WriteString("<")
	b.WriteString(e.Type.String())
	b.WriteString(">")
	for _, c := range e.Children() {
		c.writeTo(b)
	}
	b.WriteString("</")
	b.WriteString(e.Type.String())
	b.WriteString(">")
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// RenderFunc renders a component's props into at most one element.
// ctx carries the render scope that hooks read from.
type RenderFunc func(ctx context.Context, props Props) *Element

// Component is a named render function with a stable identity.
type Component struct {
	name   string
	render RenderFunc
}

// Define creates a component. Call it once per component, typically at
// package level; each call yields a distinct identity.
func Define(name string, render RenderFunc) *Component {
	if name == "" {
		name = "Anonymous"
	}
	return &Component{name: name, render: render}
}

// Name returns the component's display name.
func (c *Component) Name() string {
	return c.name
}

// Type returns the element type for this component.
func (c *Component) Type() Type {
	return Type{Tag: TypeComponent, Name: c.name, Comp: c}
}

// Render invokes the render function.
func (c *Component) Render(ctx context.Context, props Props) *Element {
	if c.render == nil {
		return nil
	}
	return c.render(ctx, props)
}
