// Package vdom provides the element model for Didact.
//
// An Element is an immutable description of one node of UI: a Type (host
// tag, component, or text) and Props. Props always carry a "children" entry
// holding the element's ordered child list, so components receive their
// children the same way host elements do.
//
// # Element API
//
// Elements are created with the factory:
//
//	el := vdom.CreateElement("div", vdom.Props{"class": "card"},
//	    vdom.CreateElement("h1", nil, "Hello ", name),
//	    items, // []*Element and []any are flattened
//	)
//
// or with the variadic helpers:
//
//	Div(Class("card"),
//	    H1("Hello ", name),
//	    Button(OnClick(handler), "+1"),
//	)
//
// Primitive children (strings, numbers, booleans, fmt.Stringer) become text
// elements. CreateElement panics on a child it cannot convert; New returns
// the error instead.
//
// # Components
//
// Define turns a render function into a Component. The pointer is the
// component's identity: two elements reconcile against each other only when
// their Types are equal, which for components means the same *Component.
//
//	Counter := vdom.Define("Counter", func(ctx context.Context, p vdom.Props) *vdom.Element {
//	    n, set := fiber.UseState(ctx, 0)
//	    return Button(OnClick(func() { set(func(v int) int { return v + 1 }) }), n)
//	})
//
// # Prop diffing
//
// DiffProps compares two prop maps and splits the result into plain
// properties and event listeners (keys starting with "on").
package vdom
