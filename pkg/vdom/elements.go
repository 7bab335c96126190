package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates a host element from variadic arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, Props, or any child
// accepted by New (elements, slices, primitives). It panics on an invalid
// child like CreateElement.
func El(tag string, args ...any) *Element {
	props := make(Props)
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					props[a.Key] = a.Value
				}
			}
		case EventHandler:
			props[v.Event] = v.Handler
		case Props:
			for k, val := range v {
				if k != ChildrenKey {
					props[k] = val
				}
			}
		default:
			children = append(children, arg)
		}
	}

	return CreateElement(tag, props, children...)
}

// Text creates a text element.
func Text(content string) *Element { return TextElement(content) }

// Component invokes a component with props and children.
func (c *Component) El(props Props, children ...any) *Element {
	return CreateElement(c, props, children...)
}

// Sectioning and grouping

func Div(args ...any) *Element     { return El("div", args...) }
func Span(args ...any) *Element    { return El("span", args...) }
func P(args ...any) *Element       { return El("p", args...) }
func H1(args ...any) *Element      { return El("h1", args...) }
func H2(args ...any) *Element      { return El("h2", args...) }
func H3(args ...any) *Element      { return El("h3", args...) }
func Section(args ...any) *Element { return El("section", args...) }
func Header(args ...any) *Element  { return El("header", args...) }
func Footer(args ...any) *Element  { return El("footer", args...) }
func Main(args ...any) *Element    { return El("main", args...) }
func Nav(args ...any) *Element     { return El("nav", args...) }
func Ul(args ...any) *Element      { return El("ul", args...) }
func Ol(args ...any) *Element      { return El("ol", args...) }
func Li(args ...any) *Element      { return El("li", args...) }
func Hr(args ...any) *Element      { return El("hr", args...) }
func Br(args ...any) *Element      { return El("br", args...) }

// Inline

func A(args ...any) *Element      { return El("a", args...) }
func Strong(args ...any) *Element { return El("strong", args...) }
func Em(args ...any) *Element     { return El("em", args...) }
func Code(args ...any) *Element   { return El("code", args...) }
func Img(args ...any) *Element    { return El("img", args...) }

// Forms

func Form(args ...any) *Element     { return El("form", args...) }
func Input(args ...any) *Element    { return El("input", args...) }
func Textarea(args ...any) *Element { return El("textarea", args...) }
func Button(args ...any) *Element   { return El("button", args...) }
func Label(args ...any) *Element    { return El("label", args...) }
func Select(args ...any) *Element   { return El("select", args...) }
func Option(args ...any) *Element   { return El("option", args...) }
