package render

import "github.com/vango-dev/didact/pkg/vdom"

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// Tags that stay on one line when pretty printing.
var inlineTags = set(
	"a", "abbr", "b", "button", "cite", "code", "em", "i", "kbd", "label",
	"mark", "q", "s", "small", "span", "strong", "sub", "sup", "time", "u",
	"h1", "h2", "h3", "h4", "h5", "h6", "li", "option", "p", "title",
)

// Attributes rendered by name alone when true and omitted when false.
var booleanAttrs = set(
	"allowfullscreen", "async", "autofocus", "autoplay", "checked",
	"controls", "default", "defer", "disabled", "hidden", "multiple",
	"muted", "open", "readonly", "required", "selected",
)

// Property names that differ from their HTML attribute name.
var attrAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

func isInline(tag string) bool {
	_, ok := inlineTags[tag]
	return ok
}

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}

func isVoid(tag string) bool {
	return vdom.IsVoidElement(tag)
}
