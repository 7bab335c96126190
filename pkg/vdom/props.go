package vdom

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// ChildrenKey holds the ordered child list in every element's Props.
	ChildrenKey = "children"

	// TextValueKey holds a text element's content.
	TextValueKey = "nodeValue"
)

// Props holds attributes, event handlers, and the children entry.
type Props map[string]any

// Children returns the children entry, or nil if absent.
func (p Props) Children() []*Element {
	if p == nil {
		return nil
	}
	children, _ := p[ChildrenKey].([]*Element)
	return children
}

// Get returns the value for key.
func (p Props) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// String returns the value for key formatted as a string.
func (p Props) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return ValueString(v)
}

// Clone returns a shallow copy of p. The children slice is shared.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the keys of p in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEventKey returns true if the key is an event handler (starts with "on").
// Case-insensitive to catch onclick, onClick, OnLoad, etc.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// IsPropertyKey returns true for plain property keys.
func IsPropertyKey(key string) bool {
	return key != ChildrenKey && !IsEventKey(key)
}

// EventName returns the host event name for an event key ("onClick" -> "click").
func EventName(key string) string {
	if !IsEventKey(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// ValueString converts a prop value to its string form.
func ValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		if s, ok := primitiveString(v); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
}
