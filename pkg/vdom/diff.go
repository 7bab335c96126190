package vdom

import "reflect"

// PropChange is a plain property set to a new value.
type PropChange struct {
	Key   string
	Value any
}

// Listener is an event handler bound to a host node.
type Listener struct {
	Event   string // host event name, e.g. "click"
	Key     string // prop key, e.g. "onClick"
	Handler any
}

// PropDiff is the set of host operations that turn prev props into next props.
// Apply it in field order: Removed, Unbind, Bind, Set.
type PropDiff struct {
	Removed []string     // plain keys present in prev but absent in next
	Unbind  []Listener   // listeners absent from next or changed
	Bind    []Listener   // listeners absent from prev or changed
	Set     []PropChange // plain keys added or changed
}

// Empty reports whether the diff contains no operations.
func (d PropDiff) Empty() bool {
	return d.Len() == 0
}

// Len returns the number of operations in the diff.
func (d PropDiff) Len() int {
	return len(d.Removed) + len(d.Unbind) + len(d.Bind) + len(d.Set)
}

// DiffProps compares two prop maps. The children entry is ignored. Keys are
// visited in sorted order so the resulting operations are deterministic.
func DiffProps(prev, next Props) PropDiff {
	var d PropDiff

	for _, key := range prev.Keys() {
		if !IsPropertyKey(key) {
			continue
		}
		if _, ok := next[key]; !ok {
			d.Removed = append(d.Removed, key)
		}
	}

	for _, key := range prev.Keys() {
		if !IsEventKey(key) {
			continue
		}
		nextHandler, ok := next[key]
		if !ok || !handlersEqual(prev[key], nextHandler) {
			d.Unbind = append(d.Unbind, Listener{Event: EventName(key), Key: key, Handler: prev[key]})
		}
	}

	for _, key := range next.Keys() {
		if !IsEventKey(key) {
			continue
		}
		prevHandler, ok := prev[key]
		if !ok || !handlersEqual(prevHandler, next[key]) {
			d.Bind = append(d.Bind, Listener{Event: EventName(key), Key: key, Handler: next[key]})
		}
	}

	for _, key := range next.Keys() {
		if !IsPropertyKey(key) {
			continue
		}
		prevVal, ok := prev[key]
		if !ok || !propsEqual(prevVal, next[key]) {
			d.Set = append(d.Set, PropChange{Key: key, Value: next[key]})
		}
	}

	return d
}

// handlersEqual compares handlers by identity. Functions are never equal:
// a closure recreated by a render may capture different state even when it
// shares a code pointer with the previous one.
func handlersEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() || ta.Kind() == reflect.Func {
		return false
	}
	return a == b
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}
