package vdom

import "strings"

// Prop sets key to value on the host node. Values reach the host as-is;
// only the renderer stringifies them.
func Prop(key string, value any) Attr { return Attr{Key: key, Value: value} }

func ID(id string) Attr { return Prop("id", id) }

// Class joins classes with single spaces.
func Class(classes ...string) Attr { return Prop("class", strings.Join(classes, " ")) }

// Data sets the data-key attribute.
func Data(key, value string) Attr { return Prop("data-"+key, value) }

func Href(url string) Attr         { return Prop("href", url) }
func InputType(t string) Attr      { return Prop("type", t) }
func Placeholder(text string) Attr { return Prop("placeholder", text) }
func Value(v any) Attr             { return Prop("value", v) }
func Disabled(disabled bool) Attr  { return Prop("disabled", disabled) }
func Checked(checked bool) Attr    { return Prop("checked", checked) }
