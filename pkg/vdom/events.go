package vdom

// eventPrefix marks a prop key as a listener. The reconciler strips it to
// get the host event name, so OnClick(h) becomes the "onclick" prop and
// is bound to "click".
const eventPrefix = "on"

// On binds handler to the host event called name.
func On(name string, handler any) EventHandler {
	return EventHandler{Event: eventPrefix + name, Handler: handler}
}

// Shorthands for the events the demo, scene and live packages emit.
func OnClick(handler any) EventHandler      { return On("click", handler) }
func OnDblClick(handler any) EventHandler   { return On("dblclick", handler) }
func OnMouseEnter(handler any) EventHandler { return On("mouseenter", handler) }
func OnMouseLeave(handler any) EventHandler { return On("mouseleave", handler) }
func OnKeyDown(handler any) EventHandler    { return On("keydown", handler) }
func OnKeyUp(handler any) EventHandler      { return On("keyup", handler) }
func OnFocus(handler any) EventHandler      { return On("focus", handler) }
func OnBlur(handler any) EventHandler       { return On("blur", handler) }

// OnInput fires on every edit; OnChange only once the value is committed.
func OnInput(handler any) EventHandler  { return On("input", handler) }
func OnChange(handler any) EventHandler { return On("change", handler) }
func OnSubmit(handler any) EventHandler { return On("submit", handler) }
