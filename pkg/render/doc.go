// Package render serializes in-memory host trees to HTML.
//
// The renderer reads the committed state of a host.Memory tree, so the
// output reflects exactly what the reconciler has published:
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(container)
//
// Text and attribute values are escaped. Event listeners are not rendered
// as attributes; with EventMarkers enabled each bound event is marked with a
// data-on-<event> attribute instead.
package render
