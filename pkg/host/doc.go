// Package host defines the contract between the reconciler and the concrete
// host tree it drives, plus two implementations used by tests, the CLI and
// the live preview server.
//
// The reconciler never touches a host tree directly. It creates detached
// nodes while walking, then attaches and mutates them only at commit time,
// so a Renderer sees no mutation of an attached node until a pass publishes.
//
// # Implementations
//
// Memory is an in-memory tree of *Node values with listener dispatch:
//
//	h := host.NewMemory()
//	root := h.NewContainer("root")
//	// ... render into root ...
//	h.Dispatch(button, "click", nil)
//
// Recorder wraps any Renderer and logs every operation in order:
//
//	rec := host.NewRecorder(h)
//	// ... render through rec ...
//	for _, op := range rec.Ops() {
//	    fmt.Println(op)
//	}
package host
