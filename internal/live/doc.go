// Package live serves a live preview of a didact element tree.
//
// The server owns one engine rendering into an in-memory host, driven by a
// sched.Loop goroutine. Every commit is rendered to HTML and broadcast to
// connected browsers over a WebSocket. Browsers send events back, addressed
// by the child-index path of the target node, and the server dispatches
// them to the host listeners on the loop goroutine.
//
// # Routes
//
//	GET  /          preview page with the client script
//	GET  /snapshot  current markup and host tree as JSON
//	POST /events    dispatch {"path": [0, 1], "event": "click"}
//	GET  /ws        snapshot stream and event ingress
//	GET  /metrics   Prometheus metrics
//	GET  /healthz   liveness
package live
