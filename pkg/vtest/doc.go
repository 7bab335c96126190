// Package vtest provides testing helpers for didact components.
//
// The vtest package mounts an element tree into an in-memory host, drives
// the engine to completion, and offers assertions over the rendered HTML.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, App.El(nil))
//	    h.Click(host.ByTag("button"))
//	    h.ExpectContains("Count: 1")
//	}
//
// # Time Slicing
//
// Mount drives the engine synchronously. To observe a pass spread across
// several idle slices, pass WithSlicing and advance it with Slice:
//
//	h := vtest.Mount(t, Page.El(nil), vtest.WithSlicing())
//	for !h.Engine.Idle() {
//	    h.Slice(1)
//	}
//
// # Assertions
//
// ExpectContains, ExpectNotContains, ExpectElement and ExpectAttribute
// inspect the HTML of the mounted container. RenderToString renders an
// element tree once, without keeping an engine around.
package vtest
