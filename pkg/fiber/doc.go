// Package fiber implements the incremental reconciler.
//
// An Engine turns element trees into host-tree mutations. Work is split into
// units, one per fiber, and performed across idle slices supplied by a
// sched.Scheduler. A pass walks the tree in pre-order, diffing each fiber's
// children against the previously committed tree by position and type, and
// records a mutation intent on every fiber. Nothing touches the attached host
// tree until the pass completes; the commit then applies all intents at once
// and publishes the new tree.
//
// # Hooks
//
// Components keep state between renders through hooks, identified by call
// order:
//
//	var Counter = vdom.Define("Counter", func(ctx context.Context, _ vdom.Props) *vdom.Element {
//	    count, setCount := fiber.UseState(ctx, 0)
//	    fiber.UseEffect(ctx, func() func() {
//	        log.Printf("count is %d", count)
//	        return nil
//	    }, fiber.Deps{count})
//	    return vdom.Button(
//	        vdom.OnClick(func() { setCount(func(n int) int { return n + 1 }) }),
//	        vdom.Text(fmt.Sprint(count)),
//	    )
//	})
//
// Hooks must be called unconditionally and in the same order on every render,
// using the context the component received.
//
// # Threading
//
// An Engine is not safe for concurrent use. Drive it from one goroutine; with
// a sched.Loop, route external events through Loop.Submit.
package fiber
