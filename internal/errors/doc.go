// Package errors provides structured, actionable error messages for Didact.
//
// Every failure the reconciler reports carries a stable code that maps to a
// registered template:
//   - runtime: hook misuse, invalid element kinds, panicking components
//   - host: operations the host renderer rejected
//   - element: children the element factory cannot convert
//   - config: invalid didact.json values
//   - scene: malformed scene files given to the CLI
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("UseState was called from a goroutine spawned by the component").
//	    WithSuggestion("Call hooks synchronously from the component body")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Hook called outside component render
//	//
//	//   UseState was called from a goroutine spawned by the component
//	//
//	//   Hint: Call hooks synchronously from the component body
//	//
//	//   Learn more: https://didact.dev/docs/errors/E001
//
// Codes survive wrapping, so callers can branch on them:
//
//	if errors.HasCode(err, "E030") {
//	    // a component panicked and the pass was abandoned
//	}
package errors
