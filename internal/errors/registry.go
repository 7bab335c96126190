package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E009, E030-E039)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside component render",
		Detail:   "UseState and UseEffect may only be called synchronously from the body of a component while the engine is rendering it.",
		DocURL:   "https://didact.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "Hooks are identified by call order. A component must call the same hooks in the same order on every render; do not call hooks inside conditions or loops.",
		DocURL:   "https://didact.dev/docs/errors/E002",
	},
	"E030": {
		Category: CategoryRuntime,
		Message:  "Component render panicked",
		Detail:   "A component panicked while rendering. The render pass was abandoned and nothing was committed to the host tree.",
		DocURL:   "https://didact.dev/docs/errors/E030",
	},
	"E031": {
		Category: CategoryRuntime,
		Message:  "Effect panicked",
		Detail:   "An effect or its cleanup panicked during commit. The commit continued and the panic was reported to the error handler.",
		DocURL:   "https://didact.dev/docs/errors/E031",
	},

	// ============================================
	// Element Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryElement,
		Message:  "Invalid element child",
		Detail:   "A child must be an element, a slice of children, nil, or a primitive value (string, number, bool, fmt.Stringer) that can become a text element.",
		DocURL:   "https://didact.dev/docs/errors/E010",
	},
	"E011": {
		Category: CategoryElement,
		Message:  "Invalid element kind",
		Detail:   "An element kind must be a host tag string or a component created with Define.",
		DocURL:   "https://didact.dev/docs/errors/E011",
	},

	// ============================================
	// Host Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryHost,
		Message:  "Invalid host container",
		Detail:   "The container passed to Render was not accepted by the host renderer.",
		DocURL:   "https://didact.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryHost,
		Message:  "Host operation failed",
		Detail:   "The host renderer rejected an operation. The pass was not published.",
		DocURL:   "https://didact.dev/docs/errors/E021",
	},

	// ============================================
	// Config Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "didact.json contains an invalid value.",
		DocURL:   "https://didact.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
		Detail:   "didact.json exists but could not be read or parsed.",
		DocURL:   "https://didact.dev/docs/errors/E041",
	},

	// ============================================
	// Scene Errors (E050-E059)
	// ============================================

	"E050": {
		Category: CategoryScene,
		Message:  "Invalid scene file",
		Detail:   "The scene file could not be parsed into an element tree.",
		DocURL:   "https://didact.dev/docs/errors/E050",
	},
	"E051": {
		Category: CategoryScene,
		Message:  "Invalid scene node",
		Detail:   "A scene node must have exactly one of tag or text.",
		DocURL:   "https://didact.dev/docs/errors/E051",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
