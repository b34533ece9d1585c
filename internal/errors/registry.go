package errors

import "slices"

// Template defines a registered error.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

var registry = map[string]Template{
	// Runtime (E001-E009)
	"E001": {
		Category: CategoryRuntime,
		Message:  "Message type mismatch",
		Detail:   "A message was posted to a component instance whose message type differs. The message was dropped.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Stale instance reference",
		Detail:   "An asynchronous command resolved after its instance was discarded. The message was dropped.",
	},
	"E003": {
		Category:   CategoryRuntime,
		Message:    "Follow-up render budget exceeded",
		Detail:     "Lazy commands kept requesting new passes. Remaining work was deferred to the next external trigger.",
		Suggestion: "Check for Update implementations that return a Sub for every message they receive.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Scheduled task panicked",
		Detail:   "A function run by the scheduler panicked. The panic was recovered and the loop continues.",
	},

	// Render (E010-E029)
	"E010": {
		Category: CategoryRender,
		Message:  "Live mutation failed",
		Detail:   "The live document rejected a mutation. Reconciliation continued with the next step.",
	},
	"E020": {
		Category: CategoryRender,
		Message:  "Unknown handler id",
		Detail:   "An event fired for a handler id that is no longer registered.",
	},

	// Protocol (E100-E119)
	"E101": {
		Category: CategoryProtocol,
		Message:  "Frame decode failed",
		Detail:   "A binary frame could not be decoded.",
	},
	"E102": {
		Category: CategoryProtocol,
		Message:  "Unknown operation",
		Detail:   "A patch frame contained an operation code this build does not know.",
	},

	// Config (E120-E149)
	"E120": {
		Category: CategoryConfig,
		Message:  "Cannot read configuration",
		Detail:   "The configuration file exists but could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range.",
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Configuration not found",
		Detail:     "No retain.json was found in the directory or any parent.",
		Suggestion: "Run from the project directory or pass --config.",
	},

	// Export (E150-E159)
	"E150": {
		Category: CategoryExport,
		Message:  "Export failed",
		Detail:   "The rendered document could not be written to its destination.",
	},

	// Transport (E160-E169)
	"E160": {
		Category: CategoryProtocol,
		Message:  "WebSocket session failed",
		Detail:   "The live session connection failed or was closed unexpectedly.",
	},
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Lookup returns the template for a code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template.
func Register(code string, t Template) {
	registry[code] = t
}
