package errors

import (
	"maps"
	"slices"
)

// Template is the registered text for an error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://viewkit.dev/docs/errors/"

var registry = map[string]Template{
	// Configuration (VK100-VK199)
	"VK100": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file exists but could not be read or parsed as YAML.",
		DocURL:   docBase + "VK100",
	},
	"VK101": {
		Category: CategoryConfig,
		Message:  "Unknown snapshot backend",
		Detail:   "snapshot.backend must be one of memory, bolt or s3.",
		DocURL:   docBase + "VK101",
	},
	"VK102": {
		Category: CategoryConfig,
		Message:  "Missing snapshot location",
		Detail:   "The bolt backend needs snapshot.path and the s3 backend needs snapshot.bucket.",
		DocURL:   docBase + "VK102",
	},
	"VK103": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "log.level must be one of debug, info, warn or error.",
		DocURL:   docBase + "VK103",
	},
	"VK104": {
		Category: CategoryConfig,
		Message:  "Invalid numeric setting",
		Detail:   "Queue size and tick interval must be positive.",
		DocURL:   docBase + "VK104",
	},
	"VK105": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A VIEWKIT_ environment variable could not be parsed.",
		DocURL:   docBase + "VK105",
	},
	"VK106": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "server.addr must have the form host:port.",
		DocURL:   docBase + "VK106",
	},

	// CLI (VK200-VK299)
	"VK200": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   docBase + "VK200",
	},
	"VK201": {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "The page could not be rendered to HTML.",
		DocURL:   docBase + "VK201",
	},
	"VK202": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		DocURL:   docBase + "VK202",
	},

	// Snapshot storage (VK300-VK399)
	"VK300": {
		Category: CategorySnapshot,
		Message:  "Snapshot store unavailable",
		Detail:   "The configured snapshot store could not be opened.",
		DocURL:   docBase + "VK300",
	},
	"VK301": {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
		Detail:   "No snapshot is stored under the requested key.",
		DocURL:   docBase + "VK301",
	},
	"VK302": {
		Category: CategorySnapshot,
		Message:  "Snapshot unreadable",
		Detail:   "The stored snapshot could not be decoded.",
		DocURL:   docBase + "VK302",
	},
}

// Codes returns all registered codes in ascending order.
func Codes() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns the template for a code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
