// Package errors provides coded, user-facing errors for the viewkit
// command and its configuration loader.
//
// Every error carries a stable code from the registry (VK1xx for
// configuration, VK2xx for the CLI, VK3xx for snapshot storage) plus an
// optional detail, hint and documentation link:
//
//	err := errors.New("VK101").
//	    WithDetail(`snapshot backend "redis" is not supported`).
//	    WithSuggestion("Use one of: memory, bolt, s3")
//
// Format renders the error for a terminal, FormatCompact for a single log
// line and FormatJSON for machine consumption. PrintError writes the
// terminal form of any error to stderr.
package errors
