// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for outcome lines, alerts, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: created users, verified tokens, passing roster validation.
	Success = "✓"

	// Error represents failures or missing required configuration.
	// Used for: failed creates and updates, missing API tokens, validation errors.
	Error = "✗"

	// Change represents a modification to existing state.
	// Used for: license tier updates.
	Change = "~"

	// Skip represents records that needed no work.
	// Used for: users already at the requested tier, skipped operations.
	Skip = "-"

	// Warning represents warnings or non-critical issues.
	// Used for: subscription-managed license advisories, unrecognized labels.
	Warning = "!"

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized status, undefined behavior.
	Unknown = "?"
)
