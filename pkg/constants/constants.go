// Package constants provides shared constants used throughout the seatsync codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the directory API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SnapshotFetchTimeout is the timeout for fetching the full directory snapshot
	SnapshotFetchTimeout = 2 * time.Minute

	// PassTimeout is the default timeout for a complete reconciliation pass
	PassTimeout = 30 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// DefaultSyncInterval is how often automatic background syncs run
	DefaultSyncInterval = 1 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API tokens (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the number of users requested per directory API page
	DefaultPageSize = 100

	// MaxPageSize is the maximum page size the directory API accepts
	MaxPageSize = 500

	// MaxSnapshotPages caps pagination so a misbehaving API cannot loop forever
	MaxSnapshotPages = 1000

	// MaxDisplayNameLength is the maximum allowed length for display names
	MaxDisplayNameLength = 256

	// WriteBufferSize is the default buffer size for write operations
	WriteBufferSize = 4096
)

// Path constants
const (
	// DefaultConfigName is the config file name searched for in the home and
	// working directories (with a yaml extension).
	DefaultConfigName = ".seatsync"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
