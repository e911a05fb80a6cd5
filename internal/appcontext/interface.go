// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app
// dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/pkg/license"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/seatsync/app implements this interface, providing
// dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Seatsync returns the default seatsync instance, creating it lazily
	// if needed. This is thread-safe and ensures only one instance is
	// created.
	Seatsync() (seatsync.Seatsync, error)

	// SeatsyncWithOptions creates a new seatsync instance configured like
	// the default one, with the given options applied on top. Use this
	// when a command needs per-invocation configuration (e.g. sync with
	// --roster).
	SeatsyncWithOptions(opts ...seatsync.Option) (seatsync.Seatsync, error)

	// Table returns the active license table, including any tier map
	// overlay from configuration. Commands that resolve or display
	// license labels should use this rather than building their own.
	Table() (*license.Table, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
