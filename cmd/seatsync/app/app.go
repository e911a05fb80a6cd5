// Package app provides the application context and dependency management
// for the seatsync CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
)

// App represents the seatsync application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the seatsync instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Seatsync instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	seatsync seatsync.Seatsync
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Table returns the active license table, including any tier map overlay
// from configuration.
func (a *App) Table() (*license.Table, error) {
	return a.buildTable()
}

// Seatsync returns the seatsync instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Seatsync() (seatsync.Seatsync, error) {
	a.mu.RLock()
	if a.seatsync != nil {
		ss := a.seatsync
		a.mu.RUnlock()
		return ss, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.seatsync != nil {
		return a.seatsync, nil
	}

	// Create seatsync instance with options from config
	opts, err := a.buildSeatsyncOptions()
	if err != nil {
		return nil, err
	}
	ss, err := seatsync.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "seatsync", "", err)
	}

	a.seatsync = ss
	return ss, nil
}

// SeatsyncWithOptions returns a new seatsync instance configured like the
// default one, with the given options applied on top. This is useful for
// commands that need per-invocation configuration different from the app
// instance (e.g. sync with a --roster override).
func (a *App) SeatsyncWithOptions(opts ...seatsync.Option) (seatsync.Seatsync, error) {
	base, err := a.buildSeatsyncOptions()
	if err != nil {
		return nil, err
	}
	ss, err := seatsync.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "seatsync", "with custom options", err)
	}
	return ss, nil
}

// Shutdown performs graceful shutdown of the application.
// It stops any running background tasks and cleans up resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.RLock()
	ss := a.seatsync
	a.mu.RUnlock()

	if ss != nil {
		// Stop auto-sync if running
		if err := ss.AutoSyncOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-sync during shutdown")
		}
	}

	return nil
}

// buildSeatsyncOptions constructs seatsync options from the app configuration.
func (a *App) buildSeatsyncOptions() ([]seatsync.Option, error) {
	opts := []seatsync.Option{
		seatsync.WithLogger(a.logger),
	}

	// Add roster path if configured
	if a.config.Roster != "" {
		opts = append(opts, seatsync.WithRoster(a.config.Roster))
	}

	// Add directory access if configured. Token without endpoint is
	// carried too, so an --endpoint flag can complete the pair.
	if a.config.Endpoint != "" || a.config.Token != "" {
		opts = append(opts, seatsync.WithDirectory(a.config.Endpoint, a.config.Token))
	}

	// Build the license table, overlaying a tier map if configured
	table, err := a.buildTable()
	if err != nil {
		return nil, err
	}
	opts = append(opts, seatsync.WithTable(table))

	// Add auto-sync settings
	if a.config.AutoSync {
		opts = append(opts, seatsync.WithAutoSync(true))
		if a.config.AutoSyncInterval > 0 {
			opts = append(opts, seatsync.WithAutoSyncInterval(a.config.AutoSyncInterval))
		}
	}

	return opts, nil
}

// buildTable constructs the license table from the app configuration.
func (a *App) buildTable() (*license.Table, error) {
	tableOpts := []license.Option{license.WithLogger(a.logger)}

	if a.config.TierMap != "" {
		aliases, err := license.LoadAliases(a.config.TierMap)
		if err != nil {
			return nil, err
		}
		tableOpts = append(tableOpts, license.WithAliases(aliases))
	}

	return license.DefaultTable(tableOpts...), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSeatsync sets a custom seatsync instance (useful for testing).
func WithSeatsync(ss seatsync.Seatsync) Option {
	return func(a *App) error {
		a.seatsync = ss
		return nil
	}
}
