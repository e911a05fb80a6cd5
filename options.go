package seatsync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/internal/dirclient"
	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
	"github.com/agentstation/seatsync/pkg/reconcile"
	"github.com/agentstation/seatsync/pkg/roster"
)

// config holds the applied options for a Seatsync instance.
type config struct {
	// roster source
	rosterPath string
	reader     *roster.Reader

	// directory access
	directoryURL   string
	directoryToken string
	client         directory.Client

	// pass configuration
	table *license.Table
	sinks reconcile.Sinks

	// auto sync state
	autoSyncEnabled  bool
	autoSyncInterval time.Duration

	logger *zerolog.Logger
}

// defaultConfig returns a config with default values. The roster reader is
// left nil and built in newConfig so it picks up the configured logger.
func defaultConfig() *config {
	return &config{
		table:            license.DefaultTable(),
		autoSyncInterval: constants.DefaultSyncInterval,
		logger:           logging.Default(),
	}
}

// Option is a function that configures a Seatsync instance.
type Option func(*config) error

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// newConfig applies the given options to a default config, then builds the
// pieces that depend on other options: the roster reader picks up the
// configured logger, and the directory client is built when a base URL was
// configured without an explicit client.
func newConfig(opts ...Option) (*config, error) {
	config, err := defaultConfig().apply(opts...)
	if err != nil {
		return nil, err
	}
	if config.reader == nil {
		config.reader = roster.NewReader(roster.WithLogger(config.logger))
	}
	if config.client == nil && config.directoryURL != "" {
		if config.directoryToken == "" {
			return nil, errors.ErrTokenRequired
		}
		config.client = dirclient.New(config.directoryURL, config.directoryToken,
			dirclient.WithLogger(config.logger))
	}
	return config, nil
}

// WithRoster configures the CSV roster file holding the desired state.
func WithRoster(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "roster",
				Message: "path cannot be empty",
			}
		}
		c.rosterPath = path
		return nil
	}
}

// WithRosterReader overrides the roster reader, for custom license label
// aliases or logging.
func WithRosterReader(reader *roster.Reader) Option {
	return func(c *config) error {
		if reader == nil {
			return &errors.ValidationError{
				Field:   "reader",
				Message: "cannot be nil",
			}
		}
		c.reader = reader
		return nil
	}
}

// WithDirectory configures the directory REST API endpoint and the bearer
// token used to authenticate against it. An empty baseURL or token keeps
// the previously configured value, so callers layering options can
// override just one of the pair. A configured endpoint with no token at
// all fails with ErrTokenRequired.
func WithDirectory(baseURL, token string) Option {
	return func(c *config) error {
		if baseURL != "" {
			c.directoryURL = baseURL
		}
		if token != "" {
			c.directoryToken = token
		}
		return nil
	}
}

// WithDirectoryClient overrides the directory client. Useful for tests and
// for directories reached through something other than the REST API.
func WithDirectoryClient(client directory.Client) Option {
	return func(c *config) error {
		if client == nil {
			return &errors.ValidationError{
				Field:   "client",
				Message: "cannot be nil",
			}
		}
		c.client = client
		return nil
	}
}

// WithTable configures the license table used to resolve roster labels.
func WithTable(table *license.Table) Option {
	return func(c *config) error {
		if table == nil {
			return &errors.ValidationError{
				Field:   "table",
				Message: "cannot be nil",
			}
		}
		c.table = table
		return nil
	}
}

// WithSink adds a sink that receives outcomes and summaries for every pass
// this instance runs.
func WithSink(sink reconcile.Sink) Option {
	return func(c *config) error {
		if sink == nil {
			return &errors.ValidationError{
				Field:   "sink",
				Message: "cannot be nil",
			}
		}
		c.sinks = append(c.sinks, sink)
		return nil
	}
}

// WithAutoSync configures whether periodic background syncs are enabled.
func WithAutoSync(enabled bool) Option {
	return func(c *config) error {
		c.autoSyncEnabled = enabled
		return nil
	}
}

// WithAutoSyncInterval configures how often background syncs run.
func WithAutoSyncInterval(interval time.Duration) Option {
	return func(c *config) error {
		c.autoSyncInterval = interval
		return nil
	}
}

// WithLogger configures the logger used by passes and background syncs.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		c.logger = logger
		return nil
	}
}
