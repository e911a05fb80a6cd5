package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
)

// options configures a reconciler.
type options struct {
	table   *license.Table
	client  directory.Client
	sinks   Sinks
	preview bool
	logger  *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		table:  license.DefaultTable(),
		sinks:  Sinks{},
		logger: logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithTable sets the license table used to resolve roster labels.
func WithTable(table *license.Table) Option {
	return func(o *options) error {
		if table == nil {
			return &errors.ValidationError{
				Field:   "table",
				Message: "cannot be nil",
			}
		}
		o.table = table
		return nil
	}
}

// WithClient sets the directory client used for create and update calls.
// Required unless the pass runs in preview mode.
func WithClient(client directory.Client) Option {
	return func(o *options) error {
		if client == nil {
			return &errors.ValidationError{
				Field:   "client",
				Message: "cannot be nil",
			}
		}
		o.client = client
		return nil
	}
}

// WithSink adds a sink that receives outcomes and the final summary.
func WithSink(sink Sink) Option {
	return func(o *options) error {
		if sink == nil {
			return &errors.ValidationError{
				Field:   "sink",
				Message: "cannot be nil",
			}
		}
		o.sinks = append(o.sinks, sink)
		return nil
	}
}

// WithPreview classifies every record without calling the directory's
// mutating operations.
func WithPreview(preview bool) Option {
	return func(o *options) error {
		o.preview = preview
		return nil
	}
}

// WithLogger sets the logger for pass progress and advisory warnings.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}
