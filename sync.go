package seatsync

import (
	"context"
	"time"

	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/reconcile"
)

// SyncOptions configures a single reconciliation pass.
type SyncOptions struct {
	// Pass behavior
	Preview bool // Classify every record without applying changes

	// Timeout configuration
	Timeout time.Duration // Timeout for the complete pass

	// Sinks receive outcomes and the summary for this pass only
	Sinks reconcile.Sinks
}

// SyncOption is a function that configures sync options.
type SyncOption func(*SyncOptions)

// SyncWithPreview enables preview mode (classify without applying).
func SyncWithPreview(enabled bool) SyncOption {
	return func(opts *SyncOptions) {
		opts.Preview = enabled
	}
}

// SyncWithTimeout sets the timeout for the complete pass.
func SyncWithTimeout(timeout time.Duration) SyncOption {
	return func(opts *SyncOptions) {
		opts.Timeout = timeout
	}
}

// SyncWithSink adds a sink that receives results for this pass only.
func SyncWithSink(sink reconcile.Sink) SyncOption {
	return func(opts *SyncOptions) {
		if sink != nil {
			opts.Sinks = append(opts.Sinks, sink)
		}
	}
}

// NewSyncOptions creates SyncOptions with defaults.
func NewSyncOptions(opts ...SyncOption) *SyncOptions {
	options := &SyncOptions{
		Preview: false,
		Timeout: constants.PassTimeout,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// Sync runs one reconciliation pass: read the roster, fetch the directory
// snapshot, classify every record, and apply creates and updates unless
// preview mode is set.
func (s *seatsync) Sync(ctx context.Context, opts ...SyncOption) (*reconcile.Summary, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse options
	options := NewSyncOptions(opts...)

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {} // No-op cancel if no timeout
	}
	defer cancel()

	// Step 3: Read the desired roster
	desired, err := s.Roster()
	if err != nil {
		return nil, err
	}

	// Step 4: Fetch the directory snapshot
	snapshot, err := s.Directory(ctx)
	if err != nil {
		return nil, err
	}

	// Step 5: Assemble the engine for this pass
	engineOpts := []reconcile.Option{
		reconcile.WithTable(s.config.table),
		reconcile.WithClient(s.config.client),
		reconcile.WithPreview(options.Preview),
		reconcile.WithLogger(s.config.logger),
		reconcile.WithSink(s.hooks),
	}
	for _, sink := range s.config.sinks {
		engineOpts = append(engineOpts, reconcile.WithSink(sink))
	}
	for _, sink := range options.Sinks {
		engineOpts = append(engineOpts, reconcile.WithSink(sink))
	}
	engine, err := reconcile.New(engineOpts...)
	if err != nil {
		return nil, err
	}

	// Step 6: Run the pass
	return engine.Pass(ctx, desired, snapshot)
}
