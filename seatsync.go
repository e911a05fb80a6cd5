// Package seatsync reconciles a desired roster of users against a remote
// SaaS directory. It offers a high-level interface for running
// reconciliation passes with preview support, event hooks, and periodic
// background syncs.
//
// Seatsync wraps the reconciliation engine with additional features including:
// - CSV roster reading with header detection and license label aliases
// - Directory snapshot fetching over the paginated REST API
// - Event hooks for pass outcomes (added, updated, failed, completed)
// - Preview mode that classifies every record without applying changes
// - Flexible configuration through functional options
//
// Example usage:
//
//	// Create a seatsync instance for a roster and directory
//	ss, err := seatsync.New(
//	    seatsync.WithRoster("roster.csv"),
//	    seatsync.WithDirectory("https://directory.example.com", os.Getenv("SEATSYNC_TOKEN")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ss.AutoSyncOff()
//
//	// Register event hooks
//	ss.OnUserAdded(func(outcome reconcile.Outcome) {
//	    log.Printf("New user: %s", outcome.Email)
//	})
//
//	// Preview the pass without touching the directory
//	summary, err := ss.Sync(ctx, seatsync.SyncWithPreview(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.String())
//
//	// Apply for real
//	summary, err = ss.Sync(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
package seatsync

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/reconcile"
	"github.com/agentstation/seatsync/pkg/roster"
)

// Compile-time interface check to ensure proper implementation.
var _ Seatsync = (*seatsync)(nil)

// Roster provides access to the desired state.
type Roster interface {
	// Roster reads the desired records from the configured roster source
	Roster() ([]roster.Record, error)
}

// Directory provides access to the remote directory snapshot.
type Directory interface {
	// Directory fetches the complete user snapshot from the directory
	Directory(ctx context.Context) ([]directory.User, error)
}

// Syncer runs reconciliation passes.
type Syncer interface {
	// Sync runs one pass converging the directory toward the roster
	Sync(ctx context.Context, opts ...SyncOption) (*reconcile.Summary, error)
}

// Seatsync reconciles a roster against a directory with event hooks and
// optional periodic background syncs.
type Seatsync interface {

	// Roster provides access to the desired state
	Roster

	// Directory provides access to the remote directory snapshot
	Directory

	// Syncer runs reconciliation passes
	Syncer

	// AutoSyncer provides access to periodic background sync controls
	AutoSyncer

	// Hooks provides access to event callback registration
	Hooks
}

// seatsync is the internal implementation of the Seatsync interface.
type seatsync struct {

	// config holds the applied options for this instance
	config *config

	// auto sync state
	syncTicker *time.Ticker       // ticker that triggers background syncs
	syncCancel context.CancelFunc // cancel function for the sync goroutine
	stopCh     chan struct{}      // stop channel to stop background syncs

	// hooks holds the event callbacks for pass outcomes
	hooks *hooks
}

// New creates a new Seatsync instance with the given options.
func New(opts ...Option) (Seatsync, error) {
	config, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	ss := &seatsync{
		config: config,
		stopCh: make(chan struct{}),
		hooks:  newHooks(),
	}

	// Start background syncs if enabled
	if config.autoSyncEnabled {
		if err := ss.AutoSyncOn(); err != nil {
			return nil, fmt.Errorf("starting auto-sync: %w", err)
		}
	}

	return ss, nil
}

// Roster reads the desired records from the configured roster file.
func (s *seatsync) Roster() ([]roster.Record, error) {
	if s.config.rosterPath == "" {
		return nil, &errors.ValidationError{
			Field:   "roster",
			Message: "no roster path configured",
		}
	}
	return s.config.reader.ReadFile(s.config.rosterPath)
}

// Directory fetches the complete user snapshot from the directory. The
// fetch is bounded by the snapshot timeout regardless of the caller's
// context.
func (s *seatsync) Directory(ctx context.Context) ([]directory.User, error) {
	if s.config.client == nil {
		return nil, &errors.ValidationError{
			Field:   "directory",
			Message: "no directory client configured",
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, constants.SnapshotFetchTimeout)
	defer cancel()
	return s.config.client.FetchUsers(ctx)
}
