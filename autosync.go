package seatsync

import (
	"context"
	"time"

	"github.com/agentstation/seatsync/pkg/constants"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoSyncer = (*seatsync)(nil)

// AutoSyncer provides controls for periodic background syncs.
type AutoSyncer interface {
	// AutoSyncOn begins periodic syncs if configured
	AutoSyncOn() error

	// AutoSyncOff stops periodic syncs
	AutoSyncOff() error
}

// AutoSyncOn begins periodic syncs if configured.
func (s *seatsync) AutoSyncOn() error {
	if s.config.autoSyncInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoSyncInterval",
			Value:   s.config.autoSyncInterval,
			Message: "sync interval must be positive",
		}
	}

	// Stop any existing auto-sync to prevent resource leaks
	if err := s.AutoSyncOff(); err != nil {
		return err
	}

	// Recreate stopCh since it was closed in AutoSyncOff
	s.stopCh = make(chan struct{})

	s.syncTicker = time.NewTicker(s.config.autoSyncInterval)

	// Create a cancellable context for the sync goroutine
	ctx, cancel := context.WithCancel(context.Background())
	s.syncCancel = cancel

	go func(parentCtx context.Context) {
		for {
			select {
			case <-s.syncTicker.C:
				// Bound each pass so a hung directory cannot wedge the loop
				syncCtx, syncCancel := context.WithTimeout(parentCtx, constants.PassTimeout)
				_, err := s.Sync(syncCtx)
				syncCancel() // Always cancel to release resources

				if err != nil {
					// Check if context was canceled - if so, exit the loop
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return
					}
					// Log other errors but continue
					logging.Error().Err(err).Msg("Auto-sync failed")
				}
			case <-parentCtx.Done():
				return
			case <-s.stopCh:
				return
			}
		}
	}(ctx)

	return nil
}

// AutoSyncOff stops periodic syncs.
func (s *seatsync) AutoSyncOff() error {
	if s.syncTicker != nil {
		s.syncTicker.Stop()
		s.syncTicker = nil
	}
	if s.syncCancel != nil {
		s.syncCancel()
		s.syncCancel = nil
	}
	select {
	case <-s.stopCh:
		// Already closed
	default:
		close(s.stopCh)
	}
	return nil
}
