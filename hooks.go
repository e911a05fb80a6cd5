package seatsync

import (
	"sync"

	"github.com/agentstation/seatsync/pkg/reconcile"
)

// Hook function types for pass events
type (
	// UserAddedHook is called when a pass creates a directory user
	UserAddedHook func(outcome reconcile.Outcome)

	// UserUpdatedHook is called when a pass changes a user's license tier
	UserUpdatedHook func(outcome reconcile.Outcome)

	// RecordFailedHook is called when a roster record fails to apply
	RecordFailedHook func(outcome reconcile.Outcome)

	// PassCompletedHook is called with the summary when a pass finishes
	PassCompletedHook func(summary *reconcile.Summary)
)

// Hooks provides access to event callback registration.
type Hooks interface {
	// OnUserAdded registers a callback for created users
	OnUserAdded(UserAddedHook)

	// OnUserUpdated registers a callback for license tier changes
	OnUserUpdated(UserUpdatedHook)

	// OnRecordFailed registers a callback for failed records
	OnRecordFailed(RecordFailedHook)

	// OnPassCompleted registers a callback for finished passes
	OnPassCompleted(PassCompletedHook)
}

// Compile-time interface check to ensure proper implementation.
var _ reconcile.Sink = (*hooks)(nil)

// hooks manages event callbacks for reconciliation passes. It implements
// reconcile.Sink so every pass feeds it directly; preview passes trigger
// hooks the same way applying passes do, with the outcome carrying the
// would-be status.
type hooks struct {
	mu              sync.RWMutex
	onUserAdded     []UserAddedHook
	onUserUpdated   []UserUpdatedHook
	onRecordFailed  []RecordFailedHook
	onPassCompleted []PassCompletedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnUserAdded registers a callback for created users.
func (h *hooks) OnUserAdded(fn UserAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUserAdded = append(h.onUserAdded, fn)
}

// OnUserUpdated registers a callback for license tier changes.
func (h *hooks) OnUserUpdated(fn UserUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUserUpdated = append(h.onUserUpdated, fn)
}

// OnRecordFailed registers a callback for failed records.
func (h *hooks) OnRecordFailed(fn RecordFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordFailed = append(h.onRecordFailed, fn)
}

// OnPassCompleted registers a callback for finished passes.
func (h *hooks) OnPassCompleted(fn PassCompletedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPassCompleted = append(h.onPassCompleted, fn)
}

// OnOutcome dispatches one outcome to the hooks registered for its action.
func (h *hooks) OnOutcome(outcome reconcile.Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch outcome.Action {
	case reconcile.ActionAdd:
		for _, hook := range h.onUserAdded {
			hook(outcome)
		}
	case reconcile.ActionUpdate:
		for _, hook := range h.onUserUpdated {
			hook(outcome)
		}
	case reconcile.ActionFailed:
		for _, hook := range h.onRecordFailed {
			hook(outcome)
		}
	}
}

// OnSummary dispatches the pass summary to completion hooks.
func (h *hooks) OnSummary(summary *reconcile.Summary) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onPassCompleted {
		hook(summary)
	}
}

// OnUserAdded registers a callback for created users.
func (s *seatsync) OnUserAdded(fn UserAddedHook) {
	s.hooks.OnUserAdded(fn)
}

// OnUserUpdated registers a callback for license tier changes.
func (s *seatsync) OnUserUpdated(fn UserUpdatedHook) {
	s.hooks.OnUserUpdated(fn)
}

// OnRecordFailed registers a callback for failed records.
func (s *seatsync) OnRecordFailed(fn RecordFailedHook) {
	s.hooks.OnRecordFailed(fn)
}

// OnPassCompleted registers a callback for finished passes.
func (s *seatsync) OnPassCompleted(fn PassCompletedHook) {
	s.hooks.OnPassCompleted(fn)
}
