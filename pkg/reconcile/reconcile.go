// Package reconcile classifies desired roster records against a directory
// snapshot and converges the directory toward the roster. Each record ends
// in exactly one outcome: add, update, nochange, or failed. A pass is
// sequential and deterministic; outcomes are emitted in roster order, and
// the same inputs in preview mode always produce the same summary.
package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/roster"
)

// Reconciler runs reconciliation passes.
type Reconciler interface {
	// Pass classifies every desired record against the snapshot, applies
	// creates and updates unless preview mode is set, and returns the
	// aggregated summary. The snapshot is read-only for the duration of
	// the pass; it is indexed once and never refreshed mid-pass.
	Pass(ctx context.Context, desired []roster.Record, snapshot []directory.User) (*Summary, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	table   *license.Table
	client  directory.Client
	sinks   Sinks
	preview bool
	logger  *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		table:   options.table,
		client:  options.client,
		sinks:   options.sinks,
		preview: options.preview,
		logger:  options.logger,
	}, nil
}

// Pass implements Reconciler.
func (r *reconciler) Pass(ctx context.Context, desired []roster.Record, snapshot []directory.User) (*Summary, error) {
	if !r.preview && r.client == nil {
		return nil, &errors.ValidationError{
			Field:   "client",
			Message: "required unless preview mode is set",
		}
	}

	summary := NewSummary(r.preview)
	summary.TotalDesired = len(desired)
	summary.TotalRemote = len(snapshot)

	index := r.index(snapshot)

	r.logger.Info().
		Str("run_id", summary.RunID).
		Int("desired", len(desired)).
		Int("remote", len(snapshot)).
		Bool("preview", r.preview).
		Msg("reconciliation pass started")

	for i, rec := range desired {
		// Cancellation is honored between records. Outcomes accumulated
		// so far are each independently terminal, so the partial summary
		// is returned rather than discarded.
		if err := ctx.Err(); err != nil {
			summary.Finalize()
			r.sinks.OnSummary(summary)
			r.logger.Warn().
				Str("run_id", summary.RunID).
				Int("processed", i).
				Int("desired", len(desired)).
				Msg("pass canceled")
			return summary, fmt.Errorf("%w after %d of %d records: %w",
				errors.ErrCanceled, i, len(desired), err)
		}

		outcome := r.process(ctx, rec, index)
		summary.Record(outcome)
		r.sinks.OnOutcome(outcome)
	}

	summary.Finalize()
	r.sinks.OnSummary(summary)

	r.logger.Info().
		Str("run_id", summary.RunID).
		Dur("duration", summary.Duration).
		Msg(summary.String())

	return summary, nil
}

// index builds the identity-key lookup once per pass. The directory's
// fetch contract promises a deduplicated snapshot; if duplicate keys
// appear anyway, the first entry wins and later ones are reported.
func (r *reconciler) index(snapshot []directory.User) map[string]directory.User {
	index := make(map[string]directory.User, len(snapshot))
	for _, u := range snapshot {
		key := u.Key()
		if key == "" {
			r.logger.Warn().
				Str("id", u.ID).
				Msg("directory user has no email, excluded from matching")
			continue
		}
		if kept, dup := index[key]; dup {
			r.logger.Warn().
				Str("email", key).
				Str("kept_id", kept.ID).
				Str("dropped_id", u.ID).
				Msg("duplicate email in directory snapshot, keeping first")
			continue
		}
		index[key] = u
	}
	return index
}

// process classifies a single record. A panic while handling the record is
// converted into a failed outcome so one bad record never aborts the pass.
func (r *reconciler) process(ctx context.Context, rec roster.Record, index map[string]directory.User) (out Outcome) {
	defer func() {
		if rv := recover(); rv != nil {
			r.logger.Error().
				Interface("panic", rv).
				Str("email", rec.Key()).
				Msg("panic recovered while processing record")
			out = Outcome{
				Action:      ActionFailed,
				Email:       rec.Key(),
				DisplayName: rec.DisplayName,
				NewLicense:  rec.License,
				Status:      "Failed to process",
				Error:       fmt.Sprintf("panic during processing: %v", rv),
			}
		}
	}()

	target := r.table.Code(rec.License)

	remote, ok := index[rec.Key()]
	if !ok {
		return r.add(ctx, rec, target)
	}
	return r.converge(ctx, rec, remote, target)
}

// add handles a record with no directory match.
func (r *reconciler) add(ctx context.Context, rec roster.Record, target license.Tier) Outcome {
	create := r.table.FloorForNew(rec.License)

	out := Outcome{
		Action:      ActionAdd,
		Email:       rec.Key(),
		DisplayName: rec.DisplayName,
		NewLicense:  rec.License,
		Success:     true,
	}

	if r.preview {
		out.Status = r.addStatus(StatusWillAdd, rec.License, target, create)
		return out
	}

	user, err := r.client.CreateUser(ctx, rec.Key(), rec.DisplayName, create)
	if err != nil {
		r.logger.Error().Err(err).Str("email", rec.Key()).Msg("create failed")
		out.Action = ActionFailed
		out.Success = false
		out.Status = StatusFailedAdd
		out.Error = err.Error()
		return out
	}

	out.RemoteID = user.ID
	out.Status = r.addStatus(StatusAdded, rec.License, target, create)
	return out
}

// converge handles a record that matched an existing directory user.
func (r *reconciler) converge(ctx context.Context, rec roster.Record, remote directory.User, target license.Tier) Outcome {
	out := Outcome{
		Email:        rec.Key(),
		DisplayName:  rec.DisplayName,
		PriorLicense: r.table.Label(remote.TierCode),
		NewLicense:   rec.License,
		RemoteID:     remote.ID,
		Success:      true,
	}

	if r.table.Equivalent(rec.License, remote.TierCode) {
		out.Action = ActionNoChange
		out.Status = StatusUnchanged
		return out
	}

	out.Action = ActionUpdate

	external := remote.LicenseSource.External()
	if external {
		r.logger.Warn().
			Str("email", rec.Key()).
			Str("source", string(remote.LicenseSource)).
			Msg("license is subscription-managed, update may not take effect")
	}

	if r.preview {
		out.Status = updateStatus(StatusWillUpdate, external)
		return out
	}

	if err := r.client.UpdateUserTier(ctx, remote.ID, target); err != nil {
		r.logger.Error().Err(err).Str("email", rec.Key()).Msg("update failed")
		out.Action = ActionFailed
		out.Success = false
		out.Status = StatusFailedUpdate
		out.Error = err.Error()
		return out
	}

	out.Status = updateStatus(StatusUpdated, external)
	return out
}

// addStatus qualifies an add status when the created tier differs from the
// requested one, so the report shows the substitution.
func (r *reconciler) addStatus(base, label string, target, create license.Tier) string {
	if create == target {
		return base
	}
	return fmt.Sprintf("%s at %s tier (requested %s; lower manually if needed)",
		base, r.table.Label(create), label)
}

// updateStatus qualifies an update status for subscription-managed
// licenses. The update is still attempted; the caveat is advisory.
func updateStatus(base string, external bool) string {
	if !external {
		return base
	}
	return base + " (subscription-managed license; the directory may not apply the change)"
}
