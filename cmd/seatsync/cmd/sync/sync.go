package sync

import (
	"context"
	"os"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/internal/cmd/alerts"
	"github.com/agentstation/seatsync/internal/report"
	"github.com/agentstation/seatsync/pkg/errors"
)

// ExecuteSync runs one reconciliation pass with the given flags.
func ExecuteSync(ctx context.Context, app appcontext.Interface, flags *Flags) error {
	// Apply flag overrides on top of the app configuration
	overrides, err := BuildSeatsyncOptions(flags)
	if err != nil {
		return err
	}

	ss, err := app.SeatsyncWithOptions(overrides...)
	if err != nil {
		return err
	}

	// Stream outcomes to stdout; the optional file report captures the
	// same summary for automation.
	syncOpts := []seatsync.SyncOption{
		seatsync.SyncWithPreview(flags.DryRun),
		seatsync.SyncWithSink(report.NewConsole(os.Stdout)),
	}

	var fileReport *report.File
	if flags.Report != "" {
		fileReport = report.NewFile(flags.Report, report.WithLogger(app.Logger()))
		syncOpts = append(syncOpts, seatsync.SyncWithSink(fileReport))
	}

	summary, err := ss.Sync(ctx, syncOpts...)
	if err != nil {
		return err
	}

	// A report write failure should not fail a pass that already ran
	if fileReport != nil {
		if werr := fileReport.Err(); werr != nil {
			writer := alerts.NewWriterTo(os.Stderr)
			_ = writer.WriteAlert(alerts.NewWarning("Report not written").WithError(werr))
		}
	}

	if summary.HasFailures() {
		return &errors.PartialFailureError{
			Failed: summary.Failed,
			Total:  summary.TotalProcessed,
		}
	}

	return nil
}
