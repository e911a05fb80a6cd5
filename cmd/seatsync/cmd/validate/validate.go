package validate

import (
	"fmt"
	"os"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/internal/cmd/alerts"
	"github.com/agentstation/seatsync/internal/cmd/output"
	"github.com/agentstation/seatsync/internal/cmd/table"
	"github.com/agentstation/seatsync/pkg/license"
)

// ExecuteValidate parses the roster and reports how it would reconcile.
func ExecuteValidate(app appcontext.Interface, flags *Flags) error {
	var overrides []seatsync.Option
	if flags.Roster != "" {
		overrides = append(overrides, seatsync.WithRoster(flags.Roster))
	}

	ss, err := app.SeatsyncWithOptions(overrides...)
	if err != nil {
		return err
	}

	records, err := ss.Roster()
	if err != nil {
		return err
	}

	tbl, err := activeTable(app, flags.TierMap)
	if err != nil {
		return err
	}

	// Show every row with the tier its label resolves to
	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	if err := formatter.Format(os.Stdout, table.RosterData(records, tbl)); err != nil {
		return err
	}

	// Per-row warnings for labels the table cannot resolve
	writer := alerts.NewWriterTo(os.Stderr)
	unknown := 0
	for i, rec := range records {
		if tbl.Known(rec.License) {
			continue
		}
		unknown++
		_ = writer.WriteAlert(alerts.NewWarning(fmt.Sprintf(
			"Row %d: unknown license %q for %s falls back to %s",
			i+1, rec.License, rec.Email, license.TierStakeholder)))
	}

	if unknown > 0 {
		_ = writer.WriteAlert(alerts.NewInfo(fmt.Sprintf(
			"%d of %d records carry labels missing from the tier table", unknown, len(records))))
	} else {
		_ = writer.WriteAlert(alerts.NewSuccess(fmt.Sprintf(
			"All %d records resolve cleanly", len(records))))
	}

	return nil
}

// activeTable returns the table to validate against: the app's configured
// table, or one built from the --tier-map flag when given.
func activeTable(app appcontext.Interface, tierMap string) (*license.Table, error) {
	if tierMap == "" {
		return app.Table()
	}
	aliases, err := license.LoadAliases(tierMap)
	if err != nil {
		return nil, err
	}
	return license.DefaultTable(license.WithAliases(aliases), license.WithLogger(app.Logger())), nil
}
