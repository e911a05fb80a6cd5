// Package sync provides the sync command implementation.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seatsync/internal/appcontext"
)

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile the roster against the directory",
		Long: `Sync runs one reconciliation pass of the roster against the directory.

The pass:
1. Reads the desired roster from the CSV export
2. Fetches the directory's current user snapshot
3. Creates users present in the roster but missing from the directory
4. Corrects license tiers that differ from the roster

Users the directory has but the roster lacks are never touched, and
subscription-managed licenses are reported rather than modified. Records
are processed one at a time so a failure never blocks the rest of the
pass; a pass with failures exits with a distinct status.`,
		Example: `  seatsync sync --roster users.csv                  # Reconcile a roster export
  seatsync sync -r users.csv --dry-run              # Preview without writing
  seatsync sync -r users.csv --report pass.json     # Also write a JSON report
  seatsync sync -r users.csv --tier-map tiers.yaml  # Map vendor labels to tiers`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return ExecuteSync(ctx, app, flags)
		},
	}

	// Add sync-specific flags
	flags = addSyncFlags(cmd)

	return cmd
}
