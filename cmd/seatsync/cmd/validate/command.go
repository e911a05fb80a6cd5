// Package validate provides the validate command implementation.
package validate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seatsync/internal/appcontext"
)

// NewCommand creates the validate command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check a roster file without touching the directory",
		Long: `Validate parses a roster CSV export and reports what a sync pass would
see: how each row's license label resolves against the active tier table,
which rows were skipped or padded, and which labels are unknown.

No network access happens. Use this to vet a fresh export or a new tier
map before running sync against the live directory.`,
		Example: `  seatsync validate --roster users.csv              # Check an export
  seatsync validate -r users.csv --tier-map t.yaml  # Check with a tier map
  seatsync validate -r users.csv -o json            # Machine-readable rows`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteValidate(app, flags)
		},
	}

	// Add validate-specific flags
	flags = addValidateFlags(cmd)

	return cmd
}

// addValidateFlags registers the validate flags on cmd and returns the
// bound values.
func addValidateFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Roster, "roster", "r", "",
		"path to the roster CSV export")
	cmd.Flags().StringVar(&flags.TierMap, "tier-map", "",
		"YAML file mapping vendor labels to canonical license tiers")

	return flags
}

// Flags holds the validate command's flag values.
type Flags struct {
	Roster  string
	TierMap string
}
