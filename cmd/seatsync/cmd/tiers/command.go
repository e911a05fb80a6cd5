// Package tiers provides the tiers command implementation.
package tiers

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/internal/cmd/output"
	"github.com/agentstation/seatsync/internal/cmd/table"
	"github.com/agentstation/seatsync/pkg/license"
)

// NewCommand creates the tiers command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var tierMap string

	cmd := &cobra.Command{
		Use:     "tiers",
		GroupID: "management",
		Short:   "Show the active license tier table",
		Long: `Tiers prints every label the active tier table resolves, including
built-in aliases and any overlay loaded from a tier map, together with
the canonical tier each label maps to.`,
		Example: `  seatsync tiers                        # Built-in labels and aliases
  seatsync tiers --tier-map tiers.yaml  # Include a tier map overlay
  seatsync tiers -o yaml                # Machine-readable table`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := activeTable(app, tierMap)
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			return formatter.Format(os.Stdout, table.TiersData(tbl))
		},
	}

	cmd.Flags().StringVar(&tierMap, "tier-map", "",
		"YAML file mapping vendor labels to canonical license tiers")

	return cmd
}

// activeTable returns the table to display: the app's configured table, or
// one built from the --tier-map flag when given.
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
