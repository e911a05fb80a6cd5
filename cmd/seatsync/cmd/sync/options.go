package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/pkg/license"
)

// Flags holds the sync command's flag values.
type Flags struct {
	Roster   string
	Endpoint string
	Token    string
	TierMap  string
	DryRun   bool
	Report   string
}

// addSyncFlags registers the sync flags on cmd and returns the bound values.
func addSyncFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Roster, "roster", "r", "",
		"path to the roster CSV export")
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", "",
		"directory API base URL")
	cmd.Flags().StringVar(&flags.Token, "token", "",
		"directory API token (defaults to SEATSYNC_TOKEN)")
	cmd.Flags().StringVar(&flags.TierMap, "tier-map", "",
		"YAML file mapping vendor labels to canonical license tiers")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"preview the pass without writing to the directory")
	cmd.Flags().StringVar(&flags.Report, "report", "",
		"write the pass summary to a JSON file")

	return flags
}

// BuildSeatsyncOptions converts flag values into seatsync options applied
// on top of the app configuration, so flags win over config and env.
func BuildSeatsyncOptions(flags *Flags) ([]seatsync.Option, error) {
	var opts []seatsync.Option

	if flags.Roster != "" {
		opts = append(opts, seatsync.WithRoster(flags.Roster))
	}
	if flags.Endpoint != "" || flags.Token != "" {
		opts = append(opts, seatsync.WithDirectory(flags.Endpoint, flags.Token))
	}
	if flags.TierMap != "" {
		aliases, err := license.LoadAliases(flags.TierMap)
		if err != nil {
			return nil, err
		}
		opts = append(opts, seatsync.WithTable(license.DefaultTable(license.WithAliases(aliases))))
	}

	return opts, nil
}
