package app

import (
	"runtime"

	"github.com/spf13/cobra"

	synccmd "github.com/agentstation/seatsync/cmd/seatsync/cmd/sync"
	"github.com/agentstation/seatsync/cmd/seatsync/cmd/tiers"
	"github.com/agentstation/seatsync/cmd/seatsync/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewSyncCommand())
	rootCmd.AddCommand(a.NewValidateCommand())

	// Management commands
	rootCmd.AddCommand(a.NewTiersCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewSyncCommand creates the sync command with app dependencies.
func (a *App) NewSyncCommand() *cobra.Command {
	return synccmd.NewCommand(a)
}

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// NewTiersCommand creates the tiers command with app dependencies.
func (a *App) NewTiersCommand() *cobra.Command {
	return tiers.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("seatsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s\n", runtime.Version())
				cmd.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
