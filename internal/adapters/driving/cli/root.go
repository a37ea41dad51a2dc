// Package cli provides the equipcheck command line interface built on cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

var (
	// version is set at build time.
	version = "dev"

	verbose bool

	inspectionService driving.InspectionService
	settingsService   driving.SettingsService

	// newWorkflow builds the workflow for one wizard session.
	newWorkflow func() driving.Workflow
)

var rootCmd = &cobra.Command{
	Use:   "equipcheck",
	Short: "Equipment inspection checklists",
	Long: `equipcheck records pre-use and post-intervention inspections of heavy equipment.

An inspection captures who inspected which machine, walks a checklist one item
at a time and stores every answer, comment and photo in a local database.
Past non-conformities on the same equipment are flagged while you inspect.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
}

// Services holds the driving ports the commands use.
type Services struct {
	Inspections driving.InspectionService
	Settings    driving.SettingsService
	NewWorkflow func() driving.Workflow
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	inspectionService = s.Inspections
	settingsService = s.Settings
	newWorkflow = s.NewWorkflow
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
