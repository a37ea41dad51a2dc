package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/report"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

var (
	listEquipment string
	listCompleted bool
	listLimit     int
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored inspections",
	Long: `List stored inspections, newest first, with their conformity percentage.

The number of rows defaults to the list.limit setting.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listEquipment, "equipment", "e", "", "only equipment containing this text")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "only completed inspections")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of inspections (default from list.limit)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	limit := listLimit
	if limit <= 0 {
		limit = configuredListLimit()
	}

	summaries, err := inspectionService.List(cmd.Context(), domain.InspectionFilter{
		Equipment:     listEquipment,
		CompletedOnly: listCompleted,
		Limit:         limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list inspections: %w", err)
	}

	if listJSON {
		return printJSON(cmd.OutOrStdout(), report.FromSummaries(summaries))
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No inspections found.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		status := "draft"
		if s.IsCompleted {
			status = "completed"
		}
		rows = append(rows, []string{
			s.ID,
			formatTime(s.Date),
			orDash(s.Equipment),
			orDash(s.Inspector),
			status,
			formatPercentage(s.ConformityPercentage),
		})
	}
	return printTable(cmd.OutOrStdout(),
		[]string{"ID", "DATE", "EQUIPMENT", "INSPECTOR", "STATUS", "CONFORMITY"}, rows)
}

// configuredListLimit reads list.limit, falling back to the default.
func configuredListLimit() int {
	if settingsService == nil {
		return domain.DefaultListLimit
	}
	settings, err := settingsService.Get()
	if err != nil || settings.ListLimit <= 0 {
		return domain.DefaultListLimit
	}
	return settings.ListLimit
}
