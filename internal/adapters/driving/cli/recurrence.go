package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/report"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

var (
	recurrenceEquipment string
	recurrenceItem      string
	recurrenceQuestion  string
	recurrenceExclude   string
	recurrenceJSON      bool
)

var recurrenceCmd = &cobra.Command{
	Use:   "recurrence",
	Short: "Find past non-conformities",
	Long: `Find past non-conforming answers on the same equipment whose item and
question text contain the given values. Matching is case-insensitive.
At most 10 matches are returned, newest first.`,
	Args: cobra.NoArgs,
	RunE: runRecurrence,
}

func init() {
	recurrenceCmd.Flags().StringVarP(&recurrenceEquipment, "equipment", "e", "", "equipment identifier")
	recurrenceCmd.Flags().StringVarP(&recurrenceItem, "item", "i", "", "checklist item name")
	recurrenceCmd.Flags().StringVarP(&recurrenceQuestion, "question", "q", "", "question text")
	recurrenceCmd.Flags().StringVar(&recurrenceExclude, "exclude", "", "inspection ID to leave out")
	recurrenceCmd.Flags().BoolVar(&recurrenceJSON, "json", false, "output as JSON")
	_ = recurrenceCmd.MarkFlagRequired("equipment")
	_ = recurrenceCmd.MarkFlagRequired("item")
	_ = recurrenceCmd.MarkFlagRequired("question")
	rootCmd.AddCommand(recurrenceCmd)
}

func runRecurrence(cmd *cobra.Command, _ []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	matches, err := inspectionService.FindSimilarNonConformities(cmd.Context(), domain.RecurrenceQuery{
		QuestionText:        recurrenceQuestion,
		ItemName:            recurrenceItem,
		Equipment:           recurrenceEquipment,
		ExcludeInspectionID: recurrenceExclude,
	})
	if err != nil {
		return fmt.Errorf("failed to search past non-conformities: %w", err)
	}

	if recurrenceJSON {
		return printJSON(cmd.OutOrStdout(), report.FromHistorical(matches))
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No past non-conformities found.")
		return nil
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			formatTime(m.InspectionDate),
			m.InspectionID,
			orDash(m.Inspector),
			m.ItemName,
			m.QuestionText,
			orDash(m.Comment),
		})
	}
	return printTable(cmd.OutOrStdout(),
		[]string{"DATE", "INSPECTION", "INSPECTOR", "ITEM", "QUESTION", "COMMENT"}, rows)
}
