package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/report"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an inspection",
	Long: `Show an inspection with every item, answer, comment and photo.

Use --json to export the full inspection graph and its conformity percentage.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	in, err := inspectionService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load inspection %s: %w", args[0], err)
	}

	if showJSON {
		return printJSON(cmd.OutOrStdout(), report.FromInspection(*in))
	}
	return printInspection(cmd.OutOrStdout(), *in)
}

func printInspection(w io.Writer, in domain.Inspection) error {
	counts := in.Counts()
	status := "draft"
	if in.IsCompleted {
		status = "completed"
	}

	if err := printKV(w, [][2]string{
		{"ID", in.ID},
		{"Date", formatTime(in.Date)},
		{"Equipment", orDash(in.Equipment)},
		{"Inspector", orDash(in.Inspector)},
		{"Supervisor", orDash(in.Supervisor)},
		{"Horometer", orDash(in.Horometer)},
		{"Status", status},
		{"Answered", strconv.Itoa(counts.Answered) + "/" + strconv.Itoa(counts.Questions)},
		{"Conformity", formatPercentage(domain.ConformityPercentage(in))},
	}); err != nil {
		return err
	}

	for i, item := range in.Items {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, item.Name)
		for _, q := range item.Questions {
			fmt.Fprintf(w, "  %s %s\n", answerMark(q.Answer), q.Text)
			if q.Answer.Comment != "" {
				fmt.Fprintf(w, "       comment: %s\n", q.Answer.Comment)
			}
			for _, p := range q.Answer.Photos {
				fmt.Fprintf(w, "       photo: %s\n", p.URI)
				if p.HasDrawings {
					fmt.Fprintf(w, "       drawing: %s\n", p.DrawingURI)
				}
			}
		}
	}
	return nil
}

func answerMark(a domain.Answer) string {
	switch a.Conformity {
	case domain.Conforming:
		return "[ok]"
	case domain.NonConforming:
		return "[NC]"
	default:
		return "[  ]"
	}
}
