package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
)

// isTerminal reports whether stdin is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var inspectPost string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run the inspection wizard",
	Long: `Launch the interactive inspection wizard.

The wizard asks for the equipment, inspector, supervisor and horometer reading,
then walks the checklist one item at a time. Every question must be answered;
non-conforming answers need a comment and may carry photos.

Use --post with the ID of a completed inspection to run a post-intervention
check of the same equipment. Defects found in that control inspection are
marked REPEATED; new ones are marked NEW.

Controls:
  Tab/Shift+Tab  - Move between header fields
  ↑/k, ↓/j       - Select a question
  y / n          - Conforms / does not conform
  c              - Edit comment
  p / x          - Add photo / remove last photo
  Enter          - Next step
  Esc            - Back
  Ctrl+C         - Quit`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPost, "post", "", "ID of the control inspection to re-inspect")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if newWorkflow == nil || inspectionService == nil {
		return errors.New("inspection services not configured")
	}
	if !isTerminal() {
		return errors.New("inspect needs an interactive terminal")
	}

	workflow := newWorkflow()
	if inspectPost != "" {
		if err := workflow.InitializePostInspection(cmd.Context(), inspectPost); err != nil {
			return fmt.Errorf("preparing post-intervention inspection: %w", err)
		}
	}

	app, err := tui.NewApp(tui.NewPorts(workflow, inspectionService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithStartView(messages.ViewWizard)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
