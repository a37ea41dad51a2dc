package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an inspection",
	Long:  `Delete an inspection together with its items, answers and photo references.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}

	if err := inspectionService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete inspection %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted inspection %s\n", args[0])
	return nil
}
