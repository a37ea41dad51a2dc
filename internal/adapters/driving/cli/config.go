package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change equipcheck settings.

Settings are stored in a TOML file (see 'equipcheck config path').

Available keys:
  storage.data_dir   Directory holding inspections.db
  checklist.path     Checklist template file
  logging.verbose    Print debug logging (true/false)
  list.limit         Rows shown by list commands`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if len(args) == 1 {
		key, err := parseSettingKey(args[0])
		if err != nil {
			return err
		}
		value, err := settings.Value(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	rows := make([][]string, 0, len(domain.AllSettingKeys()))
	for _, key := range domain.AllSettingKeys() {
		value, _ := settings.Value(key)
		rows = append(rows, []string{key.String(), orDash(value), key.Description()})
	}
	return printTable(cmd.OutOrStdout(), []string{"KEY", "VALUE", "DESCRIPTION"}, rows)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, err := parseSettingKey(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.Set(key, args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, err := parseSettingKey(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.Unset(key); err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to its default\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}

func parseSettingKey(raw string) (domain.SettingKey, error) {
	key := domain.SettingKey(raw)
	if !key.IsValid() {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, raw)
	}
	return key, nil
}
