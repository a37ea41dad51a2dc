package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SettingKey names a configuration entry in dot notation.
type SettingKey string

// Recognised configuration keys.
const (
	// SettingDataDir is the directory holding the inspection database.
	SettingDataDir SettingKey = "storage.data_dir"

	// SettingChecklistPath is the checklist template file.
	SettingChecklistPath SettingKey = "checklist.path"

	// SettingVerbose enables debug logging.
	SettingVerbose SettingKey = "logging.verbose"

	// SettingListLimit caps the number of rows printed by list commands.
	SettingListLimit SettingKey = "list.limit"
)

// DefaultListLimit is used when list.limit is unset or not positive.
const DefaultListLimit = 20

// AllSettingKeys returns every recognised key in display order.
func AllSettingKeys() []SettingKey {
	return []SettingKey{SettingDataDir, SettingChecklistPath, SettingVerbose, SettingListLimit}
}

// String returns the key in dot notation.
func (k SettingKey) String() string {
	return string(k)
}

// IsValid returns true if the key is recognised.
func (k SettingKey) IsValid() bool {
	for _, known := range AllSettingKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// Description returns a human-readable description of the key.
func (k SettingKey) Description() string {
	switch k {
	case SettingDataDir:
		return "Directory holding inspections.db (default ~/.equipcheck/data)"
	case SettingChecklistPath:
		return "Checklist template file (default ~/.equipcheck/checklist.toml)"
	case SettingVerbose:
		return "Print debug logging to stderr (true/false)"
	case SettingListLimit:
		return fmt.Sprintf("Rows shown by list commands (default %d)", DefaultListLimit)
	default:
		return "Unknown"
	}
}

// ParseValue converts the textual form of a value into the type stored for the key.
func (k SettingKey) ParseValue(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch k {
	case SettingDataDir, SettingChecklistPath:
		return raw, nil
	case SettingVerbose:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidInput, k, raw)
		}
		return b, nil
	case SettingListLimit:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s expects a positive integer, got %q", ErrInvalidInput, k, raw)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", ErrInvalidInput, k)
	}
}

// AppSettings holds all application settings. Empty paths mean the default
// location under ~/.equipcheck.
type AppSettings struct {
	// DataDir is the directory holding the inspection database.
	DataDir string

	// ChecklistPath is the checklist template file.
	ChecklistPath string

	// Verbose enables debug logging.
	Verbose bool

	// ListLimit caps the number of rows printed by list commands.
	ListLimit int
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ListLimit: DefaultListLimit,
	}
}

// Value returns the setting for the key in its textual form.
func (s AppSettings) Value(k SettingKey) (string, error) {
	switch k {
	case SettingDataDir:
		return s.DataDir, nil
	case SettingChecklistPath:
		return s.ChecklistPath, nil
	case SettingVerbose:
		return strconv.FormatBool(s.Verbose), nil
	case SettingListLimit:
		return strconv.Itoa(s.ListLimit), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", ErrInvalidInput, k)
	}
}
