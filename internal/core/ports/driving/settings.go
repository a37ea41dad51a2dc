package driving

import "github.com/custodia-labs/equipcheck/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults
	// for unset or malformed entries.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting given in textual form.
	Set(key domain.SettingKey, raw string) error

	// Unset removes a setting so its default applies again.
	Unset(key domain.SettingKey) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are persisted.
	Path() string
}
