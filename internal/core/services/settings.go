package services

import (
	"fmt"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		DataDir:       s.configStore.GetString(domain.SettingDataDir.String()),
		ChecklistPath: s.configStore.GetString(domain.SettingChecklistPath.String()),
		Verbose:       s.configStore.GetBool(domain.SettingVerbose.String()),
		ListLimit:     s.getListLimit(defaults.ListLimit),
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrStorageUnavailable
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if settings.ListLimit < 1 {
		return fmt.Errorf("%w: list limit must be positive", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(domain.SettingDataDir.String(), settings.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	if err := s.configStore.Set(domain.SettingChecklistPath.String(), settings.ChecklistPath); err != nil {
		return fmt.Errorf("save checklist path: %w", err)
	}
	if err := s.configStore.Set(domain.SettingVerbose.String(), settings.Verbose); err != nil {
		return fmt.Errorf("save verbose: %w", err)
	}
	if err := s.configStore.Set(domain.SettingListLimit.String(), settings.ListLimit); err != nil {
		return fmt.Errorf("save list limit: %w", err)
	}
	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key domain.SettingKey, raw string) error {
	if s.configStore == nil {
		return domain.ErrStorageUnavailable
	}
	value, err := key.ParseValue(raw)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key.String(), value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a setting so its default applies again.
func (s *SettingsService) Unset(key domain.SettingKey) error {
	if s.configStore == nil {
		return domain.ErrStorageUnavailable
	}
	if !key.IsValid() {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key.String()); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getListLimit(defaultVal int) int {
	if n := s.configStore.GetInt(domain.SettingListLimit.String()); n > 0 {
		return n
	}
	return defaultVal
}
