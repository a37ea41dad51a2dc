package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

func newTestSettingsService(t *testing.T) (*SettingsService, *file.ConfigStore) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return NewSettingsService(store), store
}

func TestNewSettingsService(t *testing.T) {
	service, _ := newTestSettingsService(t)

	require.NotNil(t, service)
	assert.NotNil(t, service.configStore)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(t)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(t)
	require.NoError(t, store.Set("storage.data_dir", "/srv/equipcheck"))
	require.NoError(t, store.Set("logging.verbose", true))
	require.NoError(t, store.Set("list.limit", 7))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/equipcheck", settings.DataDir)
	assert.True(t, settings.Verbose)
	assert.Equal(t, 7, settings.ListLimit)
	assert.Empty(t, settings.ChecklistPath)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	service, store := newTestSettingsService(t)
	require.NoError(t, store.Set("list.limit", -3))
	require.NoError(t, store.Set("logging.verbose", "yes"))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultListLimit, settings.ListLimit)
	assert.False(t, settings.Verbose)
}

func TestSettingsService_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	service := NewSettingsService(store)

	want := domain.AppSettings{
		DataDir:       filepath.Join(dir, "data"),
		ChecklistPath: filepath.Join(dir, "trucks.toml"),
		Verbose:       true,
		ListLimit:     50,
	}
	require.NoError(t, service.Save(&want))

	reopened, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	got, err := NewSettingsService(reopened).Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service, _ := newTestSettingsService(t)

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(&domain.AppSettings{ListLimit: 0}), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	service, _ := newTestSettingsService(t)

	require.NoError(t, service.Set(domain.SettingVerbose, "true"))
	require.NoError(t, service.Set(domain.SettingListLimit, "12"))
	require.NoError(t, service.Set(domain.SettingChecklistPath, "/etc/equipcheck/checklist.toml"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.Verbose)
	assert.Equal(t, 12, settings.ListLimit)
	assert.Equal(t, "/etc/equipcheck/checklist.toml", settings.ChecklistPath)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service, _ := newTestSettingsService(t)

	assert.ErrorIs(t, service.Set(domain.SettingListLimit, "zero"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("search.mode", "hybrid"), domain.ErrInvalidInput)
}

func TestSettingsService_Unset(t *testing.T) {
	service, _ := newTestSettingsService(t)
	require.NoError(t, service.Set(domain.SettingListLimit, "3"))

	require.NoError(t, service.Unset(domain.SettingListLimit))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultListLimit, settings.ListLimit)

	assert.NoError(t, service.Unset(domain.SettingListLimit), "unsetting twice is fine")
	assert.ErrorIs(t, service.Unset("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.ErrorIs(t, service.Set(domain.SettingVerbose, "true"), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, service.Unset(domain.SettingVerbose), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, service.Save(&domain.AppSettings{ListLimit: 1}), domain.ErrStorageUnavailable)
	assert.Empty(t, service.Path())
}

func TestSettingsService_Path(t *testing.T) {
	service, store := newTestSettingsService(t)

	assert.Equal(t, store.Path(), service.Path())
	_, err := os.Stat(filepath.Dir(service.Path()))
	assert.NoError(t, err)
}
