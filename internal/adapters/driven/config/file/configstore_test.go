package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".equipcheck", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())
	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.data_dir", "/srv/equipcheck"))
	require.NoError(t, store.Set("list.limit", 25))
	require.NoError(t, store.Set("logging.verbose", true))

	assert.Equal(t, "/srv/equipcheck", store.GetString("storage.data_dir"))
	assert.Equal(t, 25, store.GetInt("list.limit"))
	assert.True(t, store.GetBool("logging.verbose"))

	// Wrong types and missing keys yield zero values.
	assert.Empty(t, store.GetString("list.limit"))
	assert.Zero(t, store.GetInt("storage.data_dir"))
	assert.False(t, store.GetBool("storage.data_dir"))
	assert.Empty(t, store.GetString("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.data_dir", "/srv/equipcheck"))
	require.NoError(t, store.Set("logging.verbose", true))
	require.NoError(t, store.Set("list.limit", 40))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
	assert.Contains(t, string(data), "[logging]")

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/equipcheck", reopened.GetString("storage.data_dir"))
	assert.True(t, reopened.GetBool("logging.verbose"))
	assert.Equal(t, 40, reopened.GetInt("list.limit"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[storage]
data_dir = "/mnt/inspections"

[checklist]
path = "/etc/equipcheck/trucks.toml"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "/mnt/inspections", store.GetString("storage.data_dir"))
	assert.Equal(t, "/etc/equipcheck/trucks.toml", store.GetString("checklist.path"))
}

func TestConfigStore_Load_EmptyOrCommentOnly(t *testing.T) {
	for name, content := range map[string]string{"empty": "", "comment": "# nothing yet\n\n"} {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

			store, err := NewConfigStore(tmpDir)

			require.NoError(t, err)
			_, ok := store.Get("storage.data_dir")
			assert.False(t, ok)
		})
	}
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("list.limit", 5))
	require.NoError(t, store.Set("logging.verbose", true))

	require.NoError(t, store.Delete("list.limit"))
	require.NoError(t, store.Delete("never.set"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reopened.Get("list.limit")
	assert.False(t, ok)
	assert.True(t, reopened.GetBool("logging.verbose"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("logging.verbose", false))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["checklist.path"] = "/tmp/c.toml"
	store.mu.Unlock()
	require.NoError(t, store.Save())

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.toml", reopened.GetString("checklist.path"))
}

func TestConfigStore_Set_WriteErrorKeepsPreviousValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("list.limit", 5))

	// A directory in place of the file makes every write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("list.limit", 9))
	assert.Error(t, store.Set("logging.verbose", true))

	assert.Equal(t, 5, store.GetInt("list.limit"))
	_, ok := store.Get("logging.verbose")
	assert.False(t, ok)
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "worker.k" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, store.GetInt("worker.k"+string(rune('0'+i))))
	}
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"storage.data_dir": "/d",
		"logging.verbose":  true,
		"top":              1,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"storage": map[string]any{"data_dir": "/d"},
		"logging": map[string]any{"verbose": true},
		"top":     1,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ValueAndTableClash(t *testing.T) {
	flat := map[string]any{
		"list":       "scalar",
		"list.limit": 3,
	}

	nested := nestMap(flat)

	assert.Equal(t, "scalar", nested["list"])
	assert.Equal(t, 3, nested["list.limit"])
}
