package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No inspections found.")
}

func TestListCmd_Table(t *testing.T) {
	ts := setupTestServices(t)
	now := time.Now()
	older := seedInspection(t, ts, "CAEX 301", now.Add(-time.Hour))
	newer := seedInspection(t, ts, "CAEX 302", now)

	out, err := executeCommand(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CONFORMITY")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "50.0%")
	assert.Less(t, strings.Index(out, newer.ID), strings.Index(out, older.ID))
}

func TestListCmd_EquipmentFilter(t *testing.T) {
	ts := setupTestServices(t)
	match := seedInspection(t, ts, "CAEX 301", time.Now())
	other := seedInspection(t, ts, "Pala 12", time.Now())

	out, err := executeCommand(t, "list", "--equipment", "caex")

	require.NoError(t, err)
	assert.Contains(t, out, match.ID)
	assert.NotContains(t, out, other.ID)
}

func TestListCmd_LimitFromSettings(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.settings.Set("list.limit", "1"))
	older := seedInspection(t, ts, "CAEX 301", time.Now().Add(-time.Hour))
	newer := seedInspection(t, ts, "CAEX 301", time.Now())

	out, err := executeCommand(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, newer.ID)
	assert.NotContains(t, out, older.ID)
}

func TestListCmd_LimitFlagOverridesSettings(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.settings.Set("list.limit", "1"))
	seedInspection(t, ts, "CAEX 301", time.Now().Add(-time.Hour))
	seedInspection(t, ts, "CAEX 301", time.Now())

	out, err := executeCommand(t, "list", "-n", "5", "--json")

	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 2)
	assert.Equal(t, 50.0, rows[0]["conformity_percentage"])
}

func TestListCmd_NoServices(t *testing.T) {
	setupTestServices(t)
	SetServices(Services{})

	_, err := executeCommand(t, "list")

	assert.Error(t, err)
}
