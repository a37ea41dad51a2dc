package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd(t *testing.T) {
	ts := setupTestServices(t)
	in := seedInspection(t, ts, "CAEX 301", time.Now())
	require.Equal(t, 1, ts.store.Len())

	out, err := executeCommand(t, "delete", in.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted inspection "+in.ID)
	assert.Equal(t, 0, ts.store.Len())
}

func TestDeleteCmd_NoServices(t *testing.T) {
	setupTestServices(t)
	SetServices(Services{})

	_, err := executeCommand(t, "delete", "some-id")

	assert.EqualError(t, err, "inspection service not configured")
}
