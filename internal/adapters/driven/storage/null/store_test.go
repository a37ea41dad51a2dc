package null

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return buf
}

func TestInspectionStore_Writes(t *testing.T) {
	captureLog(t)
	cause := errors.New("disk full")
	store := NewInspectionStore(cause)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveInspection(ctx, domain.NewInspection()), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, store.DeleteInspection(ctx, "id"), domain.ErrStorageUnavailable)
	assert.Equal(t, cause, store.Cause())
}

func TestInspectionStore_Reads(t *testing.T) {
	captureLog(t)
	store := NewInspectionStore(errors.New("disk full"))
	ctx := context.Background()

	in, err := store.GetFullInspection(ctx, "id")
	assert.Nil(t, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.ListInspections(ctx, domain.InspectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	matches, err := store.FindSimilarNonConformities(ctx, domain.RecurrenceQuery{Equipment: "CAEX 301"})
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestInspectionStore_LogsEveryCall(t *testing.T) {
	buf := captureLog(t)
	store := NewInspectionStore(errors.New("disk full"))

	_ = store.SaveInspection(context.Background(), domain.Inspection{ID: "abc"})

	assert.Contains(t, buf.String(), "SaveInspection(abc)")
	assert.Contains(t, buf.String(), "disk full")
}
