package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

func TestPostInspectionGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInspectionStore()
	control := completedControl(t)
	require.NoError(t, store.SaveInspection(ctx, control))
	gen := NewPostInspectionGenerator(NewInspectionService(store))

	derived, err := gen.Generate(ctx, control.ID)

	require.NoError(t, err)
	assert.NotEqual(t, control.ID, derived.ID)
	assert.Equal(t, control.Equipment, derived.Equipment)
	assert.Empty(t, derived.Inspector)
	assert.Empty(t, derived.Supervisor)
	assert.Empty(t, derived.Horometer)
	assert.False(t, derived.IsCompleted)

	require.Len(t, derived.Items, len(control.Items))
	for i, item := range derived.Items {
		src := control.Items[i]
		assert.Equal(t, src.Name, item.Name)
		assert.NotEqual(t, src.ID, item.ID)
		require.Len(t, item.Questions, len(src.Questions))
		for j, q := range item.Questions {
			assert.Equal(t, src.Questions[j].Text, q.Text)
			assert.NotEqual(t, src.Questions[j].ID, q.ID)
			assert.False(t, q.Answer.IsAnswered())
		}
	}

	oil := derived.Items[0].Questions[0]
	leak := derived.Items[0].Questions[1]
	assert.False(t, gen.WasControlFinding(oil.ID))
	assert.True(t, gen.WasControlFinding(leak.ID))
	ft, ok := gen.FindingType(leak.ID)
	require.True(t, ok)
	assert.Equal(t, domain.FindingRepeated, ft)
	_, ok = gen.FindingType(oil.ID)
	assert.False(t, ok)
}

func TestPostInspectionGenerator_Generate_MissingControl(t *testing.T) {
	gen := NewPostInspectionGenerator(NewInspectionService(memory.NewInspectionStore()))

	derived, err := gen.Generate(context.Background(), "missing")

	assert.Nil(t, derived)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostInspectionGenerator_Generate_ResetsFindings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInspectionStore()
	control := completedControl(t)
	require.NoError(t, store.SaveInspection(ctx, control))
	gen := NewPostInspectionGenerator(NewInspectionService(store))

	first, err := gen.Generate(ctx, control.ID)
	require.NoError(t, err)
	firstLeak := first.Items[0].Questions[1].ID

	_, err = gen.Generate(ctx, control.ID)
	require.NoError(t, err)

	assert.False(t, gen.WasControlFinding(firstLeak))
}

func TestPostInspectionGenerator_Observe(t *testing.T) {
	gen := NewPostInspectionGenerator(nil)

	gen.Observe("q1", domain.NewConformingAnswer("", nil))
	_, ok := gen.FindingType("q1")
	assert.False(t, ok, "conforming answers are not findings")

	gen.Observe("q1", domain.NewNonConformingAnswer("Fuga", nil))
	ft, ok := gen.FindingType("q1")
	require.True(t, ok)
	assert.Equal(t, domain.FindingPostIntervention, ft)

	// Provenance is recorded once.
	gen.Observe("q1", domain.NewConformingAnswer("", nil))
	ft, _ = gen.FindingType("q1")
	assert.Equal(t, domain.FindingPostIntervention, ft)
	assert.False(t, gen.WasControlFinding("q1"))
}
