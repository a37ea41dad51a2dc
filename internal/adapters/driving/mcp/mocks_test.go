package mcp

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// mockInspectionService is a mock implementation of driving.InspectionService.
type mockInspectionService struct {
	inspection *domain.Inspection
	summaries  []domain.InspectionSummary
	matches    []domain.HistoricalQuestion
	err        error

	lastFilter domain.InspectionFilter
	lastQuery  domain.RecurrenceQuery
}

func (m *mockInspectionService) Get(_ context.Context, id string) (*domain.Inspection, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.inspection == nil || m.inspection.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.inspection, nil
}

func (m *mockInspectionService) List(
	_ context.Context,
	filter domain.InspectionFilter,
) ([]domain.InspectionSummary, error) {
	m.lastFilter = filter
	return m.summaries, m.err
}

func (m *mockInspectionService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockInspectionService) Save(_ context.Context, _ domain.Inspection) error {
	return m.err
}

func (m *mockInspectionService) FindSimilarNonConformities(
	_ context.Context,
	query domain.RecurrenceQuery,
) ([]domain.HistoricalQuestion, error) {
	m.lastQuery = query
	return m.matches, m.err
}

func testInspection() *domain.Inspection {
	in := domain.NewInspection()
	in.Equipment = "CAEX 301"
	in.Inspector = "J. Perez"
	in.IsCompleted = true
	in.Items = []domain.InspectionItem{
		domain.NewInspectionItem("Motor", []domain.InspectionQuestion{
			domain.NewInspectionQuestion("Fugas").WithAnswer(domain.NewNonConformingAnswer("Fuga en retén", nil)),
		}),
	}
	return &in
}
