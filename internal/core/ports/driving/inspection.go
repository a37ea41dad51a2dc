package driving

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// InspectionService exposes stored inspections to the CLI, TUI and MCP adapters.
type InspectionService interface {
	// Get returns the fully reconstructed inspection.
	Get(ctx context.Context, id string) (*domain.Inspection, error)

	// List returns stored inspections, newest first.
	List(ctx context.Context, filter domain.InspectionFilter) ([]domain.InspectionSummary, error)

	// Delete removes an inspection and everything it owns.
	Delete(ctx context.Context, id string) error

	// Save persists an inspection graph.
	Save(ctx context.Context, inspection domain.Inspection) error

	// FindSimilarNonConformities looks up recurring defects on the same equipment.
	FindSimilarNonConformities(ctx context.Context, query domain.RecurrenceQuery) ([]domain.HistoricalQuestion, error)
}
