package driven

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// InspectionStore persists inspection graphs in a normalised relational form
// (inspections, items, questions, photos).
type InspectionStore interface {
	// SaveInspection upserts the inspection and its whole graph, recomputing
	// the stored conformity percentage.
	SaveInspection(ctx context.Context, inspection domain.Inspection) error

	// GetFullInspection rebuilds the nested inspection.
	// Returns domain.ErrNotFound if no inspection has that ID.
	GetFullInspection(ctx context.Context, id string) (*domain.Inspection, error)

	// DeleteInspection removes the inspection with all of its items, questions and photos.
	DeleteInspection(ctx context.Context, id string) error

	// ListInspections returns inspection rows, newest first.
	ListInspections(ctx context.Context, filter domain.InspectionFilter) ([]domain.InspectionSummary, error)

	// FindSimilarNonConformities returns past non-conforming answers matching the query,
	// newest first, at most domain.RecurrenceLimit. No match is an empty result, not an error.
	FindSimilarNonConformities(ctx context.Context, query domain.RecurrenceQuery) ([]domain.HistoricalQuestion, error)
}
