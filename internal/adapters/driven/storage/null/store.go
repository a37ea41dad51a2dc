// Package null provides the inspection store used when the real store
// could not be initialised. Every call is logged as an error; reads return
// empty results and writes report domain.ErrStorageUnavailable.
package null

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// Ensure InspectionStore implements the interface.
var _ driven.InspectionStore = (*InspectionStore)(nil)

// InspectionStore is a lifeless store that never fails by panicking.
type InspectionStore struct {
	// cause is the initialisation error that led to this store being used.
	cause error
}

// NewInspectionStore creates a null store remembering why the real one failed.
func NewInspectionStore(cause error) *InspectionStore {
	return &InspectionStore{cause: cause}
}

// Cause returns the initialisation error.
func (s *InspectionStore) Cause() error {
	return s.cause
}

// SaveInspection drops the inspection.
func (s *InspectionStore) SaveInspection(_ context.Context, inspection domain.Inspection) error {
	s.logCall("SaveInspection", inspection.ID)
	return domain.ErrStorageUnavailable
}

// GetFullInspection never finds anything.
func (s *InspectionStore) GetFullInspection(_ context.Context, id string) (*domain.Inspection, error) {
	s.logCall("GetFullInspection", id)
	return nil, domain.ErrNotFound
}

// DeleteInspection does nothing.
func (s *InspectionStore) DeleteInspection(_ context.Context, id string) error {
	s.logCall("DeleteInspection", id)
	return domain.ErrStorageUnavailable
}

// ListInspections returns an empty list.
func (s *InspectionStore) ListInspections(
	_ context.Context,
	_ domain.InspectionFilter,
) ([]domain.InspectionSummary, error) {
	s.logCall("ListInspections", "")
	return []domain.InspectionSummary{}, nil
}

// FindSimilarNonConformities returns an empty list.
func (s *InspectionStore) FindSimilarNonConformities(
	_ context.Context,
	query domain.RecurrenceQuery,
) ([]domain.HistoricalQuestion, error) {
	s.logCall("FindSimilarNonConformities", query.ExcludeInspectionID)
	return []domain.HistoricalQuestion{}, nil
}

func (s *InspectionStore) logCall(method, id string) {
	if id != "" {
		logger.Error("null store: %s(%s) called without storage: %v", method, id, s.cause)
		return
	}
	logger.Error("null store: %s called without storage: %v", method, s.cause)
}
