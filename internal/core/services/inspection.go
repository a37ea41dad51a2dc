package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// Ensure InspectionService implements the interface.
var _ driving.InspectionService = (*InspectionService)(nil)

// InspectionService is the persistence boundary: it forwards to the store,
// logs failures and converts them into domain.StorageError.
type InspectionService struct {
	store driven.InspectionStore
}

// NewInspectionService creates a new inspection service.
func NewInspectionService(store driven.InspectionStore) *InspectionService {
	return &InspectionService{store: store}
}

// Get returns the fully reconstructed inspection.
func (s *InspectionService) Get(ctx context.Context, id string) (*domain.Inspection, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	in, err := s.store.GetFullInspection(ctx, id)
	if err != nil {
		return nil, storageFailure("load inspection", id, err)
	}
	return in, nil
}

// List returns stored inspections, newest first.
func (s *InspectionService) List(
	ctx context.Context,
	filter domain.InspectionFilter,
) ([]domain.InspectionSummary, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	summaries, err := s.store.ListInspections(ctx, filter)
	if err != nil {
		return nil, storageFailure("list inspections", "", err)
	}
	return summaries, nil
}

// Delete removes an inspection and everything it owns.
func (s *InspectionService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrStorageUnavailable
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.DeleteInspection(ctx, id); err != nil {
		return storageFailure("delete inspection", id, err)
	}
	logger.Info("deleted inspection %s", id)
	return nil
}

// Save persists an inspection graph.
func (s *InspectionService) Save(ctx context.Context, inspection domain.Inspection) error {
	if s.store == nil {
		return domain.ErrStorageUnavailable
	}
	if inspection.ID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.SaveInspection(ctx, inspection); err != nil {
		return storageFailure("save inspection", inspection.ID, err)
	}
	logger.Info("saved inspection %s (%.1f%% conforming)",
		inspection.ID, domain.ConformityPercentage(inspection))
	return nil
}

// FindSimilarNonConformities looks up recurring defects on the same equipment.
func (s *InspectionService) FindSimilarNonConformities(
	ctx context.Context,
	query domain.RecurrenceQuery,
) ([]domain.HistoricalQuestion, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	results, err := s.store.FindSimilarNonConformities(ctx, query)
	if err != nil {
		return nil, storageFailure("search past non-conformities", "", err)
	}
	logger.Debug("recurrence %q/%q on %q: %d match(es)",
		query.ItemName, query.QuestionText, query.Equipment, len(results))
	return results, nil
}

// storageFailure passes domain errors through and wraps everything else.
func storageFailure(op, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}
	if id != "" {
		logger.Error("%s %s: %v", op, id, err)
	} else {
		logger.Error("%s: %v", op, err)
	}
	return &domain.StorageError{Op: op, Err: err}
}
