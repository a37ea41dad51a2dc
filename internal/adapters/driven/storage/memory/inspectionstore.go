package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
)

// Ensure InspectionStore implements the interface.
var _ driven.InspectionStore = (*InspectionStore)(nil)

// InspectionStore is an in-memory implementation of driven.InspectionStore.
// It mirrors the SQLite store's observable behaviour, including the answer
// timestamp being replaced on load, so it can stand in for it in tests.
type InspectionStore struct {
	mu          sync.RWMutex
	inspections map[string]domain.Inspection
}

// NewInspectionStore creates a new in-memory inspection store.
func NewInspectionStore() *InspectionStore {
	return &InspectionStore{
		inspections: make(map[string]domain.Inspection),
	}
}

// SaveInspection stores or replaces an inspection graph.
func (s *InspectionStore) SaveInspection(ctx context.Context, inspection domain.Inspection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inspections[inspection.ID] = cloneInspection(inspection, false)
	return nil
}

// GetFullInspection returns a deep copy of the stored inspection.
func (s *InspectionStore) GetFullInspection(ctx context.Context, id string) (*domain.Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.inspections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	loaded := cloneInspection(in, true)
	return &loaded, nil
}

// DeleteInspection removes an inspection and everything it owns.
func (s *InspectionStore) DeleteInspection(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inspections, id)
	return nil
}

// ListInspections returns stored inspections, newest first.
func (s *InspectionStore) ListInspections(
	ctx context.Context,
	filter domain.InspectionFilter,
) ([]domain.InspectionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.InspectionSummary, 0, len(s.inspections))
	for _, in := range s.inspections {
		if filter.Equipment != "" && !containsFold(in.Equipment, filter.Equipment) {
			continue
		}
		if filter.CompletedOnly && !in.IsCompleted {
			continue
		}
		result = append(result, domain.InspectionSummary{
			ID:                   in.ID,
			Equipment:            in.Equipment,
			Inspector:            in.Inspector,
			Supervisor:           in.Supervisor,
			Horometer:            in.Horometer,
			Date:                 in.Date,
			IsCompleted:          in.IsCompleted,
			ConformityPercentage: domain.ConformityPercentage(in),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// FindSimilarNonConformities scans stored inspections for matching non-conforming answers.
func (s *InspectionStore) FindSimilarNonConformities(
	ctx context.Context,
	query domain.RecurrenceQuery,
) ([]domain.HistoricalQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []domain.HistoricalQuestion{}
	for _, in := range s.inspections {
		if in.ID == query.ExcludeInspectionID || !containsFold(in.Equipment, query.Equipment) {
			continue
		}
		for _, item := range in.Items {
			if !containsFold(item.Name, query.ItemName) {
				continue
			}
			for _, q := range item.Questions {
				if q.Answer.Conformity != domain.NonConforming || !containsFold(q.Text, query.QuestionText) {
					continue
				}
				results = append(results, domain.HistoricalQuestion{
					InspectionID:   in.ID,
					InspectionDate: in.Date,
					Equipment:      in.Equipment,
					Inspector:      in.Inspector,
					ItemName:       item.Name,
					QuestionID:     q.ID,
					QuestionText:   q.Text,
					Comment:        q.Answer.Comment,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].InspectionDate.After(results[j].InspectionDate)
	})
	if len(results) > domain.RecurrenceLimit {
		results = results[:domain.RecurrenceLimit]
	}
	return results, nil
}

// Len returns the number of stored inspections.
func (s *InspectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inspections)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// cloneInspection deep-copies the graph. When loading, answer timestamps are
// replaced by the load time and unanswered questions lose any photos, as the
// relational store does.
func cloneInspection(in domain.Inspection, loading bool) domain.Inspection {
	now := time.Now()
	items := make([]domain.InspectionItem, len(in.Items))
	for i, item := range in.Items {
		questions := make([]domain.InspectionQuestion, len(item.Questions))
		for j, q := range item.Questions {
			a := q.Answer
			switch {
			case !a.IsAnswered():
				a = domain.Answer{}
			default:
				a = a.WithPhotos(a.Photos)
				if loading {
					a.Timestamp = now
				}
			}
			q.Answer = a
			questions[j] = q
		}
		item.Questions = questions
		items[i] = item
	}
	in.Items = items
	return in
}
