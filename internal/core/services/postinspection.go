package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// PostInspectionGenerator derives a post-intervention inspection from a
// completed control inspection and tracks where each finding came from.
//
// The provenance map lives only as long as the generator. Each derived session
// needs its own generator; it is not safe for concurrent use.
type PostInspectionGenerator struct {
	inspections driving.InspectionService
	findings    map[string]domain.FindingType
}

// NewPostInspectionGenerator creates a generator reading control inspections
// through the given service.
func NewPostInspectionGenerator(inspections driving.InspectionService) *PostInspectionGenerator {
	return &PostInspectionGenerator{
		inspections: inspections,
		findings:    make(map[string]domain.FindingType),
	}
}

// Generate loads the control inspection and builds a fresh one for the same
// equipment: new IDs, blank inspector/supervisor/horometer, unanswered questions.
// Questions that were non-conforming in the control are recorded as REPEATED.
func (g *PostInspectionGenerator) Generate(ctx context.Context, controlID string) (*domain.Inspection, error) {
	control, err := g.inspections.Get(ctx, controlID)
	if err != nil {
		return nil, fmt.Errorf("loading control inspection: %w", err)
	}

	g.findings = make(map[string]domain.FindingType)

	derived := domain.NewInspection()
	derived.Equipment = control.Equipment

	items := make([]domain.InspectionItem, 0, len(control.Items))
	for _, src := range control.Items {
		questions := make([]domain.InspectionQuestion, 0, len(src.Questions))
		for _, sq := range src.Questions {
			q := domain.NewInspectionQuestion(sq.Text)
			if sq.Answer.Conformity == domain.NonConforming {
				g.findings[q.ID] = domain.FindingRepeated
			}
			questions = append(questions, q)
		}
		items = append(items, domain.NewInspectionItem(src.Name, questions))
	}
	derived.Items = items

	logger.Info("post-intervention inspection %s derived from %s (%d repeated finding(s))",
		derived.ID, controlID, len(g.findings))
	return &derived, nil
}

// Observe records a POST_INTERVENTION finding when a question without
// provenance receives a non-conforming answer.
func (g *PostInspectionGenerator) Observe(questionID string, answer domain.Answer) {
	if answer.Conformity != domain.NonConforming {
		return
	}
	if _, ok := g.findings[questionID]; ok {
		return
	}
	g.findings[questionID] = domain.FindingPostIntervention
}

// WasControlFinding reports whether the question was non-conforming in the control inspection.
func (g *PostInspectionGenerator) WasControlFinding(questionID string) bool {
	return g.findings[questionID] == domain.FindingRepeated
}

// FindingType returns the provenance recorded for the question.
func (g *PostInspectionGenerator) FindingType(questionID string) (domain.FindingType, bool) {
	ft, ok := g.findings[questionID]
	return ft, ok
}
