package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// Ensure Workflow implements the interface.
var _ driving.Workflow = (*Workflow)(nil)

// errEmptyChecklist is returned when the checklist template has no sections.
var errEmptyChecklist = errors.New("checklist template has no items")

// Workflow is the inspection wizard state machine:
// InitialInfo -> Checklist (one step per item) -> Summary -> Completed.
//
// A Workflow models a single session. Its mutex only lets a UI render State
// while a persistence call is in flight; blocking calls never hold it.
type Workflow struct {
	inspections driving.InspectionService
	checklist   driven.ChecklistStore

	mu          sync.Mutex
	inspection  domain.Inspection
	stage       domain.Stage
	itemIndex   int
	fieldErrors domain.FieldErrors
	loading     bool
	lastErr     error

	// generator is set only during a post-intervention session.
	generator *PostInspectionGenerator
}

// NewWorkflow creates a workflow holding a fresh, empty inspection.
func NewWorkflow(inspections driving.InspectionService, checklist driven.ChecklistStore) *Workflow {
	return &Workflow{
		inspections: inspections,
		checklist:   checklist,
		inspection:  domain.NewInspection(),
	}
}

// State returns the current snapshot.
func (w *Workflow) State() driving.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return driving.WorkflowState{
		Stage:            w.stage,
		CurrentItemIndex: w.itemIndex,
		Inspection:       w.inspection,
		FieldErrors:      w.fieldErrors,
		Loading:          w.loading,
		LastError:        w.lastErr,
		IsPostInspection: w.generator != nil,
	}
}

// SetEquipment edits the equipment field.
func (w *Workflow) SetEquipment(v string) {
	w.editHeader(func(in *domain.Inspection, fe *domain.FieldErrors) {
		in.Equipment = v
		fe.Equipment = fe.Equipment && isBlank(v)
	})
}

// SetInspector edits the inspector field.
func (w *Workflow) SetInspector(v string) {
	w.editHeader(func(in *domain.Inspection, fe *domain.FieldErrors) {
		in.Inspector = v
		fe.Inspector = fe.Inspector && isBlank(v)
	})
}

// SetSupervisor edits the supervisor field.
func (w *Workflow) SetSupervisor(v string) {
	w.editHeader(func(in *domain.Inspection, fe *domain.FieldErrors) {
		in.Supervisor = v
		fe.Supervisor = fe.Supervisor && isBlank(v)
	})
}

// SetHorometer edits the horometer field.
func (w *Workflow) SetHorometer(v string) {
	w.editHeader(func(in *domain.Inspection, fe *domain.FieldErrors) {
		in.Horometer = v
		fe.Horometer = fe.Horometer && isBlank(v)
	})
}

// editHeader applies fn to a copy of the inspection header.
func (w *Workflow) editHeader(fn func(*domain.Inspection, *domain.FieldErrors)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	in := w.inspection
	fn(&in, &w.fieldErrors)
	w.inspection = in
}

// ProceedToNextStage moves one step forward when the current stage allows it.
func (w *Workflow) ProceedToNextStage(ctx context.Context) error {
	w.mu.Lock()
	switch w.stage {
	case domain.StageInitialInfo:
		w.mu.Unlock()
		return w.leaveInitialInfo(ctx)

	case domain.StageChecklist:
		defer w.mu.Unlock()
		if !w.currentItemCompleteLocked() {
			logger.Debug("item %d incomplete, staying on checklist", w.itemIndex)
			return nil
		}
		if w.itemIndex < len(w.inspection.Items)-1 {
			w.itemIndex++
			return nil
		}
		w.moveLocked(domain.StageSummary)
		return nil

	case domain.StageSummary:
		w.mu.Unlock()
		return w.complete(ctx)

	default:
		w.mu.Unlock()
		return nil
	}
}

func (w *Workflow) leaveInitialInfo(ctx context.Context) error {
	w.mu.Lock()
	errs := domain.FieldErrors{
		Equipment:  isBlank(w.inspection.Equipment),
		Inspector:  isBlank(w.inspection.Inspector),
		Supervisor: isBlank(w.inspection.Supervisor),
		Horometer:  isBlank(w.inspection.Horometer),
	}
	w.fieldErrors = errs
	if errs.Any() {
		w.mu.Unlock()
		logger.Debug("initial info incomplete: %+v", errs)
		return nil
	}

	// Derived inspections arrive with their items already built.
	if len(w.inspection.Items) > 0 {
		w.itemIndex = 0
		w.moveLocked(domain.StageChecklist)
		w.mu.Unlock()
		return nil
	}
	w.loading = true
	w.mu.Unlock()

	items, err := w.loadChecklist(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastErr = err
		logger.Error("loading checklist: %v", err)
		return fmt.Errorf("loading checklist: %w", err)
	}
	w.lastErr = nil
	w.inspection = w.inspection.WithItems(items)
	w.itemIndex = 0
	w.moveLocked(domain.StageChecklist)
	return nil
}

func (w *Workflow) loadChecklist(ctx context.Context) ([]domain.InspectionItem, error) {
	if w.checklist == nil {
		return nil, errEmptyChecklist
	}
	tmpl, err := w.checklist.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := tmpl.NewItems()
	if len(items) == 0 {
		return nil, errEmptyChecklist
	}
	return items, nil
}

// complete marks the inspection completed and saves it. On failure the stage
// stays at Summary so the save can be retried; IsCompleted is not rolled back.
func (w *Workflow) complete(ctx context.Context) error {
	w.mu.Lock()
	in := w.inspection
	in.IsCompleted = true
	w.inspection = in
	w.loading = true
	w.mu.Unlock()

	err := w.save(ctx, in)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastErr = err
		return err
	}
	w.lastErr = nil
	w.moveLocked(domain.StageCompleted)
	return nil
}

func (w *Workflow) save(ctx context.Context, in domain.Inspection) error {
	if w.inspections == nil {
		return domain.ErrStorageUnavailable
	}
	return w.inspections.Save(ctx, in)
}

// GoBack moves one step backwards and reports whether anything changed.
func (w *Workflow) GoBack() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case domain.StageChecklist:
		if w.itemIndex > 0 {
			w.itemIndex--
			return true
		}
		w.moveLocked(domain.StageInitialInfo)
		return true

	case domain.StageSummary:
		w.itemIndex = max(len(w.inspection.Items)-1, 0)
		w.moveLocked(domain.StageChecklist)
		return true

	case domain.StageCompleted:
		w.moveLocked(domain.StageSummary)
		return true

	default:
		return false
	}
}

// CanAdvanceItem reports whether every question of the current item is answered
// and every non-conforming answer has a comment.
func (w *Workflow) CanAdvanceItem() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentItemCompleteLocked()
}

func (w *Workflow) currentItemCompleteLocked() bool {
	if w.itemIndex < 0 || w.itemIndex >= len(w.inspection.Items) {
		return false
	}
	return w.inspection.Items[w.itemIndex].Complete()
}

// UpdateQuestionAnswer replaces the answer of a question in the current item only.
// A question of another item is silently ignored. When the new answer carries no
// photos, the photos already attached are kept.
func (w *Workflow) UpdateQuestionAnswer(questionID string, answer domain.Answer) bool {
	if !answer.IsAnswered() {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.itemIndex < 0 || w.itemIndex >= len(w.inspection.Items) {
		return false
	}
	item := w.inspection.Items[w.itemIndex]
	q, ok := item.Question(questionID)
	if !ok {
		return false
	}

	if len(answer.Photos) == 0 {
		answer = answer.WithPhotos(q.Answer.Photos)
	} else {
		answer = answer.WithPhotos(answer.Photos)
	}
	if answer.Timestamp.IsZero() {
		answer.Timestamp = time.Now()
	}

	item, _ = item.WithQuestion(q.WithAnswer(answer))
	w.inspection = w.inspection.WithItem(w.itemIndex, item)

	if w.generator != nil {
		w.generator.Observe(questionID, answer)
	}
	return true
}

// AddPhotoToQuestion attaches a photo to an answered question in any item.
func (w *Workflow) AddPhotoToQuestion(questionID string, photo domain.Photo) bool {
	if photo.ID == "" {
		fresh := domain.NewPhoto(photo.URI)
		fresh.HasDrawings, fresh.DrawingURI = photo.HasDrawings, photo.DrawingURI
		photo = fresh
	}
	return w.editPhotos(questionID, func(photos []domain.Photo) ([]domain.Photo, bool) {
		return append(photos, photo), true
	})
}

// RemovePhotoFromQuestion detaches a photo from a question in any item.
func (w *Workflow) RemovePhotoFromQuestion(questionID, photoID string) bool {
	return w.editPhotos(questionID, func(photos []domain.Photo) ([]domain.Photo, bool) {
		kept := make([]domain.Photo, 0, len(photos))
		for _, p := range photos {
			if p.ID != photoID {
				kept = append(kept, p)
			}
		}
		return kept, len(kept) != len(photos)
	})
}

// UpdatePhotoWithDrawing records the annotated copy of a photo. The original URI is kept.
func (w *Workflow) UpdatePhotoWithDrawing(questionID, photoID, drawingURI string) bool {
	return w.editPhotos(questionID, func(photos []domain.Photo) ([]domain.Photo, bool) {
		for i := range photos {
			if photos[i].ID == photoID {
				photos[i] = photos[i].WithDrawing(drawingURI)
				return photos, true
			}
		}
		return photos, false
	})
}

// editPhotos searches every item for the question and rebuilds the path to the
// root with the edited photo list. fn receives a private copy of the photos.
func (w *Workflow) editPhotos(questionID string, fn func([]domain.Photo) ([]domain.Photo, bool)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, j, ok := w.inspection.FindQuestion(questionID)
	if !ok {
		return false
	}
	q := w.inspection.Items[i].Questions[j]
	if !q.Answer.IsAnswered() {
		return false
	}

	photos := make([]domain.Photo, len(q.Answer.Photos))
	copy(photos, q.Answer.Photos)
	photos, changed := fn(photos)
	if !changed {
		return false
	}

	item, _ := w.inspection.Items[i].WithQuestion(q.WithAnswer(q.Answer.WithPhotos(photos)))
	w.inspection = w.inspection.WithItem(i, item)
	return true
}

// ResetInspection starts over with a fresh, empty inspection.
func (w *Workflow) ResetInspection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inspection = domain.NewInspection()
	w.stage = domain.StageInitialInfo
	w.itemIndex = 0
	w.fieldErrors = domain.FieldErrors{}
	w.loading = false
	w.lastErr = nil
	w.generator = nil
}

// InitializePostInspection replaces the current inspection with one derived from
// the control inspection and restarts the wizard at InitialInfo.
func (w *Workflow) InitializePostInspection(ctx context.Context, controlInspectionID string) error {
	if w.inspections == nil {
		return domain.ErrStorageUnavailable
	}
	gen := NewPostInspectionGenerator(w.inspections)

	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	derived, err := gen.Generate(ctx, controlInspectionID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastErr = err
		return err
	}
	w.inspection = *derived
	w.stage = domain.StageInitialInfo
	w.itemIndex = 0
	w.fieldErrors = domain.FieldErrors{}
	w.lastErr = nil
	w.generator = gen
	return nil
}

// WasControlFinding reports whether the question was non-conforming in the control inspection.
func (w *Workflow) WasControlFinding(questionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generator != nil && w.generator.WasControlFinding(questionID)
}

// FindingType returns the provenance recorded for the question.
func (w *Workflow) FindingType(questionID string) (domain.FindingType, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generator == nil {
		return "", false
	}
	return w.generator.FindingType(questionID)
}

// ConformityPercentage computes the percentage for the current inspection.
func (w *Workflow) ConformityPercentage() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.ConformityPercentage(w.inspection)
}

// SimilarNonConformities looks up past defects like the given question on the
// same equipment, excluding the current inspection.
func (w *Workflow) SimilarNonConformities(
	ctx context.Context,
	questionID string,
) ([]domain.HistoricalQuestion, error) {
	w.mu.Lock()
	i, j, ok := w.inspection.FindQuestion(questionID)
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	query := domain.RecurrenceQuery{
		QuestionText:        w.inspection.Items[i].Questions[j].Text,
		ItemName:            w.inspection.Items[i].Name,
		Equipment:           w.inspection.Equipment,
		ExcludeInspectionID: w.inspection.ID,
	}
	w.mu.Unlock()

	if w.inspections == nil {
		return []domain.HistoricalQuestion{}, nil
	}
	return w.inspections.FindSimilarNonConformities(ctx, query)
}

func (w *Workflow) moveLocked(to domain.Stage) {
	logger.Debug("workflow %s: %s -> %s", w.inspection.ID, w.stage, to)
	w.stage = to
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
