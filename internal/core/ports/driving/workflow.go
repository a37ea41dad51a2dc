package driving

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// WorkflowState is a snapshot of everything the UI renders.
type WorkflowState struct {
	Stage            domain.Stage
	CurrentItemIndex int
	Inspection       domain.Inspection
	FieldErrors      domain.FieldErrors
	Loading          bool
	LastError        error
	IsPostInspection bool
}

// Workflow drives one inspection through the wizard stages.
// A Workflow belongs to a single session and is not safe for concurrent use.
type Workflow interface {
	// State returns the current snapshot.
	State() WorkflowState

	// SetEquipment, SetInspector, SetSupervisor and SetHorometer edit the header
	// and clear the matching field error.
	SetEquipment(v string)
	SetInspector(v string)
	SetSupervisor(v string)
	SetHorometer(v string)

	// ProceedToNextStage moves one step forward when the current stage allows it.
	// Only persistence failures are returned; validation failures set flags.
	ProceedToNextStage(ctx context.Context) error

	// GoBack moves one step backwards and reports whether anything changed.
	GoBack() bool

	// CanAdvanceItem reports whether the current checklist item is complete.
	CanAdvanceItem() bool

	// UpdateQuestionAnswer replaces the answer of a question in the current item.
	UpdateQuestionAnswer(questionID string, answer domain.Answer) bool

	// AddPhotoToQuestion, RemovePhotoFromQuestion and UpdatePhotoWithDrawing
	// manage the photos of a question in any item.
	AddPhotoToQuestion(questionID string, photo domain.Photo) bool
	RemovePhotoFromQuestion(questionID, photoID string) bool
	UpdatePhotoWithDrawing(questionID, photoID, drawingURI string) bool

	// ResetInspection starts over with a fresh, empty inspection.
	ResetInspection()

	// InitializePostInspection starts a post-intervention inspection derived
	// from a stored control inspection.
	InitializePostInspection(ctx context.Context, controlInspectionID string) error

	// WasControlFinding reports whether a question was already non-conforming
	// in the control inspection.
	WasControlFinding(questionID string) bool

	// FindingType returns the provenance recorded for a question.
	FindingType(questionID string) (domain.FindingType, bool)

	// ConformityPercentage computes the percentage for the current inspection.
	ConformityPercentage() float64

	// SimilarNonConformities looks up past defects similar to the given question.
	SimilarNonConformities(ctx context.Context, questionID string) ([]domain.HistoricalQuestion, error)
}
