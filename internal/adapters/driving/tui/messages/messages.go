// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewHistory lists stored inspections to derive a post-intervention check from.
	ViewHistory
	// ViewWizard is the inspection wizard.
	ViewWizard
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewHistory:
		return "history"
	case ViewWizard:
		return "wizard"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// NewInspectionRequested starts a fresh inspection in the wizard.
type NewInspectionRequested struct{}

// InspectionsLoaded carries stored inspection summaries from the service.
type InspectionsLoaded struct {
	Inspections []domain.InspectionSummary
	Err         error
}

// ControlSelected asks for a post-intervention inspection derived from the control.
type ControlSelected struct {
	ControlID string
}

// PostInspectionReady signals the derived inspection was built (or not).
type PostInspectionReady struct {
	ControlID string
	Err       error
}

// StageAdvanced signals the workflow finished a ProceedToNextStage call.
type StageAdvanced struct {
	From domain.Stage
	Err  error
}

// RecurrenceFound carries past non-conformities similar to a question.
type RecurrenceFound struct {
	QuestionID string
	Matches    []domain.HistoricalQuestion
	Err        error
}
