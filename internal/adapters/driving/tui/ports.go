// Package tui provides the interactive terminal wizard for equipcheck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Workflow drives the inspection being edited.
	Workflow driving.Workflow

	// Inspections reads stored inspections for the post-intervention picker.
	Inspections driving.InspectionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(workflow driving.Workflow, inspections driving.InspectionService) *Ports {
	return &Ports{
		Workflow:    workflow,
		Inspections: inspections,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Workflow == nil {
		return ErrMissingWorkflow
	}
	if p.Inspections == nil {
		return ErrMissingInspectionService
	}
	return nil
}
