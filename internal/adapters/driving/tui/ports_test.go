package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/services"
)

// staticChecklist returns a two-item template.
type staticChecklist struct{}

func (staticChecklist) Load(context.Context) (domain.ChecklistTemplate, error) {
	return domain.ChecklistTemplate{Sections: []domain.ChecklistSection{
		{Name: "Motor", Questions: []string{"Nivel de aceite", "Fugas"}},
		{Name: "Frenos", Questions: []string{"Pastillas"}},
	}}, nil
}

func (staticChecklist) Path() string { return "static" }

func newTestPorts() (*Ports, *memory.InspectionStore) {
	store := memory.NewInspectionStore()
	inspections := services.NewInspectionService(store)
	return NewPorts(services.NewWorkflow(inspections, staticChecklist{}), inspections), store
}

func TestNewPorts(t *testing.T) {
	ports, _ := newTestPorts()

	require.NotNil(t, ports)
	assert.NotNil(t, ports.Workflow)
	assert.NotNil(t, ports.Inspections)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	valid, _ := newTestPorts()

	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing workflow", &Ports{Inspections: valid.Inspections}, ErrMissingWorkflow},
		{"missing inspections", &Ports{Workflow: valid.Workflow}, ErrMissingInspectionService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.err)
		})
	}
}
