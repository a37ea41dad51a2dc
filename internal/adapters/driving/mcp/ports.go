package mcp

import (
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Inspections reads stored inspections.
	Inspections driving.InspectionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Inspections == nil {
		return ErrMissingInspectionService
	}
	return nil
}
