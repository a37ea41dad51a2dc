package tui

import "errors"

// ErrMissingWorkflow is returned when the workflow is not provided.
var ErrMissingWorkflow = errors.New("tui: workflow is required")

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("tui: inspection service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
