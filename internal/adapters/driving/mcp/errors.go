// Package mcp provides an MCP (Model Context Protocol) server adapter for equipcheck.
// It exports stored inspections and recurrence lookups to AI assistants and other
// MCP clients.
package mcp

import "errors"

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("mcp: inspection service is required")
