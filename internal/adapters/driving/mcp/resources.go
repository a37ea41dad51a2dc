package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/report"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for equipcheck resources.
	uriScheme = "equipcheck://"

	// resourceListLimit bounds the inspections listing resource.
	resourceListLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "inspections",
		Name:        "inspections",
		Description: "Stored inspections, newest first",
		MIMEType:    "application/json",
	}, s.handleInspectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "inspections/{inspectionId}",
		Name:        "inspection",
		Description: "A full inspection graph with its conformity percentage",
		MIMEType:    "application/json",
	}, s.handleInspectionResource)
}

// handleInspectionsResource returns the inspection listing.
func (s *Server) handleInspectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries, err := s.ports.Inspections.List(ctx, domain.InspectionFilter{Limit: resourceListLimit})
	if err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	return jsonResource(req.Params.URI, report.FromSummaries(summaries))
}

// handleInspectionResource returns a single inspection.
func (s *Server) handleInspectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractInspectionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	in, err := s.ports.Inspections.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting inspection: %w", err)
	}
	return jsonResource(req.Params.URI, report.FromInspection(*in))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractInspectionID extracts the ID from a URI like equipcheck://inspections/{id}.
func extractInspectionID(uri string) string {
	const prefix = uriScheme + "inspections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
