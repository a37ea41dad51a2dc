package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/report"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// defaultListLimit caps list_inspections when the caller gives no limit.
const defaultListLimit = 20

// ListInput is the input schema for the list_inspections tool.
type ListInput struct {
	Equipment     string `json:"equipment,omitempty" jsonschema:"only inspections whose equipment contains this text"`
	CompletedOnly bool   `json:"completed_only,omitempty" jsonschema:"only completed inspections"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of inspections to return (default 20)"`
}

// ListOutput is the output schema for the list_inspections tool.
type ListOutput struct {
	Inspections []report.Summary `json:"inspections"`
	Count       int              `json:"count"`
}

// GetInput is the input schema for the get_inspection tool.
type GetInput struct {
	ID string `json:"id" jsonschema:"the inspection ID"`
}

// SimilarInput is the input schema for the find_similar_nonconformities tool.
type SimilarInput struct {
	Equipment           string `json:"equipment" jsonschema:"equipment identifier, e.g. CAEX 301"`
	ItemName            string `json:"item_name" jsonschema:"checklist item, e.g. Hydraulic System"`
	QuestionText        string `json:"question_text" jsonschema:"question text to match"`
	ExcludeInspectionID string `json:"exclude_inspection_id,omitempty" jsonschema:"inspection to leave out of the results"`
}

// SimilarOutput is the output schema for the find_similar_nonconformities tool.
type SimilarOutput struct {
	Matches []report.Historical `json:"matches"`
	Count   int                 `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_inspections",
		Description: "List stored equipment inspections, newest first, with their conformity percentage",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_inspection",
		Description: "Get a full inspection: header, checklist items, answers, photos and conformity percentage",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar_nonconformities",
		Description: "Find past non-conforming answers for the same equipment, item and question",
	}, s.handleSimilar)
}

// handleList handles the list_inspections tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	summaries, err := s.ports.Inspections.List(ctx, domain.InspectionFilter{
		Equipment:     strings.TrimSpace(input.Equipment),
		CompletedOnly: input.CompletedOnly,
		Limit:         limit,
	})
	if err != nil {
		return nil, ListOutput{}, err
	}

	return nil, ListOutput{
		Inspections: report.FromSummaries(summaries),
		Count:       len(summaries),
	}, nil
}

// handleGet handles the get_inspection tool invocation.
func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, report.Inspection, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, report.Inspection{}, errors.New("id is required")
	}

	in, err := s.ports.Inspections.Get(ctx, id)
	if err != nil {
		return nil, report.Inspection{}, err
	}
	return nil, report.FromInspection(*in), nil
}

// handleSimilar handles the find_similar_nonconformities tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SimilarOutput, error) {
	matches, err := s.ports.Inspections.FindSimilarNonConformities(ctx, domain.RecurrenceQuery{
		QuestionText:        input.QuestionText,
		ItemName:            input.ItemName,
		Equipment:           input.Equipment,
		ExcludeInspectionID: input.ExcludeInspectionID,
	})
	if err != nil {
		return nil, SimilarOutput{}, err
	}

	return nil, SimilarOutput{
		Matches: report.FromHistorical(matches),
		Count:   len(matches),
	}, nil
}
