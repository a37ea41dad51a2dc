package driven

import (
	"context"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// ChecklistStore provides the checklist template loaded into new inspections.
type ChecklistStore interface {
	// Load returns the current template.
	Load(ctx context.Context) (domain.ChecklistTemplate, error)

	// Path returns the template file path.
	Path() string
}
