// Package history provides the view that picks a completed inspection as the
// control for a post-intervention check.
package history

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

// historyLimit bounds how many completed inspections are offered.
const historyLimit = 50

// View lists completed inspections.
type View struct {
	styles      *styles.Styles
	inspections driving.InspectionService
	list        *list.InspectionList
	ctx         context.Context
	loading     bool
	err         error
	width       int
	height      int
	ready       bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, inspections driving.InspectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:      s,
		inspections: inspections,
		list:        list.NewInspectionList(s),
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init starts loading completed inspections.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadInspections()
}

func (v *View) loadInspections() tea.Cmd {
	ctx := v.ctx
	svc := v.inspections
	return func() tea.Msg {
		if svc == nil {
			return messages.InspectionsLoaded{Err: domain.ErrStorageUnavailable}
		}
		summaries, err := svc.List(ctx, domain.InspectionFilter{
			CompletedOnly: true,
			Limit:         historyLimit,
		})
		return messages.InspectionsLoaded{Inspections: summaries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.InspectionsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetInspections(msg.Inspections)
		}
		return v, nil

	case messages.PostInspectionReady:
		v.loading = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			return v, v.Init()
		case "enter":
			selected := v.list.SelectedInspection()
			if selected == nil {
				return v, nil
			}
			v.loading = true
			id := selected.ID
			return v, func() tea.Msg {
				return messages.ControlSelected{ControlID: id}
			}
		default:
			v.list.Update(msg)
		}
	}

	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Post-intervention check"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Choose the control inspection"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + domain.UserMessage(v.err)))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [r] Refresh  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, max(height-6, 3))
}

// Loading reports whether a request is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
