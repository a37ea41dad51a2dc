// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// InspectionList displays stored inspections in a navigable list.
type InspectionList struct {
	inspections []domain.InspectionSummary
	selected    int
	styles      *styles.Styles
	width       int
	height      int
}

// NewInspectionList creates a new inspection list component.
func NewInspectionList(s *styles.Styles) *InspectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &InspectionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (l *InspectionList) Update(msg tea.Msg) (*InspectionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list, scrolled so the selection stays visible.
func (l *InspectionList) View() string {
	if len(l.inspections) == 0 {
		return l.styles.Muted.Render("No inspections stored yet")
	}

	visible := max(l.height-2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.inspections))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, l.inspections[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *InspectionList) renderRow(index int, s domain.InspectionSummary) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	status := "draft"
	if s.IsCompleted {
		status = "done"
	}
	text := fmt.Sprintf("%s%s  %-16s  %-18s  %-5s  ",
		indicator, s.Date.Format("2006-01-02 15:04"), truncate(s.Equipment, 16), truncate(s.Inspector, 18), status)

	if index == l.selected {
		return l.styles.Selected.Render(text) + l.styles.Percentage(s.ConformityPercentage)
	}
	return l.styles.Normal.Render(text) + l.styles.Percentage(s.ConformityPercentage)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetInspections replaces the listed inspections and resets the selection.
func (l *InspectionList) SetInspections(inspections []domain.InspectionSummary) {
	l.inspections = inspections
	l.selected = 0
}

// Len returns the number of listed inspections.
func (l *InspectionList) Len() int {
	return len(l.inspections)
}

// Selected returns the index of the selected row.
func (l *InspectionList) Selected() int {
	return l.selected
}

// SelectedInspection returns the selected summary, or nil if the list is empty.
func (l *InspectionList) SelectedInspection() *domain.InspectionSummary {
	if l.selected < 0 || l.selected >= len(l.inspections) {
		return nil
	}
	return &l.inspections[l.selected]
}

// MoveUp moves selection up.
func (l *InspectionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *InspectionList) MoveDown() {
	if l.selected < len(l.inspections)-1 {
		l.selected++
	}
}

// SetDimensions sets the list dimensions.
func (l *InspectionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}
