package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

func (v *View) updateHeader(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return changeView(messages.ViewMenu)
	case "tab", "down":
		return v.focusField(v.focus + 1)
	case "shift+tab", "up":
		return v.focusField(v.focus - 1)
	case "enter":
		if v.focus < len(v.fields)-1 {
			return v.focusField(v.focus + 1)
		}
		return v.proceed()
	}

	field := v.fields[v.focus]
	_, cmd := field.Update(msg)
	v.setHeaderField(v.focus, field.Value())
	v.applyFieldErrors(v.workflow.State().FieldErrors)
	return cmd
}

func (v *View) setHeaderField(idx int, value string) {
	switch idx {
	case fieldEquipment:
		v.workflow.SetEquipment(value)
	case fieldInspector:
		v.workflow.SetInspector(value)
	case fieldSupervisor:
		v.workflow.SetSupervisor(value)
	case fieldHorometer:
		v.workflow.SetHorometer(value)
	}
}

// focusField moves focus to idx, wrapping around the form.
func (v *View) focusField(idx int) tea.Cmd {
	n := len(v.fields)
	idx = ((idx % n) + n) % n
	v.blurFields()
	v.focus = idx
	return v.fields[idx].Focus()
}

func (v *View) blurFields() {
	for _, f := range v.fields {
		f.Blur()
	}
}

func (v *View) applyFieldErrors(fe domain.FieldErrors) {
	v.fields[fieldEquipment].SetInvalid(fe.Equipment)
	v.fields[fieldInspector].SetInvalid(fe.Inspector)
	v.fields[fieldSupervisor].SetInvalid(fe.Supervisor)
	v.fields[fieldHorometer].SetInvalid(fe.Horometer)
}

func firstInvalid(fe domain.FieldErrors) int {
	switch {
	case fe.Equipment:
		return fieldEquipment
	case fe.Inspector:
		return fieldInspector
	case fe.Supervisor:
		return fieldSupervisor
	default:
		return fieldHorometer
	}
}

func (v *View) renderHeader() string {
	var b strings.Builder
	b.WriteString(v.styles.Muted.Render("Who is inspecting what"))
	b.WriteString("\n\n")
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	return b.String()
}
