// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and an error marker.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	invalid   bool
	width     int
}

// NewField creates a new labelled input. The field starts blurred.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
		width:     40,
	}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label, the input box and, when invalid, a hint.
func (f *Field) View() string {
	label := f.styles.Subtitle.Width(14).Render(f.label)
	box := f.styles.InputField
	if f.textinput.Focused() {
		box = f.styles.FocusedInput
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(f.textinput.View()))
	if f.invalid {
		row += " " + f.styles.Error.Render("required")
	}
	return row
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// SetInvalid marks the field as failing validation.
func (f *Field) SetInvalid(invalid bool) {
	f.invalid = invalid
}

// Invalid reports whether the field is marked as failing validation.
func (f *Field) Invalid() bool {
	return f.invalid
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (f *Field) SetWidth(width int) {
	f.width = width
	f.textinput.Width = max(width-20, 20)
}

// Reset clears the input and its error marker.
func (f *Field) Reset() {
	f.textinput.Reset()
	f.invalid = false
}
