// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous step.
	Back key.Binding

	// Next advances to the next step.
	Next key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// NextField moves focus to the next form field.
	NextField key.Binding

	// PrevField moves focus to the previous form field.
	PrevField key.Binding

	// Conform answers the selected question as conforming.
	Conform key.Binding

	// NonConform answers the selected question as non-conforming.
	NonConform key.Binding

	// Comment edits the comment of the selected question.
	Comment key.Binding

	// AddPhoto attaches a photo to the selected question.
	AddPhoto key.Binding

	// RemovePhoto detaches the last photo of the selected question.
	RemovePhoto key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Conform: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "conforms"),
		),
		NonConform: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "does not conform"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		AddPhoto: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "add photo"),
		),
		RemovePhoto: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove photo"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ChecklistHelp returns keybindings for the checklist step.
func (k *KeyMap) ChecklistHelp() []key.Binding {
	return []key.Binding{k.Up, k.Conform, k.NonConform, k.Comment, k.AddPhoto, k.Next, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextField, k.PrevField, k.Next, k.Back},
		{k.Conform, k.NonConform, k.Comment, k.AddPhoto, k.RemovePhoto},
		{k.Help, k.Quit},
	}
}

// HelpLine renders bindings as "[key] description" pairs.
func HelpLine(bindings ...key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "  "
		}
		line += "[" + b.Help().Key + "] " + b.Help().Desc
	}
	return line
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
