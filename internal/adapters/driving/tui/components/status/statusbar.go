// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
)

// State represents what the status bar is reporting.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Bar displays wizard progress, status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	progress string
	hints    []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		hints:  km.ShortHelp(),
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", padding) + right
}

func (b *Bar) renderLeft() string {
	var parts []string
	if b.progress != "" {
		parts = append(parts, b.styles.Subtitle.Render(b.progress))
	}
	switch b.state {
	case StateLoading:
		parts = append(parts, b.styles.Muted.Render("Working..."))
	case StateError:
		parts = append(parts, b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message)))
	case StateReady:
		if b.message != "" {
			parts = append(parts, b.styles.Normal.Render(b.message))
		}
	}
	return strings.Join(parts, "  ")
}

func (b *Bar) renderRight() string {
	return b.styles.Help.Render(keymap.HelpLine(b.hints...))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the status message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetError switches to the error state with the given message.
func (b *Bar) SetError(message string) {
	b.state = StateError
	b.message = message
}

// SetProgress sets the progress label (e.g. "Item 2/6").
func (b *Bar) SetProgress(progress string) {
	b.progress = progress
}

// SetHints replaces the keybinding hints shown on the right.
func (b *Bar) SetHints(hints ...key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to default state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.progress = ""
	b.hints = b.keymap.ShortHelp()
}
