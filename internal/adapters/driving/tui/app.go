package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/views/wizard"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	historyView *history.View
	wizardView  *wizard.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s),
		historyView: history.NewView(s, ports.Inspections),
		wizardView:  wizard.NewView(s, km, ports.Workflow),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.historyView.SetContext(ctx)
	a.wizardView.SetContext(ctx)
	return a
}

// WithStartView selects the view shown when the program starts.
func (a *App) WithStartView(view messages.ViewType) *App {
	a.currentView = view
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("equipcheck"),
	}
	switch a.currentView {
	case messages.ViewWizard:
		cmds = append(cmds, a.wizardView.Init())
	case messages.ViewHistory:
		cmds = append(cmds, a.historyView.Init())
	case messages.ViewMenu, messages.ViewHelp:
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewWizard:
			a.wizardView, cmd = a.wizardView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Init()
		}
		return a, nil

	case messages.NewInspectionRequested:
		a.ports.Workflow.ResetInspection()
		a.currentView = messages.ViewWizard
		return a, a.wizardView.Reset()

	case messages.ControlSelected:
		wf, ctx := a.ports.Workflow, a.ctx
		return a, func() tea.Msg {
			return messages.PostInspectionReady{
				ControlID: msg.ControlID,
				Err:       wf.InitializePostInspection(ctx, msg.ControlID),
			}
		}

	case messages.PostInspectionReady:
		a.historyView, cmd = a.historyView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.currentView = messages.ViewWizard
		return a, a.wizardView.Reset()

	case messages.InspectionsLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.StageAdvanced:
		a.wizardView, cmd = a.wizardView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.RecurrenceFound:
		a.wizardView, cmd = a.wizardView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewWizard:
		return a.wizardView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the keybinding groups.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.wizardView.SetDimensions(width, height)
}
