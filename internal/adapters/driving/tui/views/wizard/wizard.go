// Package wizard provides the inspection wizard view: header form, one
// checklist step per item, summary and completion.
package wizard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

// editMode selects what the single-line editor is collecting.
type editMode int

const (
	modeNormal editMode = iota
	modeComment
	modePhoto
)

// Header field positions.
const (
	fieldEquipment = iota
	fieldInspector
	fieldSupervisor
	fieldHorometer
)

// View drives a driving.Workflow from the keyboard.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	workflow driving.Workflow
	ctx      context.Context

	fields []*input.Field
	focus  int

	cursor int
	mode   editMode
	editor *input.Field

	// recurrence holds past non-conformities per question ID.
	recurrence map[string][]domain.HistoricalQuestion

	status *status.Bar
	busy   bool
	width  int
	height int
	ready  bool
}

// NewView creates a new wizard view over the workflow.
func NewView(s *styles.Styles, km *keymap.KeyMap, workflow driving.Workflow) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:   s,
		keymap:   km,
		workflow: workflow,
		ctx:      context.Background(),
		fields: []*input.Field{
			fieldEquipment:  input.NewField(s, "Equipment", "e.g. CAEX 301"),
			fieldInspector:  input.NewField(s, "Inspector", "Full name"),
			fieldSupervisor: input.NewField(s, "Supervisor", "Full name"),
			fieldHorometer:  input.NewField(s, "Horometer", "Hour meter reading"),
		},
		editor:     input.NewField(s, "", ""),
		recurrence: make(map[string][]domain.HistoricalQuestion),
		status:     status.NewBar(s, km),
		width:      80,
		height:     24,
	}
	v.refreshStatus()
	return v
}

// SetContext sets the context used for workflow calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init focuses the first header field.
func (v *View) Init() tea.Cmd {
	return v.Reset()
}

// Reset re-reads the workflow state into the view. Call it after the workflow
// was reset or re-initialised from outside the view.
func (v *View) Reset() tea.Cmd {
	state := v.workflow.State()
	in := state.Inspection
	values := []string{in.Equipment, in.Inspector, in.Supervisor, in.Horometer}
	for i, f := range v.fields {
		f.Reset()
		f.SetValue(values[i])
	}
	v.cursor = 0
	v.mode = modeNormal
	v.busy = false
	v.recurrence = make(map[string][]domain.HistoricalQuestion)
	v.status.Clear()
	v.refreshStatus()

	if state.Stage != domain.StageInitialInfo {
		v.blurFields()
		return nil
	}
	// Derived inspections arrive with the equipment filled in.
	first := fieldEquipment
	if in.Equipment != "" {
		first = fieldInspector
	}
	return v.focusField(first)
}

// Update handles messages for the wizard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StageAdvanced:
		cmd = v.handleStageAdvanced(msg)

	case messages.RecurrenceFound:
		if msg.Err == nil && len(msg.Matches) > 0 {
			v.recurrence[msg.QuestionID] = msg.Matches
		}

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch v.workflow.State().Stage {
		case domain.StageInitialInfo:
			cmd = v.updateHeader(msg)
		case domain.StageChecklist:
			cmd = v.updateChecklist(msg)
		case domain.StageSummary:
			cmd = v.updateSummary(msg)
		case domain.StageCompleted:
			cmd = v.updateCompleted(msg)
		}

	default:
		if v.mode != modeNormal {
			_, cmd = v.editor.Update(msg)
		} else if v.workflow.State().Stage == domain.StageInitialInfo {
			_, cmd = v.fields[v.focus].Update(msg)
		}
	}

	v.refreshStatus()
	return v, cmd
}

// proceed runs ProceedToNextStage off the UI loop.
func (v *View) proceed() tea.Cmd {
	v.busy = true
	v.status.SetState(status.StateLoading)
	from := v.workflow.State().Stage
	wf, ctx := v.workflow, v.ctx
	return func() tea.Msg {
		return messages.StageAdvanced{From: from, Err: wf.ProceedToNextStage(ctx)}
	}
}

func (v *View) handleStageAdvanced(msg messages.StageAdvanced) tea.Cmd {
	v.busy = false
	v.status.SetState(status.StateReady)
	v.status.SetMessage("")

	state := v.workflow.State()
	if msg.Err != nil {
		v.status.SetError(domain.UserMessage(msg.Err))
	}

	switch state.Stage {
	case domain.StageInitialInfo:
		v.applyFieldErrors(state.FieldErrors)
		if state.FieldErrors.Any() {
			v.status.SetMessage("Fill in every field to continue.")
			return v.focusField(firstInvalid(state.FieldErrors))
		}
	case domain.StageChecklist:
		if msg.From == domain.StageInitialInfo {
			v.blurFields()
		}
		v.cursor = 0
	case domain.StageCompleted:
		if msg.From == domain.StageSummary {
			v.status.SetMessage("Inspection saved.")
		}
	}
	return nil
}

// changeView returns a command that emits a navigation message.
func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

func (v *View) refreshStatus() {
	state := v.workflow.State()
	switch state.Stage {
	case domain.StageInitialInfo:
		v.status.SetProgress("Header")
		v.status.SetHints(v.keymap.NextField, v.keymap.Next, v.keymap.Back)
	case domain.StageChecklist:
		total := len(state.Inspection.Items)
		v.status.SetProgress(fmt.Sprintf("Item %d/%d", state.CurrentItemIndex+1, total))
		if v.mode != modeNormal {
			v.status.SetHints(v.keymap.Select, v.keymap.Back)
		} else {
			v.status.SetHints(v.keymap.ChecklistHelp()...)
		}
	case domain.StageSummary:
		v.status.SetProgress("Summary")
		v.status.SetHints(v.keymap.Next, v.keymap.Back)
	case domain.StageCompleted:
		v.status.SetProgress("Completed")
		v.status.SetHints(v.keymap.Back, v.keymap.Quit)
	}
}

// View renders the stage the workflow is in.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	state := v.workflow.State()

	var b strings.Builder
	title := "New inspection"
	if state.IsPostInspection {
		title = "Post-intervention inspection"
	}
	b.WriteString(v.styles.Title.Render(title))
	if eq := state.Inspection.Equipment; eq != "" && state.Stage != domain.StageInitialInfo {
		b.WriteString("  " + v.styles.Subtitle.Render(eq))
	}
	b.WriteString("\n\n")

	switch state.Stage {
	case domain.StageInitialInfo:
		b.WriteString(v.renderHeader())
	case domain.StageChecklist:
		b.WriteString(v.renderChecklist(state))
	case domain.StageSummary:
		b.WriteString(v.renderSummary(state))
	case domain.StageCompleted:
		b.WriteString(v.renderCompleted(state))
	}

	b.WriteString("\n\n")
	b.WriteString(v.status.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width)
	}
	v.editor.SetWidth(width)
	v.status.SetWidth(width)
}

// Busy reports whether a workflow call is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Editing reports whether the comment or photo editor is open.
func (v *View) Editing() bool {
	return v.mode != modeNormal
}

// Cursor returns the selected question index within the current item.
func (v *View) Cursor() int {
	return v.cursor
}

// Status returns the status bar message.
func (v *View) Status() string {
	return v.status.Message()
}
