package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

func (v *View) currentItem() (domain.InspectionItem, bool) {
	state := v.workflow.State()
	items := state.Inspection.Items
	if state.CurrentItemIndex < 0 || state.CurrentItemIndex >= len(items) {
		return domain.InspectionItem{}, false
	}
	return items[state.CurrentItemIndex], true
}

func (v *View) selectedQuestion() (domain.InspectionQuestion, bool) {
	item, ok := v.currentItem()
	if !ok || v.cursor < 0 || v.cursor >= len(item.Questions) {
		return domain.InspectionQuestion{}, false
	}
	return item.Questions[v.cursor], true
}

func (v *View) updateChecklist(msg tea.KeyMsg) tea.Cmd {
	if v.mode != modeNormal {
		return v.updateEditor(msg)
	}

	item, ok := v.currentItem()
	if !ok {
		return nil
	}
	q, hasQuestion := v.selectedQuestion()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}

	case "down", "j":
		if v.cursor < len(item.Questions)-1 {
			v.cursor++
		}

	case "y":
		if hasQuestion {
			v.workflow.UpdateQuestionAnswer(q.ID, domain.NewConformingAnswer(q.Answer.Comment, nil))
		}

	case "n":
		if !hasQuestion {
			return nil
		}
		v.workflow.UpdateQuestionAnswer(q.ID, domain.NewNonConformingAnswer(q.Answer.Comment, nil))
		cmds := []tea.Cmd{v.findRecurrence(q.ID)}
		if strings.TrimSpace(q.Answer.Comment) == "" {
			cmds = append(cmds, v.openEditor(modeComment, ""))
		}
		return tea.Batch(cmds...)

	case "c":
		if hasQuestion && q.Answer.IsAnswered() {
			return v.openEditor(modeComment, q.Answer.Comment)
		}
		v.status.SetMessage("Answer the question before commenting.")

	case "p":
		if hasQuestion && q.Answer.IsAnswered() {
			return v.openEditor(modePhoto, "")
		}
		v.status.SetMessage("Answer the question before adding photos.")

	case "x":
		if hasQuestion && len(q.Answer.Photos) > 0 {
			last := q.Answer.Photos[len(q.Answer.Photos)-1]
			v.workflow.RemovePhotoFromQuestion(q.ID, last.ID)
		}

	case "enter":
		if v.workflow.CanAdvanceItem() {
			return v.proceed()
		}
		v.status.SetMessage("Answer every question. Non-conformities need a comment.")

	case "esc":
		v.workflow.GoBack()
		v.cursor = 0
		v.status.SetMessage("")
		if v.workflow.State().Stage == domain.StageInitialInfo {
			return v.focusField(fieldEquipment)
		}
	}
	return nil
}

// findRecurrence looks up past defects for the question in the background.
func (v *View) findRecurrence(questionID string) tea.Cmd {
	wf, ctx := v.workflow, v.ctx
	return func() tea.Msg {
		matches, err := wf.SimilarNonConformities(ctx, questionID)
		return messages.RecurrenceFound{QuestionID: questionID, Matches: matches, Err: err}
	}
}

func (v *View) openEditor(mode editMode, value string) tea.Cmd {
	v.mode = mode
	v.editor.Reset()
	v.editor.SetValue(value)
	v.status.SetMessage("")
	return v.editor.Focus()
}

func (v *View) closeEditor() {
	v.mode = modeNormal
	v.editor.Blur()
	v.editor.Reset()
}

func (v *View) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.closeEditor()
		return nil
	case "enter":
		v.commitEditor()
		return nil
	}
	_, cmd := v.editor.Update(msg)
	return cmd
}

func (v *View) commitEditor() {
	mode := v.mode
	value := strings.TrimSpace(v.editor.Value())
	v.closeEditor()

	q, ok := v.selectedQuestion()
	if !ok {
		return
	}

	switch mode {
	case modeComment:
		answer := q.Answer
		answer.Comment = value
		v.workflow.UpdateQuestionAnswer(q.ID, answer)
	case modePhoto:
		if value == "" {
			return
		}
		uri, err := photoURI(value)
		if err != nil {
			v.status.SetError(err.Error())
			return
		}
		v.workflow.AddPhotoToQuestion(q.ID, domain.Photo{URI: uri})
	}
}

// photoURI turns a local path into a file:// URI. Values that already carry a
// scheme are kept as they are.
func photoURI(value string) (string, error) {
	if strings.Contains(value, "://") {
		return value, nil
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("photo path %q: %w", value, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("photo %s not found", abs)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func (v *View) renderChecklist(state driving.WorkflowState) string {
	item, ok := v.currentItem()
	if !ok {
		return v.styles.Muted.Render("No checklist loaded")
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%d. %s", state.CurrentItemIndex+1, item.Name)))
	b.WriteString("\n\n")

	for i, q := range item.Questions {
		b.WriteString(v.renderQuestion(i, q))
		b.WriteString("\n")
	}

	if q, ok := v.selectedQuestion(); ok {
		if matches := v.recurrence[q.ID]; len(matches) > 0 && q.Answer.Conformity == domain.NonConforming {
			b.WriteString("\n")
			b.WriteString(v.renderRecurrence(matches))
		}
	}

	if v.mode != modeNormal {
		label := "Comment"
		if v.mode == modePhoto {
			label = "Photo path"
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(label))
		b.WriteString("\n")
		b.WriteString(v.editor.View())
	}

	return b.String()
}

func (v *View) renderQuestion(index int, q domain.InspectionQuestion) string {
	cursor := "  "
	if index == v.cursor {
		cursor = "> "
	}

	var mark string
	switch q.Answer.Conformity {
	case domain.Conforming:
		mark = v.styles.Success.Render("[ok]")
	case domain.NonConforming:
		mark = v.styles.Error.Render("[NC]")
	default:
		mark = v.styles.Muted.Render("[  ]")
	}

	text := q.Text
	if index == v.cursor {
		text = v.styles.Selected.Render(text)
	} else {
		text = v.styles.Normal.Render(text)
	}

	line := cursor + mark + " " + text
	if badge := v.findingBadge(q.ID); badge != "" {
		line += " " + badge
	}

	var extra []string
	if q.Answer.Comment != "" {
		extra = append(extra, "comment: "+q.Answer.Comment)
	}
	if n := len(q.Answer.Photos); n > 0 {
		extra = append(extra, fmt.Sprintf("%d photo(s)", n))
	}
	if q.Answer.Conformity == domain.NonConforming && strings.TrimSpace(q.Answer.Comment) == "" {
		extra = append(extra, v.styles.Error.Render("comment required"))
	}
	if len(extra) > 0 {
		line += "\n       " + v.styles.Muted.Render(strings.Join(extra, " | "))
	}
	return line
}

// findingBadge marks defects carried over from the control inspection and
// defects first seen after the intervention.
func (v *View) findingBadge(questionID string) string {
	ft, ok := v.workflow.FindingType(questionID)
	if !ok {
		return ""
	}
	theme := v.styles.Theme()
	switch ft {
	case domain.FindingRepeated:
		return v.styles.BadgeIn(theme.Warning, "REPEATED")
	case domain.FindingPostIntervention:
		return v.styles.BadgeIn(theme.Error, "NEW")
	}
	return ""
}

func (v *View) renderRecurrence(matches []domain.HistoricalQuestion) string {
	var b strings.Builder
	b.WriteString(v.styles.Warning.Render(
		fmt.Sprintf("Seen before on this equipment (%d time(s))", len(matches))))
	for i, m := range matches {
		if i == 3 {
			b.WriteString("\n  " + v.styles.Muted.Render(fmt.Sprintf("... and %d more", len(matches)-3)))
			break
		}
		line := fmt.Sprintf("%s  %s", m.InspectionDate.Format("2006-01-02"), m.Inspector)
		if m.Comment != "" {
			line += ": " + m.Comment
		}
		b.WriteString("\n  " + v.styles.Muted.Render(line))
	}
	return b.String()
}
