package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
)

func (v *View) updateSummary(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return v.proceed()
	case "esc":
		v.workflow.GoBack()
		v.cursor = 0
		v.status.SetState(status.StateReady)
		v.status.SetMessage("")
	}
	return nil
}

func (v *View) updateCompleted(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "n":
		v.workflow.ResetInspection()
		return v.Reset()
	case "esc":
		v.workflow.GoBack()
		v.status.SetMessage("")
	case "q":
		return tea.Quit
	}
	return nil
}

func (v *View) renderSummary(state driving.WorkflowState) string {
	in := state.Inspection
	counts := in.Counts()

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Summary"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Equipment:  %s\nInspector:  %s\nSupervisor: %s\nHorometer:  %s\n\n",
		in.Equipment, in.Inspector, in.Supervisor, in.Horometer))
	b.WriteString(fmt.Sprintf("Questions: %d  Conforming: %d  Non-conforming: %d\n",
		counts.Questions, counts.Conforming, counts.NonConforming))
	b.WriteString("Conformity: " + v.styles.Percentage(v.workflow.ConformityPercentage()))
	b.WriteString("\n")

	if findings := v.renderFindings(in); findings != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Non-conformities"))
		b.WriteString("\n")
		b.WriteString(findings)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] save  [esc] back"))
	return b.String()
}

func (v *View) renderFindings(in domain.Inspection) string {
	var lines []string
	for _, item := range in.Items {
		for _, q := range item.Questions {
			if q.Answer.Conformity != domain.NonConforming {
				continue
			}
			line := fmt.Sprintf("- %s / %s: %s", item.Name, q.Text, q.Answer.Comment)
			if badge := v.findingBadge(q.ID); badge != "" {
				line += " " + badge
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderCompleted(state driving.WorkflowState) string {
	var b strings.Builder
	b.WriteString(v.styles.Success.Render("Inspection completed"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s inspected by %s, conformity %s\n",
		state.Inspection.Equipment, state.Inspection.Inspector,
		v.styles.Percentage(v.workflow.ConformityPercentage())))
	b.WriteString(v.styles.Muted.Render("ID " + state.Inspection.ID))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[n] new inspection  [esc] back  [q] quit"))
	return b.String()
}
