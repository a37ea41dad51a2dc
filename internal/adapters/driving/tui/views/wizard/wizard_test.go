package wizard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/null"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/services"
)

type staticChecklist struct{}

func (staticChecklist) Load(context.Context) (domain.ChecklistTemplate, error) {
	return domain.ChecklistTemplate{Sections: []domain.ChecklistSection{
		{Name: "Cabina", Questions: []string{"Cinturón de seguridad", "Extintor"}},
		{Name: "Motor", Questions: []string{"Nivel de aceite"}},
	}}, nil
}

func (staticChecklist) Path() string { return "static" }

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newTestView(t *testing.T) (*View, *services.Workflow, *memory.InspectionStore) {
	t.Helper()
	store := memory.NewInspectionStore()
	wf := services.NewWorkflow(services.NewInspectionService(store), staticChecklist{})
	v := NewView(nil, nil, wf)
	v.SetDimensions(100, 40)
	v.Init()
	return v, wf, store
}

// advance runs a proceed command and feeds its result back into the view.
func advance(t *testing.T, v *View, cmd tea.Cmd) messages.StageAdvanced {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.StageAdvanced)
	require.True(t, ok, "expected a StageAdvanced message")
	v.Update(msg)
	return msg
}

// fillHeader types all four header fields and submits the form.
func fillHeader(t *testing.T, v *View) {
	t.Helper()
	for i, value := range []string{"CAEX 301", "J. Perez", "M. Soto", "12500"} {
		typeText(v, value)
		if i < 3 {
			v.Update(keyTab)
		}
	}
	_, cmd := v.Update(keyEnter)
	advance(t, v, cmd)
}

func answerItemConforming(t *testing.T, v *View, wf *services.Workflow) {
	t.Helper()
	st := wf.State()
	for i := range st.Inspection.Items[st.CurrentItemIndex].Questions {
		v.cursor = i
		v.Update(runes("y"))
	}
}

func TestView_Init_FocusesEquipment(t *testing.T) {
	v, _, _ := newTestView(t)

	assert.True(t, v.fields[fieldEquipment].Focused())
	assert.False(t, v.fields[fieldInspector].Focused())
	assert.Contains(t, v.View(), "New inspection")
	assert.Contains(t, v.View(), "Equipment")
}

func TestView_Header_TypingUpdatesWorkflow(t *testing.T) {
	v, wf, _ := newTestView(t)

	typeText(v, "CAEX 301")

	assert.Equal(t, "CAEX 301", wf.State().Inspection.Equipment)
}

func TestView_Header_FieldNavigation(t *testing.T) {
	v, _, _ := newTestView(t)

	v.Update(keyTab)
	assert.Equal(t, fieldInspector, v.focus)
	v.Update(keyDown)
	assert.Equal(t, fieldSupervisor, v.focus)
	v.Update(keyShiftTab)
	v.Update(keyShiftTab)
	assert.Equal(t, fieldEquipment, v.focus)
	v.Update(keyShiftTab)
	assert.Equal(t, fieldHorometer, v.focus, "wraps to the last field")

	_, cmd := v.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, v.Busy(), "enter on the last field submits")
}

func TestView_Header_EnterMovesToNextField(t *testing.T) {
	v, _, _ := newTestView(t)

	v.Update(keyEnter)

	assert.Equal(t, fieldInspector, v.focus)
	assert.False(t, v.Busy())
}

func TestView_Header_Validation(t *testing.T) {
	v, wf, _ := newTestView(t)
	typeText(v, "CAEX 301")
	v.focusField(fieldHorometer)

	_, cmd := v.Update(keyEnter)
	advance(t, v, cmd)

	assert.Equal(t, domain.StageInitialInfo, wf.State().Stage)
	assert.False(t, v.fields[fieldEquipment].Invalid())
	assert.True(t, v.fields[fieldInspector].Invalid())
	assert.True(t, v.fields[fieldSupervisor].Invalid())
	assert.True(t, v.fields[fieldHorometer].Invalid())
	assert.Equal(t, fieldInspector, v.focus, "focus jumps to the first invalid field")
	assert.Contains(t, v.Status(), "Fill in every field")
	assert.Contains(t, v.View(), "required")

	typeText(v, "J")
	assert.False(t, v.fields[fieldInspector].Invalid())
	assert.True(t, v.fields[fieldSupervisor].Invalid())
}

func TestView_Header_EscGoesToMenu(t *testing.T) {
	v, _, _ := newTestView(t)

	_, cmd := v.Update(keyEsc)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_KeysIgnoredWhileBusy(t *testing.T) {
	v, _, _ := newTestView(t)
	v.focusField(fieldHorometer)
	v.Update(keyEnter)
	require.True(t, v.Busy())

	v.Update(keyTab)

	assert.Equal(t, fieldHorometer, v.focus)
}

func TestView_FullRun(t *testing.T) {
	v, wf, store := newTestView(t)

	fillHeader(t, v)
	require.Equal(t, domain.StageChecklist, wf.State().Stage)
	assert.False(t, v.fields[fieldHorometer].Focused())
	assert.Contains(t, v.View(), "Cabina")
	assert.Contains(t, v.View(), "Item 1/2")

	answerItemConforming(t, v, wf)
	_, cmd := v.Update(keyEnter)
	advance(t, v, cmd)
	assert.Equal(t, 1, wf.State().CurrentItemIndex)
	assert.Equal(t, 0, v.Cursor())
	assert.Contains(t, v.View(), "Motor")

	answerItemConforming(t, v, wf)
	_, cmd = v.Update(keyEnter)
	advance(t, v, cmd)
	require.Equal(t, domain.StageSummary, wf.State().Stage)
	out := v.View()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "Conforming: 3")

	_, cmd = v.Update(keyEnter)
	advance(t, v, cmd)
	assert.Equal(t, domain.StageCompleted, wf.State().Stage)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Inspection saved.", v.Status())
	assert.Contains(t, v.View(), "Inspection completed")
}

func TestView_Checklist_EnterBlockedWhenIncomplete(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("y"))
	_, cmd := v.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, domain.StageChecklist, wf.State().Stage)
	assert.Contains(t, v.Status(), "Answer every question")
}

func TestView_Checklist_CursorBounds(t *testing.T) {
	v, _, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("k"))
	assert.Equal(t, 0, v.Cursor())
	v.Update(runes("j"))
	v.Update(runes("j"))
	assert.Equal(t, 1, v.Cursor())
}

func TestView_Checklist_NonConformingOpensCommentEditor(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)

	_, cmd := v.Update(runes("n"))

	require.NotNil(t, cmd)
	assert.True(t, v.Editing())
	assert.Contains(t, v.View(), "Comment")

	typeText(v, "Cinta cortada")
	v.Update(keyEnter)

	assert.False(t, v.Editing())
	q := wf.State().Inspection.Items[0].Questions[0]
	assert.Equal(t, domain.NonConforming, q.Answer.Conformity)
	assert.Equal(t, "Cinta cortada", q.Answer.Comment)
	assert.Contains(t, v.View(), "comment: Cinta cortada")
}

func TestView_Checklist_NonConformingWithoutComment(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("n"))
	v.Update(keyEsc)
	v.cursor = 1
	v.Update(runes("y"))

	assert.False(t, wf.CanAdvanceItem())
	assert.Contains(t, v.View(), "comment required")
}

func TestView_Checklist_CommentRequiresAnswer(t *testing.T) {
	v, _, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("c"))

	assert.False(t, v.Editing())
	assert.Contains(t, v.Status(), "Answer the question")
}

func TestView_Checklist_EditorEscCancels(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)
	v.Update(runes("y"))

	v.Update(runes("c"))
	typeText(v, "discarded")
	v.Update(keyEsc)

	assert.False(t, v.Editing())
	assert.Empty(t, wf.State().Inspection.Items[0].Questions[0].Answer.Comment)
	assert.Equal(t, domain.StageChecklist, wf.State().Stage)
}

func TestView_Checklist_AddAndRemovePhoto(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)
	path := filepath.Join(t.TempDir(), "cab.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))

	v.Update(runes("y"))
	v.Update(runes("p"))
	require.True(t, v.Editing())
	typeText(v, path)
	v.Update(keyEnter)

	photos := wf.State().Inspection.Items[0].Questions[0].Answer.Photos
	require.Len(t, photos, 1)
	assert.True(t, strings.HasPrefix(photos[0].URI, "file://"))
	assert.NotEmpty(t, photos[0].ID)
	assert.Contains(t, v.View(), "1 photo(s)")

	v.Update(runes("x"))
	assert.Empty(t, wf.State().Inspection.Items[0].Questions[0].Answer.Photos)
}

func TestView_Checklist_AddMissingPhoto(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("y"))
	v.Update(runes("p"))
	typeText(v, filepath.Join(t.TempDir(), "missing.jpg"))
	v.Update(keyEnter)

	assert.Empty(t, wf.State().Inspection.Items[0].Questions[0].Answer.Photos)
	assert.Contains(t, v.Status(), "not found")
}

func TestView_Checklist_PhotoRequiresAnswer(t *testing.T) {
	v, _, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(runes("p"))

	assert.False(t, v.Editing())
}

func TestView_Checklist_EscFromFirstItemReturnsToHeader(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)

	v.Update(keyEsc)

	assert.Equal(t, domain.StageInitialInfo, wf.State().Stage)
	assert.True(t, v.fields[fieldEquipment].Focused())
	assert.Equal(t, "CAEX 301", v.fields[fieldEquipment].Value())
}

func TestView_Checklist_RecurrenceWarning(t *testing.T) {
	v, wf, store := newTestView(t)
	past := domain.NewInspection()
	past.Equipment = "CAEX 301"
	past.Inspector = "Ana"
	past.IsCompleted = true
	past.Items = []domain.InspectionItem{domain.NewInspectionItem("Cabina", []domain.InspectionQuestion{
		domain.NewInspectionQuestion("Extintor").WithAnswer(domain.NewNonConformingAnswer("Vencido", nil)),
	})}
	require.NoError(t, store.SaveInspection(context.Background(), past))

	fillHeader(t, v)
	v.Update(keyDown)
	v.Update(runes("n"))
	v.Update(keyEsc)

	qid := wf.State().Inspection.Items[0].Questions[1].ID
	msg := v.findRecurrence(qid)()
	found, ok := msg.(messages.RecurrenceFound)
	require.True(t, ok)
	require.NoError(t, found.Err)
	require.Len(t, found.Matches, 1)
	v.Update(found)

	out := v.View()
	assert.Contains(t, out, "Seen before on this equipment (1 time(s))")
	assert.Contains(t, out, "Vencido")
}

func TestView_Summary_SaveFailure(t *testing.T) {
	store := null.NewInspectionStore(errors.New("disk missing"))
	wf := services.NewWorkflow(services.NewInspectionService(store), staticChecklist{})
	v := NewView(nil, nil, wf)
	v.SetDimensions(100, 40)
	v.Init()

	fillHeader(t, v)
	for range 2 {
		answerItemConforming(t, v, wf)
		_, cmd := v.Update(keyEnter)
		advance(t, v, cmd)
	}
	require.Equal(t, domain.StageSummary, wf.State().Stage)

	_, cmd := v.Update(keyEnter)
	msg := advance(t, v, cmd)

	assert.ErrorIs(t, msg.Err, domain.ErrStorageUnavailable)
	assert.Equal(t, domain.StageSummary, wf.State().Stage)
	assert.Contains(t, v.Status(), "Storage is unavailable")
	assert.False(t, v.Busy())
}

func TestView_Summary_EscReturnsToLastItem(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)
	for range 2 {
		answerItemConforming(t, v, wf)
		_, cmd := v.Update(keyEnter)
		advance(t, v, cmd)
	}

	v.Update(keyEsc)

	assert.Equal(t, domain.StageChecklist, wf.State().Stage)
	assert.Equal(t, 1, wf.State().CurrentItemIndex)
}

func TestView_Completed_NewInspection(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)
	for range 3 {
		answerItemConforming(t, v, wf)
		_, cmd := v.Update(keyEnter)
		advance(t, v, cmd)
	}
	require.Equal(t, domain.StageCompleted, wf.State().Stage)

	v.Update(runes("n"))

	assert.Equal(t, domain.StageInitialInfo, wf.State().Stage)
	assert.Empty(t, v.fields[fieldEquipment].Value())
	assert.True(t, v.fields[fieldEquipment].Focused())
}

func TestView_Completed_Quit(t *testing.T) {
	v, wf, _ := newTestView(t)
	fillHeader(t, v)
	for range 3 {
		answerItemConforming(t, v, wf)
		_, cmd := v.Update(keyEnter)
		advance(t, v, cmd)
	}

	_, cmd := v.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_PostInspection(t *testing.T) {
	v, wf, store := newTestView(t)
	control := domain.NewInspection()
	control.Equipment = "CAEX 301"
	control.Inspector = "Ana"
	control.IsCompleted = true
	control.Items = []domain.InspectionItem{domain.NewInspectionItem("Motor", []domain.InspectionQuestion{
		domain.NewInspectionQuestion("Nivel de aceite").WithAnswer(domain.NewConformingAnswer("", nil)),
		domain.NewInspectionQuestion("Fugas").WithAnswer(domain.NewNonConformingAnswer("Fuga en retén", nil)),
	})}
	require.NoError(t, store.SaveInspection(context.Background(), control))

	require.NoError(t, wf.InitializePostInspection(context.Background(), control.ID))
	v.Reset()

	assert.Equal(t, "CAEX 301", v.fields[fieldEquipment].Value())
	assert.True(t, v.fields[fieldInspector].Focused(), "equipment is already known")
	assert.Contains(t, v.View(), "Post-intervention inspection")

	for i, value := range []string{"Luis", "M. Soto", "12600"} {
		typeText(v, value)
		if i < 2 {
			v.Update(keyTab)
		}
	}
	_, cmd := v.Update(keyEnter)
	advance(t, v, cmd)
	require.Equal(t, domain.StageChecklist, wf.State().Stage)
	assert.Contains(t, v.View(), "REPEATED")
	assert.NotContains(t, v.View(), "NEW")

	v.Update(runes("n"))
	v.Update(keyEsc)
	assert.Contains(t, v.View(), "NEW")
}

func TestPhotoURI(t *testing.T) {
	uri, err := photoURI("content://media/42")
	require.NoError(t, err)
	assert.Equal(t, "content://media/42", uri)

	_, err = photoURI(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestView_SetContext(t *testing.T) {
	v, _, _ := newTestView(t)
	type key string
	ctx := context.WithValue(context.Background(), key("k"), "v")

	v.SetContext(ctx)

	assert.Equal(t, ctx, v.ctx)
}
