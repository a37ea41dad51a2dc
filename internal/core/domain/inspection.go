package domain

import (
	"time"

	"github.com/google/uuid"
)

// Inspection is a single equipment inspection and the checklist it owns.
type Inspection struct {
	// ID is assigned at creation and never changes.
	ID string

	// Equipment identifies the inspected machine (e.g., "CAEX 301").
	Equipment string

	// Inspector is the person performing the inspection.
	Inspector string

	// Supervisor is the person responsible for the inspection.
	Supervisor string

	// Horometer is the engine-hour reading entered by the inspector.
	Horometer string

	// Date is when the inspection was started.
	Date time.Time

	// Items are the checklist categories, in display order.
	Items []InspectionItem

	// IsCompleted flips to true once, when the workflow completes.
	IsCompleted bool
}

// NewInspection creates an empty inspection with a fresh ID dated now.
func NewInspection() Inspection {
	return Inspection{
		ID:   uuid.New().String(),
		Date: time.Now(),
	}
}

// WithItem returns a copy of the inspection with the item at index i replaced.
// The receiver is left untouched. Out-of-range indexes return an unchanged copy.
func (in Inspection) WithItem(i int, item InspectionItem) Inspection {
	items := make([]InspectionItem, len(in.Items))
	copy(items, in.Items)
	if i >= 0 && i < len(items) {
		items[i] = item
	}
	in.Items = items
	return in
}

// WithItems returns a copy of the inspection owning the given items.
func (in Inspection) WithItems(items []InspectionItem) Inspection {
	owned := make([]InspectionItem, len(items))
	copy(owned, items)
	in.Items = owned
	return in
}

// FindQuestion returns the indexes of the item and question with the given ID.
func (in Inspection) FindQuestion(questionID string) (itemIdx, questionIdx int, ok bool) {
	for i := range in.Items {
		if j := in.Items[i].questionIndex(questionID); j >= 0 {
			return i, j, true
		}
	}
	return -1, -1, false
}

// AnswerCounts summarises the answers of an inspection.
type AnswerCounts struct {
	Questions     int
	Answered      int
	Conforming    int
	NonConforming int
}

// Counts tallies questions and answers across all items.
func (in Inspection) Counts() AnswerCounts {
	var c AnswerCounts
	for i := range in.Items {
		for _, q := range in.Items[i].Questions {
			c.Questions++
			switch q.Answer.Conformity {
			case Conforming:
				c.Answered++
				c.Conforming++
			case NonConforming:
				c.Answered++
				c.NonConforming++
			}
		}
	}
	return c
}

// ConformityPercentage returns conforming answers over answered questions, times 100.
// An inspection without answers is 0%.
func ConformityPercentage(in Inspection) float64 {
	c := in.Counts()
	if c.Answered == 0 {
		return 0
	}
	return float64(c.Conforming) / float64(c.Answered) * 100
}

// InspectionItem is one checklist category, such as "Hydraulic System".
type InspectionItem struct {
	ID        string
	Name      string
	Questions []InspectionQuestion
}

// NewInspectionItem creates an item with a fresh ID.
func NewInspectionItem(name string, questions []InspectionQuestion) InspectionItem {
	return InspectionItem{
		ID:        uuid.New().String(),
		Name:      name,
		Questions: questions,
	}
}

// WithQuestion returns a copy of the item with the question of the same ID replaced.
// The second result is false when the item does not own that question.
func (it InspectionItem) WithQuestion(q InspectionQuestion) (InspectionItem, bool) {
	idx := it.questionIndex(q.ID)
	if idx < 0 {
		return it, false
	}
	questions := make([]InspectionQuestion, len(it.Questions))
	copy(questions, it.Questions)
	questions[idx] = q
	it.Questions = questions
	return it, true
}

// Question returns the question with the given ID.
func (it InspectionItem) Question(id string) (InspectionQuestion, bool) {
	if idx := it.questionIndex(id); idx >= 0 {
		return it.Questions[idx], true
	}
	return InspectionQuestion{}, false
}

// Complete reports whether every question is answered and every
// non-conforming answer carries a comment.
func (it InspectionItem) Complete() bool {
	for _, q := range it.Questions {
		if !q.Answer.Complete() {
			return false
		}
	}
	return true
}

func (it InspectionItem) questionIndex(id string) int {
	for i := range it.Questions {
		if it.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// InspectionQuestion is a single checklist question. Its zero Answer means unanswered.
type InspectionQuestion struct {
	ID     string
	Text   string
	Answer Answer
}

// NewInspectionQuestion creates an unanswered question with a fresh ID.
func NewInspectionQuestion(text string) InspectionQuestion {
	return InspectionQuestion{
		ID:   uuid.New().String(),
		Text: text,
	}
}

// WithAnswer returns a copy of the question holding the given answer.
func (q InspectionQuestion) WithAnswer(a Answer) InspectionQuestion {
	q.Answer = a
	return q
}

// Photo is evidence attached to an answer. URI points at external image storage.
type Photo struct {
	ID string

	// URI is the original capture and is never overwritten.
	URI string

	// HasDrawings is set once an annotated copy exists.
	HasDrawings bool

	// DrawingURI is the annotated copy, empty until annotation.
	DrawingURI string

	Timestamp time.Time
}

// NewPhoto creates a photo for the given image reference.
func NewPhoto(uri string) Photo {
	return Photo{
		ID:        uuid.New().String(),
		URI:       uri,
		Timestamp: time.Now(),
	}
}

// WithDrawing returns a copy of the photo pointing at an annotated image.
func (p Photo) WithDrawing(drawingURI string) Photo {
	p.HasDrawings = true
	p.DrawingURI = drawingURI
	return p
}

// InspectionSummary is the row-level view of a stored inspection.
type InspectionSummary struct {
	ID                   string
	Equipment            string
	Inspector            string
	Supervisor           string
	Horometer            string
	Date                 time.Time
	IsCompleted          bool
	ConformityPercentage float64
}

// InspectionFilter narrows ListInspections. Zero values match everything.
type InspectionFilter struct {
	// Equipment is matched case-insensitively as a substring.
	Equipment string

	// CompletedOnly skips inspections still in progress.
	CompletedOnly bool

	// Limit caps the number of rows; 0 means no limit.
	Limit int
}
