// Package report converts inspections into the JSON documents exported by the
// CLI and the MCP server.
package report

import (
	"time"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

// Inspection is the exported form of a full inspection graph.
type Inspection struct {
	ID                   string    `json:"id"`
	Equipment            string    `json:"equipment"`
	Inspector            string    `json:"inspector"`
	Supervisor           string    `json:"supervisor"`
	Horometer            string    `json:"horometer"`
	Date                 time.Time `json:"date"`
	IsCompleted          bool      `json:"is_completed"`
	ConformityPercentage float64   `json:"conformity_percentage"`
	Counts               Counts    `json:"counts"`
	Items                []Item    `json:"items"`
}

// Counts summarises the answers of an inspection.
type Counts struct {
	Questions     int `json:"questions"`
	Answered      int `json:"answered"`
	Conforming    int `json:"conforming"`
	NonConforming int `json:"non_conforming"`
}

// Item is one checklist section.
type Item struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Question is one checklist question with its answer, if any.
type Question struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Answer *Answer `json:"answer,omitempty"`
}

// Answer is the verdict given to a question.
type Answer struct {
	// Conformity is "conforming" or "non_conforming".
	Conformity string    `json:"conformity"`
	Comment    string    `json:"comment,omitempty"`
	Photos     []Photo   `json:"photos,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Photo references an image attached to an answer.
type Photo struct {
	ID          string    `json:"id"`
	URI         string    `json:"uri"`
	HasDrawings bool      `json:"has_drawings"`
	DrawingURI  string    `json:"drawing_uri,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Summary is one row of an inspection listing.
type Summary struct {
	ID                   string    `json:"id"`
	Equipment            string    `json:"equipment"`
	Inspector            string    `json:"inspector"`
	Supervisor           string    `json:"supervisor"`
	Horometer            string    `json:"horometer"`
	Date                 time.Time `json:"date"`
	IsCompleted          bool      `json:"is_completed"`
	ConformityPercentage float64   `json:"conformity_percentage"`
}

// Historical is a past non-conformity returned by a recurrence lookup.
type Historical struct {
	InspectionID   string    `json:"inspection_id"`
	InspectionDate time.Time `json:"inspection_date"`
	Equipment      string    `json:"equipment"`
	Inspector      string    `json:"inspector"`
	ItemName       string    `json:"item_name"`
	QuestionID     string    `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	Comment        string    `json:"comment"`
}

// FromInspection builds the exported document for an inspection.
func FromInspection(in domain.Inspection) Inspection {
	c := in.Counts()
	out := Inspection{
		ID:                   in.ID,
		Equipment:            in.Equipment,
		Inspector:            in.Inspector,
		Supervisor:           in.Supervisor,
		Horometer:            in.Horometer,
		Date:                 in.Date,
		IsCompleted:          in.IsCompleted,
		ConformityPercentage: domain.ConformityPercentage(in),
		Counts: Counts{
			Questions:     c.Questions,
			Answered:      c.Answered,
			Conforming:    c.Conforming,
			NonConforming: c.NonConforming,
		},
		Items: make([]Item, 0, len(in.Items)),
	}

	for _, it := range in.Items {
		item := Item{ID: it.ID, Name: it.Name, Questions: make([]Question, 0, len(it.Questions))}
		for _, q := range it.Questions {
			item.Questions = append(item.Questions, Question{
				ID:     q.ID,
				Text:   q.Text,
				Answer: fromAnswer(q.Answer),
			})
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func fromAnswer(a domain.Answer) *Answer {
	var conformity string
	switch a.Conformity {
	case domain.Conforming:
		conformity = "conforming"
	case domain.NonConforming:
		conformity = "non_conforming"
	default:
		return nil
	}

	out := &Answer{Conformity: conformity, Comment: a.Comment, Timestamp: a.Timestamp}
	for _, p := range a.Photos {
		out.Photos = append(out.Photos, Photo{
			ID:          p.ID,
			URI:         p.URI,
			HasDrawings: p.HasDrawings,
			DrawingURI:  p.DrawingURI,
			Timestamp:   p.Timestamp,
		})
	}
	return out
}

// FromSummaries converts listing rows.
func FromSummaries(summaries []domain.InspectionSummary) []Summary {
	out := make([]Summary, len(summaries))
	for i, s := range summaries {
		out[i] = Summary{
			ID:                   s.ID,
			Equipment:            s.Equipment,
			Inspector:            s.Inspector,
			Supervisor:           s.Supervisor,
			Horometer:            s.Horometer,
			Date:                 s.Date,
			IsCompleted:          s.IsCompleted,
			ConformityPercentage: s.ConformityPercentage,
		}
	}
	return out
}

// FromHistorical converts recurrence matches.
func FromHistorical(matches []domain.HistoricalQuestion) []Historical {
	out := make([]Historical, len(matches))
	for i, m := range matches {
		out[i] = Historical{
			InspectionID:   m.InspectionID,
			InspectionDate: m.InspectionDate,
			Equipment:      m.Equipment,
			Inspector:      m.Inspector,
			ItemName:       m.ItemName,
			QuestionID:     m.QuestionID,
			QuestionText:   m.QuestionText,
			Comment:        m.Comment,
		}
	}
	return out
}
