package domain

// ChecklistTemplate is the fixed list of categories and questions loaded
// into every new inspection.
type ChecklistTemplate struct {
	Sections []ChecklistSection `toml:"sections"`
}

// ChecklistSection is one category of the template.
type ChecklistSection struct {
	Name      string   `toml:"name"`
	Questions []string `toml:"questions"`
}

// NewItems instantiates the template with fresh IDs and unanswered questions.
func (t ChecklistTemplate) NewItems() []InspectionItem {
	items := make([]InspectionItem, 0, len(t.Sections))
	for _, s := range t.Sections {
		questions := make([]InspectionQuestion, 0, len(s.Questions))
		for _, text := range s.Questions {
			questions = append(questions, NewInspectionQuestion(text))
		}
		items = append(items, NewInspectionItem(s.Name, questions))
	}
	return items
}

// QuestionCount returns the number of questions across all sections.
func (t ChecklistTemplate) QuestionCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Questions)
	}
	return n
}
