package domain

import "time"

// RecurrenceLimit caps the number of historical matches returned.
const RecurrenceLimit = 10

// RecurrenceQuery describes a non-conformity to look for in past inspections.
// Text fields match case-insensitively anywhere in the stored value.
type RecurrenceQuery struct {
	QuestionText        string
	ItemName            string
	Equipment           string
	ExcludeInspectionID string
}

// HistoricalQuestion is a past non-conforming answer similar to the current one.
type HistoricalQuestion struct {
	InspectionID   string
	InspectionDate time.Time
	Equipment      string
	Inspector      string
	ItemName       string
	QuestionID     string
	QuestionText   string
	Comment        string
}
