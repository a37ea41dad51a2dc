package domain

// Stage is a step of the inspection wizard. Stages only move forward one at a time.
type Stage int

const (
	// StageInitialInfo collects equipment, inspector, supervisor and horometer.
	StageInitialInfo Stage = iota

	// StageChecklist walks the checklist one item at a time.
	StageChecklist

	// StageSummary shows the results before completion.
	StageSummary

	// StageCompleted is terminal: the inspection has been saved.
	StageCompleted
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInitialInfo:
		return "initial-info"
	case StageChecklist:
		return "checklist"
	case StageSummary:
		return "summary"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// FieldErrors flags blank required header fields.
type FieldErrors struct {
	Equipment  bool
	Inspector  bool
	Supervisor bool
	Horometer  bool
}

// Any reports whether at least one field is flagged.
func (f FieldErrors) Any() bool {
	return f.Equipment || f.Inspector || f.Supervisor || f.Horometer
}

// FindingType records where a non-conformity in a post-intervention inspection came from.
type FindingType string

const (
	// FindingRepeated marks a question already non-conforming in the control inspection.
	FindingRepeated FindingType = "REPEATED"

	// FindingPostIntervention marks a defect first found after the intervention.
	FindingPostIntervention FindingType = "POST_INTERVENTION"
)
