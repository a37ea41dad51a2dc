package domain

import (
	"strings"
	"time"
)

// Conformity is the verdict held by an Answer.
type Conformity int

const (
	// Unanswered is the zero verdict: the question has no answer yet.
	Unanswered Conformity = iota

	// Conforming means the inspected element is in order.
	Conforming

	// NonConforming means a defect was found. A comment is required
	// before the owning item can be completed.
	NonConforming
)

// String returns the verdict name.
func (c Conformity) String() string {
	switch c {
	case Conforming:
		return "conforming"
	case NonConforming:
		return "non-conforming"
	default:
		return "unanswered"
	}
}

// Answer is the response to an InspectionQuestion.
// Answers are replaced wholesale on every update, never patched in place.
type Answer struct {
	Conformity Conformity
	Comment    string
	Photos     []Photo
	Timestamp  time.Time
}

// NewConformingAnswer creates a conforming answer stamped now.
func NewConformingAnswer(comment string, photos []Photo) Answer {
	return Answer{
		Conformity: Conforming,
		Comment:    comment,
		Photos:     photos,
		Timestamp:  time.Now(),
	}
}

// NewNonConformingAnswer creates a non-conforming answer stamped now.
// The comment may be blank while the inspector is still typing.
func NewNonConformingAnswer(comment string, photos []Photo) Answer {
	return Answer{
		Conformity: NonConforming,
		Comment:    comment,
		Photos:     photos,
		Timestamp:  time.Now(),
	}
}

// IsAnswered reports whether a verdict has been given.
func (a Answer) IsAnswered() bool {
	return a.Conformity != Unanswered
}

// IsConform reports whether the answer is conforming.
func (a Answer) IsConform() bool {
	return a.Conformity == Conforming
}

// Complete reports whether the answer satisfies the item completion rule.
func (a Answer) Complete() bool {
	switch a.Conformity {
	case Conforming:
		return true
	case NonConforming:
		return strings.TrimSpace(a.Comment) != ""
	default:
		return false
	}
}

// WithPhotos returns a copy of the answer owning the given photos.
func (a Answer) WithPhotos(photos []Photo) Answer {
	owned := make([]Photo, len(photos))
	copy(owned, photos)
	a.Photos = owned
	return a
}
