package subject

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when an operation is given an empty subject ID.
var ErrEmptyID = errors.New("subject id must not be empty")

// ErrNotFound indicates that no record exists for a subject.
type ErrNotFound struct {
	ID ID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("subject %q not found", string(e.ID))
}

// ErrTargetNotFound is returned when a peer assessment targets an unregistered subject.
type ErrTargetNotFound struct {
	Target ID
}

func (e *ErrTargetNotFound) Error() string {
	return fmt.Sprintf("cannot assess %q: subject has no self-assessment yet", string(e.Target))
}

// ErrSelfAssessmentRejected is returned when an assessor submits a peer
// assessment about themselves. Self-assessments go through UpsertOwn.
type ErrSelfAssessmentRejected struct {
	ID ID
}

func (e *ErrSelfAssessmentRejected) Error() string {
	return fmt.Sprintf("subject %q cannot contribute a peer assessment to themselves", string(e.ID))
}

// ErrDuplicateID is returned by Add when a record with the same ID exists.
type ErrDuplicateID struct {
	ID ID
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate subject id %q", string(e.ID))
}
