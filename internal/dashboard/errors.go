package dashboard

import (
	"errors"
	"fmt"

	"github.com/joblify/employer-console/internal/jobform"
	"github.com/joblify/employer-console/internal/workflow"
)

var (
	// ErrMissingJob is returned when a job view is entered without a job.
	ErrMissingJob = errors.New("a job must be selected")
	// ErrBusy is returned while a mutation for the same job is in flight.
	ErrBusy = errors.New("an operation on this job is already in progress")
	// ErrNotConfirmed is returned when the user declines a confirmation prompt.
	ErrNotConfirmed = workflow.ErrNotConfirmed
	// ErrNotEditing is returned when a profile update is saved outside edit mode.
	ErrNotEditing = errors.New("profile is not being edited")
)

// Error is a failed fetch or mutation. Message is suitable for display: the
// server's message when it sent one, or a generic fallback.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Message returns the display message of err.
func Message(err error) string {
	var (
		de *Error
		we *workflow.Error
		se *jobform.SubmitError
	)
	switch {
	case errors.As(err, &de):
		return de.Message
	case errors.As(err, &we):
		return we.Message
	case errors.As(err, &se):
		return se.Message
	default:
		return err.Error()
	}
}
