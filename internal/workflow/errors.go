package workflow

import (
	"errors"
	"fmt"

	"github.com/joblify/employer-console/internal/types"
)

var (
	// ErrTerminal is returned for a transition out of a terminal status.
	ErrTerminal = errors.New("application is in a terminal status")
	// ErrNotConfirmed is returned when the user declines the confirmation prompt.
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrBusy is returned while another update for the same application is in flight.
	ErrBusy = errors.New("an update for this application is already in progress")
	// ErrNotFound is returned for an application id that is not on the board.
	ErrNotFound = errors.New("application not found")
)

// TransitionError describes a transition that is not offered from the current status.
type TransitionError struct {
	From types.ApplicationStatus
	To   types.ApplicationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move application from %s to %s", e.From, e.To)
}

// Error represents a failed load or update. Message is suitable for display.
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
