package workflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
)

// ApplicationService is the subset of the API client the board needs.
type ApplicationService interface {
	ListApplications(ctx context.Context, jobID string) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID string, status types.ApplicationStatus) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AlwaysConfirm answers yes to every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

const (
	loadFallback   = "Failed to load applications"
	updateFallback = "Failed to update application status"
)

// Board holds the applications received for one job.
type Board struct {
	svc    ApplicationService
	jobID  string
	logger *slog.Logger

	mu       sync.Mutex
	apps     []types.Application
	loaded   bool
	loadErr  error
	inFlight map[string]bool
}

// NewBoard creates a board for jobID. Nothing is fetched until Load is called.
func NewBoard(svc ApplicationService, jobID string, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		svc:      svc,
		jobID:    jobID,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// JobID returns the job whose applications are listed.
func (b *Board) JobID() string {
	return b.jobID
}

// Load fetches the applications. On failure the previous list is discarded and
// the error is kept for the error panel until the next Load.
func (b *Board) Load(ctx context.Context) error {
	apps, err := b.svc.ListApplications(ctx, b.jobID)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = true
	if err != nil {
		b.logger.Warn("failed to load applications", "job_id", b.jobID, "error", err)
		b.apps = nil
		b.loadErr = &Error{Message: api.MessageOr(err, loadFallback), Cause: err}
		return b.loadErr
	}
	b.apps = apps
	b.loadErr = nil
	return nil
}

// Retry reloads after a failed Load.
func (b *Board) Retry(ctx context.Context) error {
	return b.Load(ctx)
}

// LoadError returns the error of the last Load, if any.
func (b *Board) LoadError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Loaded reports whether Load has completed at least once.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Applications returns a copy of the current list.
func (b *Board) Applications() []types.Application {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.Application(nil), b.apps...)
}

// Get returns the application with the given id.
func (b *Board) Get(id string) (types.Application, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return types.Application{}, false
	}
	return b.apps[i], true
}

// Counts returns the number of applications per status.
func (b *Board) Counts() map[types.ApplicationStatus]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[types.ApplicationStatus]int)
	for _, a := range b.apps {
		counts[a.Status]++
	}
	return counts
}

// Busy reports whether a status update for id is in flight.
func (b *Board) Busy(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight[id]
}

// ActionsFor returns the actions offered for application id. An application with
// an update in flight offers none.
func (b *Board) ActionsFor(id string) []Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 || b.inFlight[id] {
		return nil
	}
	return Actions(b.apps[i].Status)
}

// Transition moves application id to status to after the user confirms.
//
// The update request is sent only when the transition is offered from the
// current status and confirm answers yes. On success the local status is
// replaced in place; on failure the list is left unchanged and the returned
// *Error carries the server message.
func (b *Board) Transition(ctx context.Context, id string, to types.ApplicationStatus, confirm Confirmer) error {
	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return ErrNotFound
	}
	from := b.apps[i].Status
	if IsTerminal(from) {
		b.mu.Unlock()
		return ErrTerminal
	}
	if !CanTransition(from, to) {
		b.mu.Unlock()
		return &TransitionError{From: from, To: to}
	}
	if b.inFlight[id] {
		b.mu.Unlock()
		return ErrBusy
	}
	b.inFlight[id] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inFlight, id)
		b.mu.Unlock()
	}()

	if confirm == nil || !confirm.Confirm(actions[to].Prompt) {
		return ErrNotConfirmed
	}

	if err := b.svc.UpdateApplicationStatus(ctx, id, to); err != nil {
		b.logger.Warn("failed to update application status", "application_id", id, "status", to, "error", err)
		return &Error{Message: api.MessageOr(err, updateFallback), Cause: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexLocked(id); i >= 0 {
		b.apps[i].Status = to
	}
	b.logger.Info("application status updated", "application_id", id, "from", from, "to", to)
	return nil
}

func (b *Board) indexLocked(id string) int {
	for i, a := range b.apps {
		if a.ID == id {
			return i
		}
	}
	return -1
}
