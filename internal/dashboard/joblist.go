package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
	"github.com/joblify/employer-console/internal/workflow"
)

const (
	loadJobsFallback  = "Failed to load jobs"
	deleteJobFallback = "Failed to delete job"

	deleteJobPrompt = "Are you sure you want to delete this job posting?"
)

// JobService lists and deletes the employer's jobs.
type JobService interface {
	ListMyJobs(ctx context.Context) ([]types.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// JobList is the state of the "My Jobs" view.
type JobList struct {
	svc    JobService
	logger *slog.Logger

	mu       sync.Mutex
	owner    string
	jobs     []types.Job
	loaded   bool
	loadErr  error
	deleting map[string]bool
}

// NewJobList creates an empty, unloaded list.
func NewJobList(svc JobService, logger *slog.Logger) *JobList {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobList{svc: svc, logger: logger, deleting: make(map[string]bool)}
}

// SetOwner limits the list to jobs posted by the employer with the given user
// id. Jobs whose employer is not reported are kept. An empty id shows every job.
func (l *JobList) SetOwner(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owner = userID
}

// Load fetches the jobs. A failure empties the list and is kept for the error
// panel until the next Load.
func (l *JobList) Load(ctx context.Context) error {
	jobs, err := l.svc.ListMyJobs(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = true
	if err != nil {
		l.logger.Warn("failed to load jobs", "error", err)
		l.jobs = nil
		l.loadErr = &Error{Message: api.MessageOr(err, loadJobsFallback), Cause: err}
		return l.loadErr
	}
	l.jobs = ownedBy(jobs, l.owner)
	l.loadErr = nil
	return nil
}

func ownedBy(jobs []types.Job, owner string) []types.Job {
	if owner == "" {
		return jobs
	}
	out := jobs[:0:0]
	for _, j := range jobs {
		if j.Employer == "" || j.Employer.String() == owner {
			out = append(out, j)
		}
	}
	return out
}

// Retry reloads after a failed Load.
func (l *JobList) Retry(ctx context.Context) error {
	return l.Load(ctx)
}

// Loaded reports whether Load has completed at least once.
func (l *JobList) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// LoadError returns the error of the last Load, if any.
func (l *JobList) LoadError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// Jobs returns a copy of the list.
func (l *JobList) Jobs() []types.Job {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.Job(nil), l.jobs...)
}

// Find returns the job with the given id.
func (l *JobList) Find(id string) (*types.Job, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(id); i >= 0 {
		j := l.jobs[i]
		return &j, true
	}
	return nil, false
}

// Deleting reports whether a delete of id is in flight.
func (l *JobList) Deleting(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleting[id]
}

// Add puts a newly posted job at the head of the list.
func (l *JobList) Add(job types.Job) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexLocked(job.ID) >= 0 {
		return
	}
	l.jobs = append([]types.Job{job}, l.jobs...)
}

// Replace swaps in an updated copy of a listed job.
func (l *JobList) Replace(job types.Job) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(job.ID); i >= 0 {
		l.jobs[i] = job
	}
}

// Delete removes job id after the user confirms. The job leaves the list only
// once the server has deleted it; a failed delete keeps it and returns the
// server's message.
func (l *JobList) Delete(ctx context.Context, id string, confirm workflow.Confirmer) error {
	l.mu.Lock()
	if l.deleting[id] {
		l.mu.Unlock()
		return ErrBusy
	}
	l.deleting[id] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.deleting, id)
		l.mu.Unlock()
	}()

	if confirm == nil || !confirm.Confirm(deleteJobPrompt) {
		return ErrNotConfirmed
	}

	if err := l.svc.DeleteJob(ctx, id); err != nil {
		l.logger.Warn("failed to delete job", "job_id", id, "error", err)
		return &Error{Message: api.MessageOr(err, deleteJobFallback), Cause: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(id); i >= 0 {
		l.jobs = append(l.jobs[:i], l.jobs[i+1:]...)
	}
	l.logger.Info("job deleted", "job_id", id)
	return nil
}

// StatusCounts returns the number of jobs per publication status.
func (l *JobList) StatusCounts() map[types.JobStatus]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[types.JobStatus]int)
	for _, j := range l.jobs {
		counts[j.Status]++
	}
	return counts
}

func (l *JobList) indexLocked(id string) int {
	for i := range l.jobs {
		if l.jobs[i].ID == id {
			return i
		}
	}
	return -1
}
