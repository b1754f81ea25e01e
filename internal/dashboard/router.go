package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
)

const loadJobFallback = "Failed to load job"

// JobFetcher loads a single job by id.
type JobFetcher interface {
	GetJob(ctx context.Context, id string) (*types.Job, error)
}

// Router tracks the active view and the job it carries.
//
// Views that show a job keep the job as context. When a path names a job that
// is not in context, as on a direct link or a reload, the job is fetched before
// the view is entered.
type Router struct {
	jobs   JobFetcher
	logger *slog.Logger

	mu      sync.Mutex
	current Route
	job     *types.Job
	jobErr  error
}

// NewRouter returns a router on the dashboard home view.
func NewRouter(jobs JobFetcher, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{jobs: jobs, logger: logger, current: Route{View: ViewDashboard}}
}

// Current returns the active route.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Path returns the client path of the active route.
func (r *Router) Path() string {
	return r.Current().Path()
}

// Job returns the job in context, or nil.
func (r *Router) Job() *types.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.job
}

// JobError returns the error of the last failed job fetch for the active route.
func (r *Router) JobError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobErr
}

// Navigate enters view. Job views require job; other views keep the current
// job in context so that returning to it needs no fetch.
func (r *Router) Navigate(view View, job *types.Job) error {
	if view.NeedsJob() && job == nil {
		return ErrMissingJob
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	route := Route{View: view}
	if job != nil {
		r.job = job
	}
	if view.NeedsJob() {
		route.JobID = job.ID
	}
	r.current = route
	r.jobErr = nil
	r.logger.Debug("navigate", "path", route.Path())
	return nil
}

// SetJob replaces the job in context, as after an edit.
func (r *Router) SetJob(job *types.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.job = job
}

// Back leaves the active view: job details return to the job list, the
// application list returns to the details of the same job, and every other view
// returns home.
func (r *Router) Back() Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.current.View {
	case ViewJobDetail:
		r.current = Route{View: ViewMyJobs}
	case ViewApplicationList:
		r.current = Route{View: ViewJobDetail, JobID: r.current.JobID}
	case ViewDashboard, ViewPostJob, ViewMyJobs, ViewProfile:
		r.current = Route{View: ViewDashboard}
	default:
		panic("dashboard: unhandled view " + string(r.current.View))
	}
	r.jobErr = nil
	return r.current
}

// Open derives the active view from path. If the view needs a job that is not
// in context it is fetched first; a failed fetch still enters the view, without
// a job, and the error is returned for the error panel.
func (r *Router) Open(ctx context.Context, path string) (Route, error) {
	route, err := ParsePath(path)
	if err != nil {
		return Route{}, err
	}

	r.mu.Lock()
	r.current = route
	r.jobErr = nil
	cached := r.job
	r.mu.Unlock()

	if !route.View.NeedsJob() || (cached != nil && cached.ID == route.JobID) {
		return route, nil
	}
	return route, r.fetchJob(ctx, route)
}

// Reload fetches the job of the active route again, discarding the cached copy.
func (r *Router) Reload(ctx context.Context) error {
	route := r.Current()
	if !route.View.NeedsJob() {
		return nil
	}
	return r.fetchJob(ctx, route)
}

func (r *Router) fetchJob(ctx context.Context, route Route) error {
	job, err := r.jobs.GetJob(ctx, route.JobID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != route {
		// navigated away while the fetch was outstanding
		return nil
	}
	if err != nil {
		r.logger.Warn("failed to load job", "job_id", route.JobID, "error", err)
		r.job = nil
		r.jobErr = &Error{Message: api.MessageOr(err, loadJobFallback), Cause: err}
		return r.jobErr
	}
	r.jobErr = nil
	r.job = job
	return nil
}
