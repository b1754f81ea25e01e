package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/joblify/employer-console/internal/auth"
	"github.com/joblify/employer-console/internal/category"
	"github.com/joblify/employer-console/internal/jobform"
	"github.com/joblify/employer-console/internal/types"
	"github.com/joblify/employer-console/internal/workflow"
)

// Service is everything the dashboard needs from the API. *api.Client satisfies it.
type Service interface {
	JobFetcher
	JobService
	ProfileService
	workflow.ApplicationService
	jobform.JobWriter
	category.Fetcher
}

// Dashboard holds the router and the state of every page for one signed-in
// employer.
type Dashboard struct {
	svc    Service
	logger *slog.Logger

	router  *Router
	jobs    *JobList
	profile *ProfilePage
	post    *jobform.Controller

	mu     sync.Mutex
	boards map[string]*workflow.Board
}

// sessionHolder is implemented by services that carry the caller's session,
// such as *api.Client.
type sessionHolder interface {
	Auth() auth.Context
}

// New creates a dashboard on the home view. Nothing is fetched until a view is
// rendered. When svc carries a session whose token names a user, "My Jobs"
// shows only that employer's jobs; an unreadable token shows them all.
func New(svc Service, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{
		svc:     svc,
		logger:  logger,
		router:  NewRouter(svc, logger),
		jobs:    NewJobList(svc, logger),
		profile: NewProfilePage(svc, logger),
		post:    jobform.NewController(svc, svc, logger),
		boards:  make(map[string]*workflow.Board),
	}
	if sh, ok := svc.(sessionHolder); ok && sh.Auth() != nil {
		if id, ok := auth.DecodeIdentity(sh.Auth().Token(), logger); ok {
			d.jobs.SetOwner(id.UserID)
		}
	}
	d.post.OnComplete(func(job *types.Job) {
		d.jobs.Add(*job)
		_ = d.router.Navigate(ViewMyJobs, nil)
	})
	return d
}

// Router returns the view router.
func (d *Dashboard) Router() *Router { return d.router }

// Jobs returns the job list page.
func (d *Dashboard) Jobs() *JobList { return d.jobs }

// Profile returns the profile page.
func (d *Dashboard) Profile() *ProfilePage { return d.profile }

// PostForm returns the create form of the "Post a Job" view.
func (d *Dashboard) PostForm() *jobform.Controller { return d.post }

// Board returns the application board of jobID, creating it on first use.
func (d *Dashboard) Board(jobID string) *workflow.Board {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.boards[jobID]
	if !ok {
		b = workflow.NewBoard(d.svc, jobID, d.logger)
		d.boards[jobID] = b
	}
	return b
}

// Open navigates to path and renders the resulting screen.
func (d *Dashboard) Open(ctx context.Context, path string) (*Screen, error) {
	if _, err := d.router.Open(ctx, path); errors.Is(err, ErrUnknownPath) {
		return nil, err
	}
	return d.Render(ctx), nil
}

// Navigate enters view, carrying job for job views, and renders it.
func (d *Dashboard) Navigate(ctx context.Context, view View, job *types.Job) (*Screen, error) {
	if err := d.router.Navigate(view, job); err != nil {
		return nil, err
	}
	return d.Render(ctx), nil
}

// Retry fetches the data of the active view again after a failed load and
// renders it. Lists and the profile reload on every render; a job that failed
// to load is fetched again.
func (d *Dashboard) Retry(ctx context.Context) *Screen {
	if d.router.JobError() != nil {
		// a repeated failure is shown by the error panel
		_ = d.router.Reload(ctx)
	}
	return d.Render(ctx)
}

// Back leaves the active view and renders the one it returns to.
func (d *Dashboard) Back(ctx context.Context) *Screen {
	d.router.Back()
	return d.Render(ctx)
}

// SelectJob enters the details of a listed job without refetching it.
func (d *Dashboard) SelectJob(ctx context.Context, id string) (*Screen, error) {
	if job, ok := d.jobs.Find(id); ok {
		return d.Navigate(ctx, ViewJobDetail, job)
	}
	return d.Open(ctx, Route{View: ViewJobDetail, JobID: id}.Path())
}

// JobInput carries a job form submission: field values by name (dotted paths
// allowed) and, when set, the full requirement and skill lists.
type JobInput struct {
	Fields       map[string]string        `json:"fields"`
	Requirements []string                 `json:"requirements,omitempty"`
	Skills       []types.SkillRequirement `json:"skillsRequired,omitempty"`
}

// fieldOrder applies parent before category and the pricing mode before its
// values, so dependent fields land on the right selection.
var fieldOrder = map[string]int{
	"parentCategory":  0,
	"category":        1,
	"pricingType":     2,
	"workArrangement": 2,
}

// Apply writes in into form. Category fetch failures are logged by the
// resolver and do not stop the remaining fields.
func (in *JobInput) Apply(ctx context.Context, form *jobform.Controller) error {
	names := make([]string, 0, len(in.Fields))
	for name := range in.Fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := fieldOrder[names[i]]
		rj, jok := fieldOrder[names[j]]
		if !iok {
			ri = len(fieldOrder)
		}
		if !jok {
			rj = len(fieldOrder)
		}
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	if in.Requirements != nil {
		form.SetRequirements(in.Requirements)
	}
	if in.Skills != nil {
		if err := form.SetSkills(in.Skills); err != nil {
			return err
		}
	}
	for _, name := range names {
		err := form.UpdateField(ctx, name, in.Fields[name])
		if err != nil && name != "parentCategory" {
			return err
		}
	}
	return nil
}

// PostJob fills the create form with in and submits it. On success the job is
// added to the list and the router moves to "My Jobs"; on failure the form keeps
// its values.
func (d *Dashboard) PostJob(ctx context.Context, in *JobInput) (*types.Job, error) {
	if err := in.Apply(ctx, d.post); err != nil {
		return nil, err
	}
	return d.post.Submit(ctx)
}

// EditJob loads job jobID into an edit form, applies in and submits it. The
// router and the job list receive the saved job.
func (d *Dashboard) EditJob(ctx context.Context, jobID string, in *JobInput) (*types.Job, error) {
	job, err := d.jobInContext(ctx, jobID)
	if err != nil {
		return nil, err
	}

	form := jobform.NewController(d.svc, d.svc, d.logger)
	form.LoadJob(ctx, job)
	form.OnComplete(func(saved *types.Job) {
		d.router.SetJob(saved)
		d.jobs.Replace(*saved)
	})
	if err := in.Apply(ctx, form); err != nil {
		return nil, err
	}
	return form.Submit(ctx)
}

// DeleteJob deletes job id after confirmation. When the deleted job is in
// context the router returns to "My Jobs".
func (d *Dashboard) DeleteJob(ctx context.Context, id string, confirm workflow.Confirmer) error {
	if err := d.jobs.Delete(ctx, id, confirm); err != nil {
		return err
	}
	if job := d.router.Job(); job != nil && job.ID == id {
		d.router.SetJob(nil)
		_ = d.router.Navigate(ViewMyJobs, nil)
	}
	return nil
}

// TransitionApplication changes the status of one application of jobID.
func (d *Dashboard) TransitionApplication(ctx context.Context, jobID, applicationID string, to types.ApplicationStatus, confirm workflow.Confirmer) error {
	board := d.Board(jobID)
	if !board.Loaded() || board.LoadError() != nil {
		if err := board.Load(ctx); err != nil {
			return err
		}
	}
	return board.Transition(ctx, applicationID, to, confirm)
}

// UpdateProfile saves update and leaves edit mode.
func (d *Dashboard) UpdateProfile(ctx context.Context, update *types.ProfileUpdate) error {
	if !d.profile.Editing() {
		d.profile.Edit()
	}
	return d.profile.Save(ctx, update)
}

func (d *Dashboard) jobInContext(ctx context.Context, jobID string) (*types.Job, error) {
	if job := d.router.Job(); job != nil && job.ID == jobID {
		return job, nil
	}
	if job, ok := d.jobs.Find(jobID); ok {
		return job, nil
	}
	if _, err := d.router.Open(ctx, Route{View: ViewJobDetail, JobID: jobID}.Path()); err != nil {
		return nil, err
	}
	return d.router.Job(), nil
}
