package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/joblify/employer-console/internal/jobform"
	"github.com/joblify/employer-console/internal/types"
)

// Action is a control offered on a screen, addressed as a request against the
// dashboard's own paths.
type Action struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Target  string `json:"target,omitempty"`
	Confirm string `json:"confirm,omitempty"`
}

// Screen is a rendered view: what to show and what can be done from it. Error is
// set when the view's data could not be loaded; the screen then offers retry.
type Screen struct {
	View    View       `json:"view"`
	Title   string     `json:"title"`
	Path    string     `json:"path"`
	Job     *types.Job `json:"job,omitempty"`
	Data    any        `json:"data,omitempty"`
	Actions []Action   `json:"actions"`
	Error   string     `json:"error,omitempty"`
}

// PostJobData is the content of the "Post a Job" view.
type PostJobData struct {
	Form         jobform.State       `json:"form"`
	PricingModes []types.PricingMode `json:"pricingModes"`
}

// JobRow is one row of the job list.
type JobRow struct {
	Job      types.Job `json:"job"`
	Deleting bool      `json:"deleting"`
	Actions  []Action  `json:"actions"`
}

// JobListData is the content of the "My Jobs" view.
type JobListData struct {
	Jobs []JobRow `json:"jobs"`
}

// JobDetailData is the content of the job detail view.
type JobDetailData struct {
	Mode             types.PricingMode `json:"pricingMode"`
	CompensationKeys []string          `json:"compensationKeys"`
	Deleting         bool              `json:"deleting"`
}

// ApplicationRow is one application with the status actions offered for it.
type ApplicationRow struct {
	Application types.Application `json:"application"`
	Busy        bool              `json:"busy"`
	Actions     []Action          `json:"actions"`
}

// ApplicationListData is the content of the application list view.
type ApplicationListData struct {
	Applications []ApplicationRow                `json:"applications"`
	Counts       map[types.ApplicationStatus]int `json:"counts"`
}

// ProfileData is the content of the profile view.
type ProfileData struct {
	Profile *types.Profile       `json:"profile,omitempty"`
	Editing bool                 `json:"editing"`
	Form    *types.ProfileUpdate `json:"form,omitempty"`
}

// Render loads the primary data of the active view and builds its screen.
func (d *Dashboard) Render(ctx context.Context) *Screen {
	route := d.router.Current()
	s := &Screen{View: route.View, Title: route.View.Title(), Path: route.Path()}

	var err error
	switch route.View {
	case ViewDashboard:
		err = d.renderHome(ctx, s)
	case ViewPostJob:
		err = d.renderPostJob(ctx, s)
	case ViewMyJobs:
		err = d.renderMyJobs(ctx, s)
	case ViewJobDetail:
		err = d.renderJobDetail(ctx, s)
	case ViewApplicationList:
		err = d.renderApplications(ctx, s)
	case ViewProfile:
		err = d.renderProfile(ctx, s)
	default:
		panic(fmt.Sprintf("dashboard: unhandled view %q", string(route.View)))
	}

	if err != nil {
		s.Error = Message(err)
		s.Data = nil
		s.Actions = []Action{{Name: "retry", Label: "Retry", Method: http.MethodGet, Path: s.Path}}
		if route.View != ViewDashboard {
			s.Actions = append(s.Actions, d.backAction(route))
		}
	}
	return s
}

func (d *Dashboard) backAction(route Route) Action {
	var to Route
	switch route.View {
	case ViewJobDetail:
		to = Route{View: ViewMyJobs}
	case ViewApplicationList:
		to = Route{View: ViewJobDetail, JobID: route.JobID}
	default:
		to = Route{View: ViewDashboard}
	}
	return Action{Name: "back", Label: "Back", Method: http.MethodGet, Path: to.Path()}
}

func nav(name, label string, r Route) Action {
	return Action{Name: name, Label: label, Method: http.MethodGet, Path: r.Path()}
}

func (d *Dashboard) renderHome(ctx context.Context, s *Screen) error {
	summary, err := LoadSummary(ctx, d.profile, d.jobs)
	if err != nil {
		return err
	}
	s.Data = summary
	s.Actions = []Action{
		nav("post-job", "Post a Job", Route{View: ViewPostJob}),
		nav("my-jobs", "My Jobs", Route{View: ViewMyJobs}),
		nav("profile", "Profile", Route{View: ViewProfile}),
	}
	return nil
}

func (d *Dashboard) renderPostJob(ctx context.Context, s *Screen) error {
	cats := d.post.Categories()
	if len(cats.Parents()) == 0 {
		// the form stays usable without categories
		_ = cats.LoadParents(ctx)
	}
	s.Data = PostJobData{Form: d.post.State(), PricingModes: types.PricingModes()}
	s.Actions = []Action{
		{Name: "submit", Label: "Post Job", Method: http.MethodPost, Path: s.Path},
		d.backAction(d.router.Current()),
	}
	return nil
}

func (d *Dashboard) renderMyJobs(ctx context.Context, s *Screen) error {
	if err := d.jobs.Load(ctx); err != nil {
		return err
	}
	jobs := d.jobs.Jobs()
	rows := make([]JobRow, 0, len(jobs))
	for _, j := range jobs {
		row := JobRow{Job: j, Deleting: d.jobs.Deleting(j.ID)}
		row.Actions = []Action{nav("view", "View", Route{View: ViewJobDetail, JobID: j.ID})}
		if !row.Deleting {
			row.Actions = append(row.Actions, Action{
				Name: "delete", Label: "Delete", Method: http.MethodDelete,
				Path: s.Path + "/" + url.PathEscape(j.ID), Target: j.ID, Confirm: deleteJobPrompt,
			})
		}
		rows = append(rows, row)
	}
	s.Data = JobListData{Jobs: rows}
	s.Actions = []Action{
		nav("post-job", "Post a Job", Route{View: ViewPostJob}),
		d.backAction(d.router.Current()),
	}
	return nil
}

func (d *Dashboard) renderJobDetail(_ context.Context, s *Screen) error {
	route := d.router.Current()
	if err := d.router.JobError(); err != nil {
		return err
	}
	job := d.router.Job()
	if job == nil || job.ID != route.JobID {
		return &Error{Message: loadJobFallback, Cause: ErrMissingJob}
	}
	s.Job = job
	deleting := d.jobs.Deleting(job.ID)
	s.Data = JobDetailData{Mode: job.Mode(), CompensationKeys: job.Compensation.Keys(), Deleting: deleting}
	s.Actions = []Action{
		{Name: "edit", Label: "Edit Job", Method: http.MethodPut, Path: s.Path, Target: job.ID},
		nav("applications", "View Applications", Route{View: ViewApplicationList, JobID: job.ID}),
	}
	if !deleting {
		s.Actions = append(s.Actions, Action{Name: "delete", Label: "Delete Job", Method: http.MethodDelete, Path: s.Path, Target: job.ID, Confirm: deleteJobPrompt})
	}
	s.Actions = append(s.Actions, d.backAction(route))
	return nil
}

func (d *Dashboard) renderApplications(ctx context.Context, s *Screen) error {
	route := d.router.Current()
	if err := d.router.JobError(); err != nil {
		return err
	}
	s.Job = d.router.Job()

	board := d.Board(route.JobID)
	if err := board.Load(ctx); err != nil {
		return err
	}
	apps := board.Applications()
	rows := make([]ApplicationRow, 0, len(apps))
	for _, a := range apps {
		row := ApplicationRow{Application: a, Busy: board.Busy(a.ID)}
		for _, wa := range board.ActionsFor(a.ID) {
			row.Actions = append(row.Actions, Action{
				Name:    string(wa.Target),
				Label:   wa.Label,
				Method:  http.MethodPut,
				Path:    s.Path + "/" + url.PathEscape(a.ID) + "/status",
				Target:  string(wa.Target),
				Confirm: wa.Prompt,
			})
		}
		rows = append(rows, row)
	}
	s.Data = ApplicationListData{Applications: rows, Counts: board.Counts()}
	s.Actions = []Action{d.backAction(route)}
	return nil
}

func (d *Dashboard) renderProfile(ctx context.Context, s *Screen) error {
	if d.profile.Profile() == nil || d.profile.LoadError() != nil {
		if err := d.profile.Load(ctx); err != nil {
			return err
		}
	}
	data := ProfileData{Profile: d.profile.Profile(), Editing: d.profile.Editing()}
	if data.Editing {
		form := d.profile.Edit()
		data.Form = &form
	}
	s.Data = data
	s.Actions = []Action{
		{Name: "update", Label: "Save Profile", Method: http.MethodPut, Path: s.Path},
		d.backAction(d.router.Current()),
	}
	return nil
}
