package dashboard

import (
	"context"
	"sync"

	"github.com/joblify/employer-console/internal/types"
)

// fakeAPI is an in-memory Service.
type fakeAPI struct {
	mu sync.Mutex

	jobs         []types.Job
	applications map[string][]types.Application
	profile      *types.Profile

	getJobCalls []string
	deleted     []string
	created     []*types.JobPayload
	updated     map[string]*types.JobPayload
	statuses    map[string]types.ApplicationStatus

	getJobErr    error
	listErr      error
	deleteErr    error
	profileErr   error
	updateErr    error
	statusErr    error
	createdJobID string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		jobs: []types.Job{
			{ID: "abc123", Title: "Go developer", Status: types.JobStatusActive, Requirements: types.Requirements{"Go"}, Description: "APIs"},
			{ID: "def456", Title: "Designer", Status: types.JobStatusPaused, Requirements: types.Requirements{"Figma"}, Description: "UI"},
		},
		applications: map[string][]types.Application{
			"abc123": {
				{ID: "app1", Status: types.StatusApplied, Applicant: types.Applicant{Name: "Ada"}},
				{ID: "app2", Status: types.StatusHired, Applicant: types.Applicant{Name: "Linus"}},
			},
		},
		profile:  &types.Profile{ID: "u1", Name: "Acme HR", Email: "hr@acme.test", Profile: types.CompanyProfile{CompanyName: "Acme"}},
		updated:  make(map[string]*types.JobPayload),
		statuses: make(map[string]types.ApplicationStatus),
	}
}

func (f *fakeAPI) GetJob(_ context.Context, id string) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getJobCalls = append(f.getJobCalls, id)
	if f.getJobErr != nil {
		return nil, f.getJobErr
	}
	for _, j := range f.jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, &notFoundError{}
}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

func (f *fakeAPI) ListMyJobs(context.Context) ([]types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Job(nil), f.jobs...), nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for i, j := range f.jobs {
		if j.ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) GetProfile(context.Context) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, u *types.ProfileUpdate) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.profile.Name = u.Name
	f.profile.Profile = u.Profile
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) ListApplications(_ context.Context, jobID string) ([]types.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Application(nil), f.applications[jobID]...), nil
}

func (f *fakeAPI) UpdateApplicationStatus(_ context.Context, id string, status types.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeAPI) CreateJob(_ context.Context, p *types.JobPayload) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.createdJobID == "" {
		return nil, nil
	}
	job := types.Job{ID: f.createdJobID, Title: p.Title, Description: p.Description, Requirements: p.Requirements, Status: p.Status}
	f.jobs = append(f.jobs, job)
	return &job, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, id string, p *types.JobPayload) (*types.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = p
	return nil, nil
}

func (f *fakeAPI) ParentCategories(context.Context) ([]types.Category, error) {
	return []types.Category{{ID: "eng", Name: "Engineering"}}, nil
}

func (f *fakeAPI) Subcategories(context.Context, string) ([]types.Category, error) {
	return []types.Category{{ID: "backend", Name: "Backend", ParentID: "eng"}}, nil
}

func (f *fakeAPI) jobFetches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.getJobCalls...)
}
