package jobform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	created   []*types.JobPayload
	updated   map[string]*types.JobPayload
	job       *types.Job
	createErr error
	updateErr error
}

func (w *fakeWriter) CreateJob(_ context.Context, p *types.JobPayload) (*types.Job, error) {
	w.created = append(w.created, p)
	if w.createErr != nil {
		return nil, w.createErr
	}
	return w.job, nil
}

func (w *fakeWriter) UpdateJob(_ context.Context, id string, p *types.JobPayload) (*types.Job, error) {
	if w.updated == nil {
		w.updated = make(map[string]*types.JobPayload)
	}
	w.updated[id] = p
	if w.updateErr != nil {
		return nil, w.updateErr
	}
	return w.job, nil
}

type fakeCategories struct {
	err error
}

func (f *fakeCategories) ParentCategories(context.Context) ([]types.Category, error) {
	return []types.Category{{ID: "eng", Name: "Engineering"}}, nil
}

func (f *fakeCategories) Subcategories(_ context.Context, parentID string) ([]types.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []types.Category{{ID: "backend", Name: "Backend", ParentID: types.EntityRef(parentID)}}, nil
}

func newForm(t *testing.T, w *fakeWriter) *Controller {
	t.Helper()
	c := NewController(w, &fakeCategories{}, nil)
	ctx := context.Background()
	require.NoError(t, c.UpdateField(ctx, "title", "  Go developer "))
	require.NoError(t, c.UpdateField(ctx, "description", "Build APIs"))
	require.NoError(t, c.UpdateField(ctx, "requirements.0", "3 years of Go"))
	return c
}

func marshal(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestPayload_HourlyScenario(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	ctx := context.Background()
	require.NoError(t, c.UpdateField(ctx, "pricingType", "hourly"))
	require.NoError(t, c.UpdateField(ctx, "compensation.hourly.hourlyRate", "25"))
	require.NoError(t, c.UpdateField(ctx, "compensation.hourly.estimatedHours", ""))

	p, err := c.Payload()
	require.NoError(t, err)

	body := marshal(t, p)
	assert.Equal(t, map[string]any{"hourly": map[string]any{"hourlyRate": 25.0}}, body["compensation"])
	assert.Equal(t, "hourly", body["pricingType"])
	assert.Equal(t, "Go developer", body["title"])
	assert.Equal(t, 1.0, body["vacancies"])
	assert.NotContains(t, body, "workArrangement")
}

func TestPayload_OnlyActiveModeIsSent(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	ctx := context.Background()
	require.NoError(t, c.UpdateField(ctx, "compensation.hourly.hourlyRate", "40"))
	require.NoError(t, c.UpdateField(ctx, "compensation.project.projectBudget", "9000"))
	require.NoError(t, c.UpdateField(ctx, "workArrangement", "project"))

	p, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, []string{"project"}, p.Compensation.Keys())
	assert.Equal(t, types.PricingProject, p.WorkArrangement)
	assert.Empty(t, p.PricingType)

	require.NoError(t, c.SetMode(types.PricingHourly))
	p, err = c.Payload()
	require.NoError(t, err)
	assert.Equal(t, []string{"hourly"}, p.Compensation.Keys())
}

func TestPayload_RequirementsAreTrimmedAndFiltered(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	c.AddRequirement()
	c.AddRequirement()
	require.NoError(t, c.UpdateRequirement(1, "   "))
	require.NoError(t, c.UpdateRequirement(2, "  Docker "))

	p, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, []string{"3 years of Go", "Docker"}, p.Requirements)
	assert.Len(t, c.Requirements(), 3)
}

func TestSubmit_NoRequirementsRejectedBeforeRequest(t *testing.T) {
	w := &fakeWriter{}
	c := newForm(t, w)
	require.NoError(t, c.UpdateRequirement(0, "  "))

	_, err := c.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("requirements"))
	assert.Empty(t, w.created)
}

func TestRemoveRequirement_KeepsOneSlot(t *testing.T) {
	c := NewController(&fakeWriter{}, &fakeCategories{}, nil)
	require.NoError(t, c.UpdateRequirement(0, "only"))
	require.NoError(t, c.RemoveRequirement(0))
	assert.Equal(t, []string{""}, c.Requirements())
	assert.Error(t, c.RemoveRequirement(3))
	assert.Error(t, c.UpdateRequirement(-1, "x"))
}

func TestUpdateField_UnknownNameIsSentVerbatim(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	require.NoError(t, c.UpdateField(context.Background(), "benefits", "Health insurance"))
	require.NoError(t, c.UpdateField(context.Background(), "title.extra", "kept"))

	p, err := c.Payload()
	require.NoError(t, err)
	body := marshal(t, p)
	assert.Equal(t, "Health insurance", body["benefits"])
	assert.Equal(t, "kept", body["title.extra"])
	assert.Equal(t, "Go developer", body["title"])
}

func TestUpdateField_Errors(t *testing.T) {
	c := NewController(&fakeWriter{}, &fakeCategories{}, nil)
	ctx := context.Background()

	assert.Error(t, c.UpdateField(ctx, "compensation.hourly", "1"))
	assert.Error(t, c.UpdateField(ctx, "compensation.salary.amount", "1"))
	assert.Error(t, c.UpdateField(ctx, "experience.seniority", "x"))
	assert.Error(t, c.UpdateField(ctx, "requirements.x", "x"))
	assert.Error(t, c.UpdateField(ctx, "pricingType", "yearly"))
}

func TestPayload_ValidationProblems(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "missing title", field: "title", value: " ", want: "title"},
		{name: "bad job type", field: "jobType", value: "office", want: "jobType"},
		{name: "zero vacancies", field: "vacancies", value: "0", want: "vacancies"},
		{name: "non numeric vacancies", field: "vacancies", value: "two", want: "vacancies"},
		{name: "negative experience", field: "experience.minYears", value: "-2", want: "experience.minYears"},
		{name: "bad status", field: "status", value: "archived", want: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newForm(t, &fakeWriter{})
			require.NoError(t, c.UpdateField(context.Background(), tt.field, tt.value))

			_, err := c.Payload()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.want), verr.Error())
		})
	}
}

func TestPayload_ExperienceAndSkills(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	ctx := context.Background()
	require.NoError(t, c.UpdateField(ctx, "experience.level", "senior"))
	require.NoError(t, c.UpdateField(ctx, "experience.minYears", "5"))
	require.NoError(t, c.AddSkill("Go", types.SkillAdvanced))
	require.NoError(t, c.AddSkill("go", types.SkillExpert))
	require.NoError(t, c.AddSkill("SQL", ""))
	assert.Error(t, c.AddSkill("Rust", "guru"))
	assert.Error(t, c.AddSkill(" ", types.SkillBeginner))
	c.RemoveSkill("sql")

	p, err := c.Payload()
	require.NoError(t, err)
	require.NotNil(t, p.Experience)
	assert.Equal(t, "senior", p.Experience.Level)
	assert.Equal(t, 5.0, *p.Experience.MinYears)
	assert.Nil(t, p.Experience.MaxYears)
	assert.Equal(t, []types.SkillRequirement{{Skill: "Go", Level: types.SkillExpert}}, p.SkillsRequired)
}

func TestPayload_Categories(t *testing.T) {
	ctx := context.Background()

	c := newForm(t, &fakeWriter{})
	require.NoError(t, c.UpdateField(ctx, "parentCategory", "eng"))
	p, err := c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "eng", p.ParentCategory)
	assert.Equal(t, "eng", p.Category)

	require.NoError(t, c.UpdateField(ctx, "category", "backend"))
	p, err = c.Payload()
	require.NoError(t, err)
	assert.Equal(t, "backend", p.Category)

	assert.Error(t, c.UpdateField(ctx, "category", "frontend"))
}

func TestPayload_SubcategoryFetchFailureStillSubmits(t *testing.T) {
	ctx := context.Background()
	w := &fakeWriter{job: &types.Job{ID: "j1"}}
	c := NewController(w, &fakeCategories{err: errors.New("offline")}, nil)
	require.NoError(t, c.UpdateField(ctx, "title", "Designer"))
	require.NoError(t, c.UpdateField(ctx, "description", "Design"))
	require.NoError(t, c.UpdateField(ctx, "requirements.0", "Figma"))

	assert.Error(t, c.UpdateField(ctx, "parentCategory", "eng"))

	_, err := c.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, w.created, 1)
	assert.Equal(t, "eng", w.created[0].ParentCategory)
}

func TestSubmit_CreateResetsAndSignalsCompletion(t *testing.T) {
	w := &fakeWriter{job: &types.Job{ID: "new-job", Title: "Go developer"}}
	c := newForm(t, w)

	var completed *types.Job
	c.OnComplete(func(j *types.Job) { completed = j })

	job, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-job", job.ID)
	assert.Equal(t, job, completed)
	require.Len(t, w.created, 1)

	state := c.State()
	assert.Empty(t, state.Title)
	assert.Equal(t, []string{""}, state.Requirements)
	assert.Nil(t, c.Editing())
}

func TestSubmit_FailureKeepsFormAndSurfacesServerMessage(t *testing.T) {
	w := &fakeWriter{createErr: &api.Error{Status: http.StatusBadRequest, Message: "Title already used"}}
	c := newForm(t, w)

	_, err := c.Submit(context.Background())
	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Title already used", serr.Message)
	assert.Equal(t, "  Go developer ", c.State().Title)

	// resubmission after correction
	w.createErr = nil
	w.job = &types.Job{ID: "j2"}
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, w.created, 2)
}

func TestSubmit_FallbackMessages(t *testing.T) {
	w := &fakeWriter{createErr: errors.New("dial tcp: refused"), updateErr: errors.New("timeout")}

	c := newForm(t, w)
	_, err := c.Submit(context.Background())
	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Failed to post job", serr.Message)

	c.LoadJob(context.Background(), &types.Job{ID: "j1", Title: "t", Description: "d", Requirements: types.Requirements{"r"}})
	_, err = c.Submit(context.Background())
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Failed to update job", serr.Message)
}

func TestLoadJob_EditAndUpdateCache(t *testing.T) {
	rate := 30.0
	budget := 1200.0
	job := &types.Job{
		ID:             "j1",
		Title:          "Backend engineer",
		Description:    "APIs",
		Requirements:   types.Requirements{"Go", "Postgres"},
		Category:       "backend",
		ParentCategory: "eng",
		JobType:        types.JobTypeHybrid,
		PricingType:    types.PricingFixedPrice,
		Compensation: &types.Compensation{
			Hourly:     &types.HourlyCompensation{HourlyRate: &rate},
			FixedPrice: &types.FixedPriceCompensation{TotalBudget: &budget},
		},
		Vacancies: 3,
		Status:    types.JobStatusPaused,
	}

	w := &fakeWriter{}
	c := NewController(w, &fakeCategories{}, nil)
	c.LoadJob(context.Background(), job)

	state := c.State()
	assert.Equal(t, "j1", state.EditingID)
	assert.Equal(t, types.PricingFixedPrice, state.Mode)
	assert.Equal(t, "backend", state.Category)
	assert.Equal(t, "3", state.Vacancies)
	assert.Equal(t, []string{"Go", "Postgres"}, state.Requirements)

	require.NoError(t, c.UpdateField(context.Background(), "title", "Senior backend engineer"))

	saved, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Contains(t, w.updated, "j1")

	sent := w.updated["j1"]
	assert.Equal(t, []string{"fixedPrice"}, sent.Compensation.Keys())
	assert.Equal(t, "backend", sent.Category)

	// server returned no job: the cache is rebuilt from the payload
	assert.Equal(t, "Senior backend engineer", saved.Title)
	assert.Equal(t, "Senior backend engineer", c.Editing().Title)
	assert.Equal(t, "j1", c.State().EditingID)
}

func TestSubmit_InFlightGuard(t *testing.T) {
	c := newForm(t, &fakeWriter{})
	c.mu.Lock()
	c.submitting = true
	c.mu.Unlock()

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)
}
