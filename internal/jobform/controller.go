// Package jobform aggregates the job posting form into one validated payload and
// submits it to the API.
package jobform

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/category"
	"github.com/joblify/employer-console/internal/compensation"
	"github.com/joblify/employer-console/internal/schemas"
	"github.com/joblify/employer-console/internal/types"
)

const (
	createFallback = "Failed to post job"
	updateFallback = "Failed to update job"
)

// JobWriter creates and updates jobs.
type JobWriter interface {
	CreateJob(ctx context.Context, payload *types.JobPayload) (*types.Job, error)
	UpdateJob(ctx context.Context, id string, payload *types.JobPayload) (*types.Job, error)
}

// ExperienceDraft holds the experience fields as entered.
type ExperienceDraft struct {
	Level    string `json:"level"`
	MinYears string `json:"minYears"`
	MaxYears string `json:"maxYears"`
}

// Controller holds the state of one job form. It starts in create mode; LoadJob
// switches it to edit mode for an existing job.
type Controller struct {
	writer     JobWriter
	categories *category.Resolver
	logger     *slog.Logger
	onComplete func(*types.Job)

	mu           sync.Mutex
	editing      *types.Job
	title        string
	description  string
	location     string
	timezone     string
	jobType      types.JobType
	status       types.JobStatus
	vacancies    string
	requirements []string
	skills       []types.SkillRequirement
	experience   ExperienceDraft
	comp         *compensation.Selector
	extra        map[string]string
	submitting   bool
}

// NewController creates an empty form in create mode.
func NewController(writer JobWriter, fetcher category.Fetcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		writer:     writer,
		categories: category.NewResolver(fetcher, logger),
		logger:     logger,
	}
	c.resetLocked()
	return c
}

// OnComplete registers fn to be called with the saved job after a successful submit.
func (c *Controller) OnComplete(fn func(*types.Job)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onComplete = fn
}

// Categories returns the category cascade of the form.
func (c *Controller) Categories() *category.Resolver {
	return c.categories
}

// Reset clears the form back to an empty create form.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.categories.Reset()
}

func (c *Controller) resetLocked() {
	c.editing = nil
	c.title = ""
	c.description = ""
	c.location = ""
	c.timezone = ""
	c.jobType = types.JobTypeRemote
	c.status = types.JobStatusActive
	c.vacancies = "1"
	c.requirements = []string{""}
	c.skills = nil
	c.experience = ExperienceDraft{}
	c.comp = compensation.NewSelector(types.PricingHourly)
	c.extra = nil
}

// LoadJob seeds the form from job and switches to edit mode. A failure to fetch
// the job's subcategories is logged and does not prevent editing.
func (c *Controller) LoadJob(ctx context.Context, job *types.Job) {
	c.mu.Lock()
	c.resetLocked()
	cached := *job
	c.editing = &cached
	c.title = job.Title
	c.description = job.Description
	c.location = job.Location
	c.timezone = job.Timezone
	if job.JobType != "" {
		c.jobType = job.JobType
	}
	if job.Status != "" {
		c.status = job.Status
	}
	if job.Vacancies > 0 {
		c.vacancies = strconv.Itoa(job.Vacancies)
	}
	if len(job.Requirements) > 0 {
		c.requirements = append([]string(nil), job.Requirements...)
	}
	c.skills = append([]types.SkillRequirement(nil), job.SkillsRequired...)
	if e := job.Experience; e != nil {
		c.experience = ExperienceDraft{Level: e.Level, MinYears: formatYears(e.MinYears), MaxYears: formatYears(e.MaxYears)}
	}
	c.comp.Reset(job.Mode())
	c.comp.Load(job.Compensation)
	c.mu.Unlock()

	parent, sub := job.ParentCategory.String(), job.Category.String()
	if parent == "" {
		parent, sub = sub, ""
	}
	c.categories.Reset()
	if parent != "" {
		// errors are logged by the resolver
		_ = c.categories.Restore(ctx, parent, sub)
	}
}

// Editing returns the job being edited, or nil in create mode.
func (c *Controller) Editing() *types.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	cp := *c.editing
	return &cp
}

// UpdateField sets a form field by name. Nested fields use dotted paths:
// "compensation.hourly.hourlyRate", "experience.minYears", "requirements.0".
// Names the form does not model are kept verbatim and sent with the payload.
func (c *Controller) UpdateField(ctx context.Context, name, value string) error {
	head, rest, nested := strings.Cut(name, ".")

	switch head {
	case "parentCategory":
		return c.categories.SelectParent(ctx, value)
	case "category":
		return c.categories.SelectSubcategory(value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if nested {
		switch head {
		case "compensation":
			key, field, ok := strings.Cut(rest, ".")
			if !ok {
				return fmt.Errorf("compensation field %q needs a mode and a field", name)
			}
			return c.comp.Set(key, field, value)
		case "experience":
			return c.setExperienceLocked(rest, value)
		case "requirements":
			i, err := strconv.Atoi(rest)
			if err != nil {
				return fmt.Errorf("invalid requirement index %q", rest)
			}
			return c.updateRequirementLocked(i, value)
		}
	}

	switch name {
	case "title":
		c.title = value
	case "description":
		c.description = value
	case "location":
		c.location = value
	case "timezone":
		c.timezone = value
	case "jobType":
		c.jobType = types.JobType(value)
	case "status":
		c.status = types.JobStatus(value)
	case "vacancies":
		c.vacancies = value
	case "pricingType", "workArrangement":
		mode, err := types.ParsePricingMode(value)
		if err != nil {
			return err
		}
		return c.comp.Select(mode)
	default:
		if c.extra == nil {
			c.extra = make(map[string]string)
		}
		c.extra[name] = value
	}
	return nil
}

func (c *Controller) setExperienceLocked(field, value string) error {
	switch field {
	case "level":
		c.experience.Level = value
	case "minYears":
		c.experience.MinYears = value
	case "maxYears":
		c.experience.MaxYears = value
	default:
		return fmt.Errorf("unknown experience field %q", field)
	}
	return nil
}

// SetMode selects the pricing mode. Values entered for other modes are kept.
func (c *Controller) SetMode(mode types.PricingMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.comp.Select(mode)
}

// Mode returns the active pricing mode.
func (c *Controller) Mode() types.PricingMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.comp.Mode()
}

// AddRequirement appends an empty requirement slot.
func (c *Controller) AddRequirement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requirements = append(c.requirements, "")
}

// RemoveRequirement removes slot i. Removing the last slot leaves one empty slot.
func (c *Controller) RemoveRequirement(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.requirements) {
		return fmt.Errorf("requirement %d out of range", i)
	}
	c.requirements = append(c.requirements[:i], c.requirements[i+1:]...)
	if len(c.requirements) == 0 {
		c.requirements = []string{""}
	}
	return nil
}

// UpdateRequirement sets slot i.
func (c *Controller) UpdateRequirement(i int, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateRequirementLocked(i, value)
}

func (c *Controller) updateRequirementLocked(i int, value string) error {
	if i < 0 || i >= len(c.requirements) {
		return fmt.Errorf("requirement %d out of range", i)
	}
	c.requirements[i] = value
	return nil
}

// SetRequirements replaces every requirement slot. An empty list leaves one
// empty slot.
func (c *Controller) SetRequirements(reqs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requirements = append([]string(nil), reqs...)
	if len(c.requirements) == 0 {
		c.requirements = []string{""}
	}
}

// Requirements returns the editable requirement slots, including empty ones.
func (c *Controller) Requirements() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requirements...)
}

// AddSkill adds skill at level, or changes the level of a skill already present.
func (c *Controller) AddSkill(skill string, level types.SkillLevel) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return fmt.Errorf("skill name is required")
	}
	switch level {
	case "", types.SkillBeginner, types.SkillIntermediate, types.SkillAdvanced, types.SkillExpert:
	default:
		return fmt.Errorf("unknown skill level %q", level)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.skills {
		if strings.EqualFold(c.skills[i].Skill, skill) {
			c.skills[i].Level = level
			return nil
		}
	}
	c.skills = append(c.skills, types.SkillRequirement{Skill: skill, Level: level})
	return nil
}

// RemoveSkill removes skill if present.
func (c *Controller) RemoveSkill(skill string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.skills {
		if strings.EqualFold(c.skills[i].Skill, skill) {
			c.skills = append(c.skills[:i], c.skills[i+1:]...)
			return
		}
	}
}

// SetSkills replaces the required skills.
func (c *Controller) SetSkills(skills []types.SkillRequirement) error {
	c.mu.Lock()
	c.skills = nil
	c.mu.Unlock()
	for _, s := range skills {
		if err := c.AddSkill(s.Skill, s.Level); err != nil {
			return err
		}
	}
	return nil
}

// Skills returns the required skills.
func (c *Controller) Skills() []types.SkillRequirement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.SkillRequirement(nil), c.skills...)
}

// Payload assembles and validates the job payload. Empty requirement slots are
// dropped; only the active pricing mode's compensation is included. A
// *ValidationError is returned when the result would be rejected.
func (c *Controller) Payload() (*types.JobPayload, error) {
	parent, sub := c.categories.Selection()

	c.mu.Lock()
	defer c.mu.Unlock()

	p := &types.JobPayload{
		Title:          strings.TrimSpace(c.title),
		Description:    strings.TrimSpace(c.description),
		Location:       strings.TrimSpace(c.location),
		Timezone:       strings.TrimSpace(c.timezone),
		JobType:        c.jobType,
		Status:         c.status,
		SkillsRequired: append([]types.SkillRequirement(nil), c.skills...),
		Compensation:   c.comp.Build(),
	}

	p.Requirements = make([]string, 0, len(c.requirements))
	for _, r := range c.requirements {
		if r = strings.TrimSpace(r); r != "" {
			p.Requirements = append(p.Requirements, r)
		}
	}
	if len(p.Requirements) == 0 {
		return nil, &ValidationError{Problems: []schemas.FieldError{{Field: "requirements", Message: "at least one requirement is required"}}}
	}

	if mode := c.comp.Mode(); mode.IsLegacy() {
		p.WorkArrangement = mode
	} else {
		p.PricingType = mode
	}

	// a parent alone is a valid category selection
	p.ParentCategory = parent
	p.Category = sub
	if p.Category == "" {
		p.Category = parent
	}

	vacancies := strings.TrimSpace(c.vacancies)
	if vacancies == "" {
		p.Vacancies = 1
	} else {
		n, err := strconv.Atoi(vacancies)
		if err != nil {
			return nil, &ValidationError{Problems: []schemas.FieldError{{Field: "vacancies", Message: "must be a whole number"}}}
		}
		p.Vacancies = n
	}

	exp := &types.ExperienceRequirement{
		Level:    strings.TrimSpace(c.experience.Level),
		MinYears: parseYears(c.experience.MinYears),
		MaxYears: parseYears(c.experience.MaxYears),
	}
	if exp.Level != "" || exp.MinYears != nil || exp.MaxYears != nil {
		p.Experience = exp
	}

	if len(c.extra) > 0 {
		p.Extra = make(map[string]string, len(c.extra))
		for k, v := range c.extra {
			p.Extra[k] = v
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fromValidator(err)
	}
	if err := schemas.ValidateJobPayload(p); err != nil {
		return nil, fromValidator(err)
	}
	return p, nil
}

// Submit validates the form and creates or updates the job.
//
// On success a create form is reset and an edit form caches the saved job; the
// completion callback receives the saved job. On failure the form is left as is
// so the user can correct it and submit again.
func (c *Controller) Submit(ctx context.Context) (*types.Job, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitting
	}
	c.submitting = true
	editing := c.editing
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	payload, err := c.Payload()
	if err != nil {
		return nil, err
	}

	var saved *types.Job
	if editing != nil {
		saved, err = c.writer.UpdateJob(ctx, editing.ID, payload)
		if err != nil {
			c.logger.Warn("failed to update job", "job_id", editing.ID, "error", err)
			return nil, &SubmitError{Message: api.MessageOr(err, updateFallback), Cause: err}
		}
		if saved == nil {
			saved = applyPayload(editing, payload)
		}
		c.mu.Lock()
		cached := *saved
		c.editing = &cached
		c.mu.Unlock()
		c.logger.Info("job updated", "job_id", saved.ID)
	} else {
		saved, err = c.writer.CreateJob(ctx, payload)
		if err != nil {
			c.logger.Warn("failed to post job", "error", err)
			return nil, &SubmitError{Message: api.MessageOr(err, createFallback), Cause: err}
		}
		if saved == nil {
			saved = applyPayload(&types.Job{}, payload)
		}
		c.Reset()
		c.logger.Info("job posted", "job_id", saved.ID)
	}

	c.mu.Lock()
	done := c.onComplete
	c.mu.Unlock()
	if done != nil {
		done(saved)
	}
	return saved, nil
}

// applyPayload returns a copy of base carrying the submitted values, used when
// the server acknowledges a save without echoing the job.
func applyPayload(base *types.Job, p *types.JobPayload) *types.Job {
	j := *base
	j.Title = p.Title
	j.Description = p.Description
	j.Requirements = append(types.Requirements(nil), p.Requirements...)
	j.Location = p.Location
	j.Timezone = p.Timezone
	j.Category = types.EntityRef(p.Category)
	j.ParentCategory = types.EntityRef(p.ParentCategory)
	j.JobType = p.JobType
	j.PricingType = p.PricingType
	j.WorkArrangement = p.WorkArrangement
	j.Compensation = p.Compensation
	j.SkillsRequired = p.SkillsRequired
	j.Experience = p.Experience
	j.Vacancies = p.Vacancies
	j.Status = p.Status
	return &j
}

func parseYears(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatYears(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
