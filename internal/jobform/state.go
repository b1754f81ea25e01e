package jobform

import (
	"github.com/joblify/employer-console/internal/compensation"
	"github.com/joblify/employer-console/internal/types"
)

// State is a read-only snapshot of the form for rendering.
type State struct {
	EditingID          string                   `json:"editingId,omitempty"`
	Title              string                   `json:"title"`
	Description        string                   `json:"description"`
	Location           string                   `json:"location"`
	Timezone           string                   `json:"timezone"`
	JobType            types.JobType            `json:"jobType"`
	Status             types.JobStatus          `json:"status"`
	Vacancies          string                   `json:"vacancies"`
	Requirements       []string                 `json:"requirements"`
	Skills             []types.SkillRequirement `json:"skillsRequired"`
	Experience         ExperienceDraft          `json:"experience"`
	Mode               types.PricingMode        `json:"pricingMode"`
	CompensationFields []compensation.Field     `json:"compensationFields"`
	ParentCategory     string                   `json:"parentCategory"`
	Category           string                   `json:"category"`
	ParentOptions      []types.Category         `json:"parentOptions"`
	CategoryOptions    []types.Category         `json:"categoryOptions"`
	CategoriesPending  bool                     `json:"categoriesPending"`
	Extra              map[string]string        `json:"extra,omitempty"`
	Submitting         bool                     `json:"submitting"`
}

// State returns a snapshot of the form.
func (c *Controller) State() State {
	parent, sub := c.categories.Selection()
	s := State{
		ParentCategory:    parent,
		Category:          sub,
		ParentOptions:     c.categories.Parents(),
		CategoryOptions:   c.categories.Options(),
		CategoriesPending: c.categories.Pending(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing != nil {
		s.EditingID = c.editing.ID
	}
	s.Title = c.title
	s.Description = c.description
	s.Location = c.location
	s.Timezone = c.timezone
	s.JobType = c.jobType
	s.Status = c.status
	s.Vacancies = c.vacancies
	s.Requirements = append([]string(nil), c.requirements...)
	s.Skills = append([]types.SkillRequirement(nil), c.skills...)
	s.Experience = c.experience
	s.Mode = c.comp.Mode()
	s.CompensationFields = c.comp.Fields(s.Mode)
	if len(c.extra) > 0 {
		s.Extra = make(map[string]string, len(c.extra))
		for k, v := range c.extra {
			s.Extra[k] = v
		}
	}
	s.Submitting = c.submitting
	return s
}
