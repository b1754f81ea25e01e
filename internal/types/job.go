package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobType is the work location arrangement of a job.
type JobType string

// JobType values
const (
	JobTypeRemote JobType = "remote"
	JobTypeOnSite JobType = "on_site"
	JobTypeHybrid JobType = "hybrid"
)

// Label returns the display label for the job type.
func (t JobType) Label() string {
	switch t {
	case JobTypeOnSite:
		return "On-Site"
	case JobTypeHybrid:
		return "Hybrid"
	default:
		return "Remote"
	}
}

// JobStatus is the publication status of a job.
type JobStatus string

// JobStatus values
const (
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// PricingMode selects the compensation schema of a job. Hourly and fixed-price are
// sent as `pricingType`; monthly, weekly and project are the legacy `workArrangement` values.
type PricingMode string

// PricingMode values
const (
	PricingHourly     PricingMode = "hourly"
	PricingFixedPrice PricingMode = "fixed_price"
	PricingMonthly    PricingMode = "monthly"
	PricingWeekly     PricingMode = "weekly"
	PricingProject    PricingMode = "project"
)

// PricingModes lists every pricing mode in display order.
func PricingModes() []PricingMode {
	return []PricingMode{PricingHourly, PricingFixedPrice, PricingMonthly, PricingWeekly, PricingProject}
}

// ParsePricingMode converts a raw string into a PricingMode.
func ParsePricingMode(s string) (PricingMode, error) {
	for _, m := range PricingModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown pricing mode %q", s)
}

// IsLegacy reports whether the mode belongs to the legacy workArrangement field.
func (m PricingMode) IsLegacy() bool {
	return m == PricingMonthly || m == PricingWeekly || m == PricingProject
}

// CompensationKey returns the compensation sub-object key used on the wire.
func (m PricingMode) CompensationKey() string {
	if m == PricingFixedPrice {
		return "fixedPrice"
	}
	return string(m)
}

// Label returns the display label for the mode.
func (m PricingMode) Label() string {
	switch m {
	case PricingFixedPrice:
		return "Fixed Price"
	case PricingMonthly:
		return "Monthly"
	case PricingWeekly:
		return "Weekly"
	case PricingProject:
		return "Project"
	default:
		return "Hourly"
	}
}

// SkillLevel is the proficiency expected for a required skill.
type SkillLevel string

// SkillLevel values
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// SkillRequirement is one entry of a job's required skill set.
type SkillRequirement struct {
	Skill string     `json:"skill" validate:"required"`
	Level SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// ExperienceRequirement describes the seniority a job asks for.
type ExperienceRequirement struct {
	Level    string   `json:"level,omitempty"`
	MinYears *float64 `json:"minYears,omitempty" validate:"omitempty,gte=0"`
	MaxYears *float64 `json:"maxYears,omitempty" validate:"omitempty,gte=0"`
}

// Job is a job posting as returned by the API.
type Job struct {
	ID              string                 `json:"_id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Requirements    Requirements           `json:"requirements,omitempty"`
	Location        string                 `json:"location,omitempty"`
	Timezone        string                 `json:"timezone,omitempty"`
	Category        EntityRef              `json:"category,omitempty"`
	ParentCategory  EntityRef              `json:"parentCategory,omitempty"`
	JobType         JobType                `json:"jobType,omitempty"`
	PricingType     PricingMode            `json:"pricingType,omitempty"`
	WorkArrangement PricingMode            `json:"workArrangement,omitempty"`
	Compensation    *Compensation          `json:"compensation,omitempty"`
	SkillsRequired  []SkillRequirement     `json:"skillsRequired,omitempty"`
	Experience      *ExperienceRequirement `json:"experience,omitempty"`
	Vacancies       int                    `json:"vacancies,omitempty"`
	Status          JobStatus              `json:"status,omitempty"`
	Employer        EntityRef              `json:"employer,omitempty"`
	PostedAt        time.Time              `json:"postedAt"`
}

// UnmarshalJSON decodes a job, accepting `id` when `_id` is absent and `createdAt`
// when `postedAt` is absent.
func (j *Job) UnmarshalJSON(data []byte) error {
	type jobAlias Job
	aux := struct {
		*jobAlias
		AltID     string     `json:"id"`
		CreatedAt *time.Time `json:"createdAt"`
	}{jobAlias: (*jobAlias)(j)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if j.ID == "" {
		j.ID = aux.AltID
	}
	if j.PostedAt.IsZero() && aux.CreatedAt != nil {
		j.PostedAt = *aux.CreatedAt
	}
	return nil
}

// Mode returns the job's effective pricing mode, preferring pricingType over the
// legacy workArrangement and defaulting to hourly.
func (j *Job) Mode() PricingMode {
	if j.PricingType != "" {
		return j.PricingType
	}
	if j.WorkArrangement != "" {
		return j.WorkArrangement
	}
	return PricingHourly
}

// JobPayload is the normalized body sent to create or update a job.
type JobPayload struct {
	Title           string                 `json:"title" validate:"required"`
	Description     string                 `json:"description" validate:"required"`
	Requirements    []string               `json:"requirements" validate:"min=1,dive,required"`
	Location        string                 `json:"location,omitempty"`
	Timezone        string                 `json:"timezone,omitempty"`
	Category        string                 `json:"category,omitempty"`
	ParentCategory  string                 `json:"parentCategory,omitempty"`
	JobType         JobType                `json:"jobType" validate:"required,oneof=remote on_site hybrid"`
	PricingType     PricingMode            `json:"pricingType,omitempty" validate:"omitempty,oneof=hourly fixed_price"`
	WorkArrangement PricingMode            `json:"workArrangement,omitempty" validate:"omitempty,oneof=monthly weekly project"`
	Compensation    *Compensation          `json:"compensation,omitempty"`
	SkillsRequired  []SkillRequirement     `json:"skillsRequired,omitempty" validate:"dive"`
	Experience      *ExperienceRequirement `json:"experience,omitempty"`
	Vacancies       int                    `json:"vacancies" validate:"min=1"`
	Status          JobStatus              `json:"status" validate:"required,oneof=active paused closed draft"`

	// Extra holds fields the form does not model; they are sent verbatim.
	Extra map[string]string `json:"-"`
}

// MarshalJSON encodes the payload, adding Extra keys that do not collide with
// modeled fields.
func (p JobPayload) MarshalJSON() ([]byte, error) {
	type payloadAlias JobPayload
	base, err := json.Marshal(payloadAlias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, exists := fields[k]; exists {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// Validate validates the JobPayload using the validator.
func (p *JobPayload) Validate() error {
	return validate.Struct(p)
}
