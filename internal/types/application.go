package types

import (
	"encoding/json"
	"time"
)

// ApplicationStatus is the position of an application in the hiring progression.
type ApplicationStatus string

// ApplicationStatus values, in progression order.
const (
	StatusApplied     ApplicationStatus = "applied"
	StatusViewed      ApplicationStatus = "viewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusOffer       ApplicationStatus = "offer"
	StatusHired       ApplicationStatus = "hired"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// Applicant is the candidate who submitted an application.
type Applicant struct {
	ID    EntityRef `json:"_id,omitempty"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Proposal is the bid attached to an application.
type Proposal struct {
	BidAmount         float64  `json:"bidAmount,omitempty"`
	BidType           string   `json:"bidType,omitempty"`
	CoverLetter       string   `json:"coverLetter,omitempty"`
	HighlightedSkills []string `json:"highlightedSkills,omitempty"`
}

// Application is a candidate's application to a job.
type Application struct {
	ID        string            `json:"_id"`
	JobID     EntityRef         `json:"job"`
	Applicant Applicant         `json:"applicant"`
	Status    ApplicationStatus `json:"status"`
	Proposal  *Proposal         `json:"proposal,omitempty"`
	Resume    string            `json:"resume,omitempty"`
	AppliedAt time.Time         `json:"appliedAt"`
}

// UnmarshalJSON decodes an application, accepting `id`, `jobId` and `createdAt`
// as alternates for `_id`, `job` and `appliedAt`.
func (a *Application) UnmarshalJSON(data []byte) error {
	type applicationAlias Application
	aux := struct {
		*applicationAlias
		AltID     string     `json:"id"`
		AltJobID  EntityRef  `json:"jobId"`
		CreatedAt *time.Time `json:"createdAt"`
	}{applicationAlias: (*applicationAlias)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = aux.AltID
	}
	if a.JobID == "" {
		a.JobID = aux.AltJobID
	}
	if a.AppliedAt.IsZero() && aux.CreatedAt != nil {
		a.AppliedAt = *aux.CreatedAt
	}
	return nil
}

// StatusUpdate is the body of an application status change.
type StatusUpdate struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=applied viewed shortlisted interview offer hired rejected withdrawn"`
}

// Category is a job category. Top-level categories have no parent.
type Category struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	ParentID EntityRef `json:"parentId,omitempty"`
}

// UnmarshalJSON decodes a category, accepting `id` and `parent` as alternates.
func (c *Category) UnmarshalJSON(data []byte) error {
	type categoryAlias Category
	aux := struct {
		*categoryAlias
		AltID     string    `json:"id"`
		AltParent EntityRef `json:"parent"`
	}{categoryAlias: (*categoryAlias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.AltID
	}
	if c.ParentID == "" {
		c.ParentID = aux.AltParent
	}
	return nil
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool {
	return c.ParentID == ""
}
