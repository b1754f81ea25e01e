package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RoleEmployer is the account role used by the employer dashboard.
const RoleEmployer = "employer"

// CompanyProfile holds the employer's company details.
type CompanyProfile struct {
	CompanyName    string `json:"companyName"`
	CompanyWebsite string `json:"companyWebsite" validate:"omitempty,url"`
	Bio            string `json:"bio"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// SignupRequest represents the request to register a new employer account.
type SignupRequest struct {
	Name     string         `json:"name" validate:"required,min=1"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Role     string         `json:"role" validate:"required"`
	Profile  CompanyProfile `json:"profile"`
}

// Profile is the authenticated account as returned by GET /auth/profile.
type Profile struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role,omitempty"`
	Profile   CompanyProfile `json:"profile"`
	CreatedAt time.Time      `json:"createdAt"`
}

// UnmarshalJSON decodes a profile, accepting `id` when `_id` is absent.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profileAlias Profile
	aux := struct {
		*profileAlias
		AltID string `json:"id"`
	}{profileAlias: (*profileAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.AltID
	}
	return nil
}

// ProfileUpdate represents a profile update. Email is not editable.
type ProfileUpdate struct {
	Name    string         `json:"name" validate:"required,min=1"`
	Profile CompanyProfile `json:"profile"`
}

// LoginResponse represents the login/signup response with the authentication token.
type LoginResponse struct {
	Token   string   `json:"token"`
	User    *Profile `json:"user,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProfileUpdate using the validator.
func (r *ProfileUpdate) Validate() error {
	return validate.Struct(r)
}

// Validate validates the StatusUpdate using the validator.
func (r *StatusUpdate) Validate() error {
	return validate.Struct(r)
}
