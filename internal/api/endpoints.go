package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/joblify/employer-console/internal/types"
)

// Login exchanges credentials for a token. The token is returned, not stored;
// the caller decides where the session lives.
func (c *Client) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if req.Role == "" {
		req.Role = types.RoleEmployer
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	var resp types.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Method: http.MethodPost, Path: "/auth/login", Message: "failed to decode login response", Cause: err}
	}
	if resp.Token == "" {
		return nil, &Error{Method: http.MethodPost, Path: "/auth/login", Message: "login response carried no token"}
	}
	return &resp, nil
}

// Signup registers a new employer account.
func (c *Client) Signup(ctx context.Context, req *types.SignupRequest) error {
	if req.Role == "" {
		req.Role = types.RoleEmployer
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid signup request: %w", err)
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/register", req)
	return err
}

// GetProfile fetches the authenticated account.
func (c *Client) GetProfile(ctx context.Context) (*types.Profile, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeEntity[types.Profile](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile updates the authenticated account and returns the stored version.
func (c *Client) UpdateProfile(ctx context.Context, update *types.ProfileUpdate) (*types.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}
	body, err := c.do(ctx, http.MethodPut, "/auth/profile", update)
	if err != nil {
		return nil, err
	}
	p, err := decodeEntity[types.Profile](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListMyJobs lists the jobs posted by the authenticated employer.
func (c *Client) ListMyJobs(ctx context.Context) ([]types.Job, error) {
	body, err := c.do(ctx, http.MethodGet, "/jobs/my", nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[types.Job](body)
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*types.Job, error) {
	body, err := c.do(ctx, http.MethodGet, "/jobs/"+escape(id), nil)
	if err != nil {
		return nil, err
	}
	job, err := decodeEntity[types.Job](body)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob posts a new job. The returned job is nil when the server acknowledged
// the write without echoing the job back.
func (c *Client) CreateJob(ctx context.Context, payload *types.JobPayload) (*types.Job, error) {
	body, err := c.do(ctx, http.MethodPost, "/jobs", payload)
	if err != nil {
		return nil, err
	}
	return c.decodeMutatedJob(body), nil
}

// UpdateJob replaces the editable fields of a job. As with CreateJob, the returned
// job may be nil.
func (c *Client) UpdateJob(ctx context.Context, id string, payload *types.JobPayload) (*types.Job, error) {
	body, err := c.do(ctx, http.MethodPut, "/jobs/"+escape(id), payload)
	if err != nil {
		return nil, err
	}
	return c.decodeMutatedJob(body), nil
}

// DeleteJob deletes a job. Applications to the job are left to the backend.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/jobs/"+escape(id), nil)
	return err
}

// ListApplications lists the applications received for a job.
func (c *Client) ListApplications(ctx context.Context, jobID string) ([]types.Application, error) {
	body, err := c.do(ctx, http.MethodGet, "/applications/job/"+escape(jobID), nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[types.Application](body)
}

// UpdateApplicationStatus sets the status of an application.
func (c *Client) UpdateApplicationStatus(ctx context.Context, applicationID string, status types.ApplicationStatus) error {
	update := &types.StatusUpdate{Status: status}
	if err := update.Validate(); err != nil {
		return fmt.Errorf("invalid status update: %w", err)
	}
	_, err := c.do(ctx, http.MethodPut, "/applications/"+escape(applicationID)+"/status", update)
	return err
}

// ParentCategories lists the top-level categories.
func (c *Client) ParentCategories(ctx context.Context) ([]types.Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/categories/parents", nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[types.Category](body)
}

// Subcategories lists the children of a category.
func (c *Client) Subcategories(ctx context.Context, parentID string) ([]types.Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/categories/"+escape(parentID)+"/subcategories", nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[types.Category](body)
}

// decodeMutatedJob decodes the job echoed by a create or update. The write has
// already succeeded, so an undecodable body is logged rather than returned.
func (c *Client) decodeMutatedJob(body []byte) *types.Job {
	job, err := decodeEntity[types.Job](body)
	if err != nil || job.ID == "" {
		c.logger.Debug("job write response carried no job", "error", err)
		return nil
	}
	return &job
}
