package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/server/middleware"
	"github.com/joblify/employer-console/internal/types"
	"github.com/joblify/employer-console/internal/workflow"
)

const (
	genericFailure         = "An error occurred. Please try again."
	loadCategoriesFallback = "Failed to load categories"
)

// SessionResponse is the body of a successful login, signup or logout.
type SessionResponse struct {
	Message  string         `json:"message,omitempty"`
	Redirect string         `json:"redirect"`
	Token    string         `json:"token,omitempty"`
	User     *types.Profile `json:"user,omitempty"`
}

// MutationResponse is the body of a successful job write: the saved job and
// the view the dashboard moved to.
type MutationResponse struct {
	Job    *types.Job        `json:"job,omitempty"`
	Screen *dashboard.Screen `json:"screen"`
}

// ConfirmRequest carries the caller's answer to a confirmation prompt.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// StatusRequest is the body of an application status change.
type StatusRequest struct {
	Status  string `json:"status"`
	Confirm bool   `json:"confirm"`
}

// CategoriesResponse lists categories for the cascade selects.
type CategoriesResponse struct {
	Categories []types.Category `json:"categories"`
}

// decodeBody decodes the JSON body of r into v. An empty body leaves v unchanged.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionFailure reports a failed login or signup with the server message,
// fallback for a server rejection without one, or a generic message when the
// API could not be reached.
func (s *Server) sessionFailure(w http.ResponseWriter, err error, fallback string) {
	status := HTTPStatus(err)
	var msg string
	switch {
	case status == http.StatusBadRequest && api.StatusCode(err) == 0:
		msg = err.Error()
	case api.StatusCode(err) == 0:
		msg = genericFailure
	default:
		msg = api.MessageOr(err, fallback)
	}
	s.errorResponse(w, status, msg)
}

// handleLogin exchanges employer credentials for a token and sets the token cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	c, err := s.client("")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	resp, err := c.Login(r.Context(), &req)
	if err != nil {
		s.sessionFailure(w, err, "Login failed")
		return
	}

	setTokenCookie(w, resp.Token)
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		Message:  "Login successful!",
		Redirect: dashboard.HomePath,
		Token:    resp.Token,
		User:     resp.User,
	})
}

// handleSignup registers an employer account and sends the caller to login.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	c, err := s.client("")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := c.Signup(r.Context(), &req); err != nil {
		s.sessionFailure(w, err, "Registration failed")
		return
	}

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		Message:  "Registration successful! Redirecting to login...",
		Redirect: dashboard.LoginPath,
	})
}

// handleLogout clears the token cookie.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	clearTokenCookie(w)
	s.jsonResponse(w, http.StatusOK, SessionResponse{Redirect: dashboard.LoginPath})
}

// handleView renders the view the request path names. Fetch failures are part
// of the screen, not the status code.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	screen, err := d.Open(r.Context(), r.URL.EscapedPath())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, screen)
}

// handlePostJob submits the "Post a Job" form and renders "My Jobs".
func (s *Server) handlePostJob(w http.ResponseWriter, r *http.Request) {
	var in dashboard.JobInput
	if err := decodeBody(r, &in); err != nil {
		s.failure(w, r, err)
		return
	}
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := d.Router().Navigate(dashboard.ViewPostJob, nil); err != nil {
		s.failure(w, r, err)
		return
	}

	job, err := d.PostJob(r.Context(), &in)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, MutationResponse{Job: job, Screen: d.Render(r.Context())})
}

// handleEditJob saves changes to a job and renders its details.
func (s *Server) handleEditJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	var in dashboard.JobInput
	if err := decodeBody(r, &in); err != nil {
		s.failure(w, r, err)
		return
	}
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	job, err := d.EditJob(r.Context(), jobID, &in)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Job: job, Screen: d.Render(r.Context())})
}

// confirmed reads the confirmation flag from the query string or the body.
func confirmed(r *http.Request) (bool, error) {
	if v := r.URL.Query().Get("confirm"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, &ErrValidation{Field: "confirm", Message: "must be true or false"}
		}
		return b, nil
	}
	var req ConfirmRequest
	if err := decodeBody(r, &req); err != nil {
		return false, err
	}
	return req.Confirm, nil
}

// promptRecorder answers a confirmation with a fixed value and remembers the prompt.
type promptRecorder struct {
	answer bool
	prompt string
}

func (p *promptRecorder) Confirm(prompt string) bool {
	p.prompt = prompt
	return p.answer
}

// confirmFailure writes err, attaching the prompt the caller must accept.
func (s *Server) confirmFailure(w http.ResponseWriter, r *http.Request, err error, rec *promptRecorder) {
	if errors.Is(err, workflow.ErrNotConfirmed) {
		body := errorBody(err)
		body.Confirm = rec.prompt
		s.jsonResponse(w, HTTPStatus(err), body)
		return
	}
	s.failure(w, r, err)
}

// handleDeleteJob deletes a job once the caller confirms, then renders "My Jobs".
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	ok, err := confirmed(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	rec := &promptRecorder{answer: ok}
	if err := d.DeleteJob(r.Context(), jobID, rec); err != nil {
		s.confirmFailure(w, r, err, rec)
		return
	}
	screen, err := d.Navigate(r.Context(), dashboard.ViewMyJobs, nil)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Screen: screen})
}

// handleApplicationStatus moves an application to a new status. The caller
// must send confirm: true.
func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	applicationID := r.PathValue("applicationId")

	var req StatusRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	to, err := workflow.ParseStatus(req.Status)
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "status", Message: err.Error()})
		return
	}

	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	rec := &promptRecorder{answer: req.Confirm}
	if err := d.TransitionApplication(r.Context(), jobID, applicationID, to, rec); err != nil {
		s.confirmFailure(w, r, err, rec)
		return
	}

	screen, err := d.Open(r.Context(), dashboard.Route{View: dashboard.ViewApplicationList, JobID: jobID}.Path())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Screen: screen})
}

// handleUpdateProfile saves the company profile and renders it.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update types.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := update.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if err := d.UpdateProfile(r.Context(), &update); err != nil {
		s.failure(w, r, err)
		return
	}
	screen, err := d.Navigate(r.Context(), dashboard.ViewProfile, nil)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MutationResponse{Screen: screen})
}

// handleParentCategories lists the top-level categories.
func (s *Server) handleParentCategories(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	cats := d.PostForm().Categories()
	if err := cats.LoadParents(r.Context()); err != nil {
		s.failure(w, r, &dashboard.Error{Message: api.MessageOr(err, loadCategoriesFallback), Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, CategoriesResponse{Categories: cats.Parents()})
}

// handleSubcategories lists the children of one category.
func (s *Server) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	cats := d.PostForm().Categories()
	if err := cats.SelectParent(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, &dashboard.Error{Message: api.MessageOr(err, loadCategoriesFallback), Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, CategoriesResponse{Categories: cats.Options()})
}

// handleCatchAll sends navigation to an unknown path to the dashboard when the
// caller holds a valid token, and to the login view otherwise.
func (s *Server) handleCatchAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}

	authenticated := false
	if token := middleware.ExtractToken(r); token != "" {
		_, err := s.jwtService.ValidateToken(token)
		authenticated = err == nil
	}
	http.Redirect(w, r, dashboard.FallbackPath(authenticated), http.StatusFound)
}
