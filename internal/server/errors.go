package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/jobform"
	"github.com/joblify/employer-console/internal/schemas"
	"github.com/joblify/employer-console/internal/workflow"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *ErrValidation
		formErr   *jobform.ValidationError
		schemaErr *schemas.ValidationError
		fieldErrs validator.ValidationErrors
		transErr  *workflow.TransitionError
	)

	switch {
	case errors.As(err, &reqErr), errors.As(err, &formErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, workflow.ErrTerminal), errors.As(err, &transErr):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrBusy), errors.Is(err, dashboard.ErrBusy), errors.Is(err, jobform.ErrSubmitting):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, dashboard.ErrUnknownPath), errors.Is(err, dashboard.ErrMissingJob):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotEditing):
		return http.StatusConflict
	}

	// Failures from the job-board API keep client errors and report the rest
	// as a bad gateway.
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error    string               `json:"error"`
	Fields   []schemas.FieldError `json:"fields,omitempty"`
	Confirm  string               `json:"confirm,omitempty"`
	Redirect string               `json:"redirect,omitempty"`
}

// errorBody builds the display body for err.
func errorBody(err error) ErrorResponse {
	body := ErrorResponse{Error: dashboard.Message(err)}

	var (
		formErr   *jobform.ValidationError
		schemaErr *schemas.ValidationError
		reqErr    *ErrValidation
	)
	switch {
	case errors.As(err, &formErr):
		body.Fields = formErr.Problems
	case errors.As(err, &schemaErr):
		body.Fields = schemaErr.Errors
	case errors.As(err, &reqErr):
		body.Fields = []schemas.FieldError{{Field: reqErr.Field, Message: reqErr.Message}}
	}

	if api.IsUnauthorized(err) {
		body.Redirect = "/login"
	}
	return body
}
