package jobform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joblify/employer-console/internal/schemas"
)

// ErrSubmitting is returned when Submit is called while a submission is in flight.
var ErrSubmitting = errors.New("job submission already in progress")

// ValidationError is returned by Payload when the form cannot produce a valid
// job. No request is sent.
type ValidationError struct {
	Problems []schemas.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Field, p.Message))
	}
	return "invalid job: " + strings.Join(parts, "; ")
}

// Has reports whether field has a problem.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field || strings.HasPrefix(p.Field, field+".") {
			return true
		}
	}
	return false
}

// SubmitError is returned when the API rejects a create or update. Message is the
// server-provided message or a generic fallback.
type SubmitError struct {
	Message string
	Cause   error
}

func (e *SubmitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// fromValidator converts validator and schema failures into a ValidationError.
func fromValidator(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := &ValidationError{}
		for _, fe := range ves {
			out.Problems = append(out.Problems, schemas.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: describe(fe),
			})
		}
		return out
	}
	var se *schemas.ValidationError
	if errors.As(err, &se) {
		return &ValidationError{Problems: se.Errors}
	}
	return err
}

// fieldPath turns "JobPayload.SkillsRequired[0].Skill" into "skillsRequired[0].skill".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
