package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a failed API call. Message holds the server-provided message
// when the response carried one.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "api error for %s %s", e.Method, e.Path)
	if e.Status != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// serverMessage is the error body shape; different endpoints use different keys.
type serverMessage struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newStatusError(method, path string, status int, body []byte) *Error {
	e := &Error{Method: method, Path: path, Status: status}

	var sm serverMessage
	if err := json.Unmarshal(body, &sm); err == nil {
		switch {
		case sm.Msg != "":
			e.Message = sm.Msg
		case sm.Message != "":
			e.Message = sm.Message
		case sm.Error != "":
			e.Message = sm.Error
		}
	}
	return e
}

// ServerMessage returns the message the server attached to err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status != 0 {
		return apiErr.Message, true
	}
	return "", false
}

// MessageOr returns the server-provided message for err, or fallback.
func MessageOr(err error, fallback string) string {
	if msg, ok := ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// StatusCode returns the HTTP status of a failed call, or 0 when the request never
// produced a response.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
