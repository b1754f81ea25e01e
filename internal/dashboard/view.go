// Package dashboard implements the employer dashboard: the view router, the page
// states behind each view and the screens rendered from them.
package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// View is one of the dashboard's screens. The set is closed; every consumer
// switches over all of AllViews.
type View string

// View values
const (
	ViewDashboard       View = "dashboard"
	ViewPostJob         View = "postjob"
	ViewMyJobs          View = "myjobs"
	ViewJobDetail       View = "jobdetail"
	ViewApplicationList View = "applicationlist"
	ViewProfile         View = "profile"
)

// AllViews lists every view in sidebar order.
func AllViews() []View {
	return []View{ViewDashboard, ViewPostJob, ViewMyJobs, ViewJobDetail, ViewApplicationList, ViewProfile}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	for _, known := range AllViews() {
		if v == known {
			return true
		}
	}
	return false
}

// NeedsJob reports whether entering v requires a selected job.
func (v View) NeedsJob() bool {
	return v == ViewJobDetail || v == ViewApplicationList
}

// Title returns the heading shown for v.
func (v View) Title() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewPostJob:
		return "Post a Job"
	case ViewMyJobs:
		return "My Jobs"
	case ViewJobDetail:
		return "Job Details"
	case ViewApplicationList:
		return "Applications"
	case ViewProfile:
		return "Company Profile"
	default:
		panic(fmt.Sprintf("dashboard: unhandled view %q", string(v)))
	}
}

// Public paths outside the dashboard.
const (
	LoginPath  = "/login"
	SignupPath = "/signup"
	HomePath   = "/dashboard"
)

// ErrUnknownPath is returned by ParsePath for paths that name no view.
var ErrUnknownPath = errors.New("unknown dashboard path")

// Route is a view together with the job id its path carries.
type Route struct {
	View  View   `json:"view"`
	JobID string `json:"jobId,omitempty"`
}

// ParsePath derives the route of a client path such as "/dashboard/job/abc123".
// The path is in escaped form, as Route.Path returns it, so ids are unescaped
// exactly once. A trailing slash and a query string are ignored.
func ParsePath(path string) (Route, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")

	rest, ok := strings.CutPrefix(path, HomePath)
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	parts := strings.Split(strings.TrimPrefix(rest, "/"), "/")

	switch {
	case rest == "":
		return Route{View: ViewDashboard}, nil
	case len(parts) == 1 && parts[0] == "post-job":
		return Route{View: ViewPostJob}, nil
	case len(parts) == 1 && parts[0] == "my-jobs":
		return Route{View: ViewMyJobs}, nil
	case len(parts) == 1 && parts[0] == "profile":
		return Route{View: ViewProfile}, nil
	case len(parts) == 2 && parts[0] == "job" && parts[1] != "":
		id, err := url.PathUnescape(parts[1])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
		}
		return Route{View: ViewJobDetail, JobID: id}, nil
	case len(parts) == 3 && parts[0] == "job" && parts[1] != "" && parts[2] == "applications":
		id, err := url.PathUnescape(parts[1])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
		}
		return Route{View: ViewApplicationList, JobID: id}, nil
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
}

// Path returns the client path of r.
func (r Route) Path() string {
	switch r.View {
	case ViewDashboard:
		return HomePath
	case ViewPostJob:
		return HomePath + "/post-job"
	case ViewMyJobs:
		return HomePath + "/my-jobs"
	case ViewJobDetail:
		return HomePath + "/job/" + url.PathEscape(r.JobID)
	case ViewApplicationList:
		return HomePath + "/job/" + url.PathEscape(r.JobID) + "/applications"
	case ViewProfile:
		return HomePath + "/profile"
	default:
		panic(fmt.Sprintf("dashboard: unhandled view %q", string(r.View)))
	}
}

// FallbackPath is where unknown paths redirect.
func FallbackPath(authenticated bool) string {
	if authenticated {
		return HomePath
	}
	return LoginPath
}
