// Package workflow enforces the application status progression and manages the
// application list of a job.
package workflow

import (
	"fmt"
	"strings"

	"github.com/joblify/employer-console/internal/types"
)

// Progression lists the application statuses in order.
var Progression = []types.ApplicationStatus{
	types.StatusApplied,
	types.StatusViewed,
	types.StatusShortlisted,
	types.StatusInterview,
	types.StatusOffer,
	types.StatusHired,
	types.StatusRejected,
	types.StatusWithdrawn,
}

// Action is a status change the employer may apply to an application.
type Action struct {
	Target types.ApplicationStatus `json:"target"`
	Label  string                  `json:"label"`
	Prompt string                  `json:"prompt"`
}

var actions = map[types.ApplicationStatus]Action{
	types.StatusViewed:      {Target: types.StatusViewed, Label: "Mark Viewed", Prompt: "Are you sure you want to mark this application as viewed?"},
	types.StatusShortlisted: {Target: types.StatusShortlisted, Label: "Shortlist", Prompt: "Are you sure you want to shortlist this applicant?"},
	types.StatusInterview:   {Target: types.StatusInterview, Label: "Interview", Prompt: "Are you sure you want to schedule an interview?"},
	types.StatusOffer:       {Target: types.StatusOffer, Label: "Send Offer", Prompt: "Are you sure you want to send an offer?"},
	types.StatusHired:       {Target: types.StatusHired, Label: "Hire", Prompt: "Are you sure you want to hire this applicant?"},
	types.StatusRejected:    {Target: types.StatusRejected, Label: "Reject", Prompt: "Are you sure you want to reject this application?"},
}

// transitions lists the targets offered from each status. Statuses already passed
// are never offered again; an offer only follows an interview; withdrawal is the
// applicant's decision and never offered to the employer.
var transitions = map[types.ApplicationStatus][]types.ApplicationStatus{
	types.StatusApplied:     {types.StatusViewed, types.StatusShortlisted, types.StatusInterview, types.StatusHired, types.StatusRejected},
	types.StatusViewed:      {types.StatusShortlisted, types.StatusInterview, types.StatusHired, types.StatusRejected},
	types.StatusShortlisted: {types.StatusInterview, types.StatusHired, types.StatusRejected},
	types.StatusInterview:   {types.StatusOffer, types.StatusHired, types.StatusRejected},
	types.StatusOffer:       {types.StatusHired, types.StatusRejected},
	types.StatusHired:       nil,
	types.StatusRejected:    nil,
	types.StatusWithdrawn:   nil,
}

// IsValid reports whether s is a known status.
func IsValid(s types.ApplicationStatus) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no transition may leave s.
func IsTerminal(s types.ApplicationStatus) bool {
	return s == types.StatusHired || s == types.StatusRejected || s == types.StatusWithdrawn
}

// Rank returns the position of s in the progression, or -1 if unknown.
func Rank(s types.ApplicationStatus) int {
	for i, p := range Progression {
		if p == s {
			return i
		}
	}
	return -1
}

// Actions returns the actions available from current, in progression order.
// Terminal and unknown statuses have none.
func Actions(current types.ApplicationStatus) []Action {
	targets := transitions[current]
	out := make([]Action, 0, len(targets))
	for _, t := range targets {
		out = append(out, actions[t])
	}
	return out
}

// CanTransition reports whether to is offered from from.
func CanTransition(from, to types.ApplicationStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw string into a status.
func ParseStatus(s string) (types.ApplicationStatus, error) {
	status := types.ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !IsValid(status) {
		return "", fmt.Errorf("unknown application status %q", s)
	}
	return status, nil
}

// Label returns the display label of a status ("Shortlisted").
func Label(s types.ApplicationStatus) string {
	if s == "" {
		return ""
	}
	str := string(s)
	return strings.ToUpper(str[:1]) + str[1:]
}
