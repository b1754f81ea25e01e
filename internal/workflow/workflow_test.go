package workflow

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Label)
	}
	return out
}

func TestActions(t *testing.T) {
	tests := []struct {
		status types.ApplicationStatus
		want   []string
	}{
		{types.StatusApplied, []string{"Mark Viewed", "Shortlist", "Interview", "Hire", "Reject"}},
		{types.StatusViewed, []string{"Shortlist", "Interview", "Hire", "Reject"}},
		{types.StatusShortlisted, []string{"Interview", "Hire", "Reject"}},
		{types.StatusInterview, []string{"Send Offer", "Hire", "Reject"}},
		{types.StatusOffer, []string{"Hire", "Reject"}},
		{types.StatusHired, []string{}},
		{types.StatusRejected, []string{}},
		{types.StatusWithdrawn, []string{}},
		{"unknown", []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, labels(Actions(tt.status)))
		})
	}
}

func TestActions_NeverOfferPassedOrCurrentStatus(t *testing.T) {
	for _, from := range Progression {
		for _, a := range Actions(from) {
			assert.NotEqual(t, from, a.Target)
			assert.Greater(t, Rank(a.Target), Rank(from), "%s -> %s", from, a.Target)
			assert.NotEqual(t, types.StatusWithdrawn, a.Target)
			assert.NotEmpty(t, a.Prompt)
		}
	}
}

func TestTerminalStatusesOfferNothing(t *testing.T) {
	for _, s := range Progression {
		if IsTerminal(s) {
			assert.Empty(t, Actions(s), s)
			for _, to := range Progression {
				assert.False(t, CanTransition(s, to))
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Hired ")
	require.NoError(t, err)
	assert.Equal(t, types.StatusHired, s)

	_, err = ParseStatus("promoted")
	assert.Error(t, err)
	assert.Equal(t, "Shortlisted", Label(types.StatusShortlisted))
}

type fakeService struct {
	mu        sync.Mutex
	apps      []types.Application
	listErr   error
	updateErr error
	updates   []types.StatusUpdate
	onUpdate  func()
}

func (f *fakeService) ListApplications(context.Context, string) ([]types.Application, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Application(nil), f.apps...), nil
}

func (f *fakeService) UpdateApplicationStatus(_ context.Context, _ string, status types.ApplicationStatus) error {
	f.mu.Lock()
	f.updates = append(f.updates, types.StatusUpdate{Status: status})
	hook := f.onUpdate
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.updateErr
}

func newBoard(t *testing.T, svc *fakeService) *Board {
	t.Helper()
	b := NewBoard(svc, "job-1", nil)
	require.NoError(t, b.Load(context.Background()))
	return b
}

func TestBoard_TransitionScenario(t *testing.T) {
	svc := &fakeService{apps: []types.Application{{ID: "a1", Status: types.StatusApplied}}}
	b := newBoard(t, svc)

	assert.Equal(t, []string{"Mark Viewed", "Shortlist", "Interview", "Hire", "Reject"}, labels(b.ActionsFor("a1")))

	var prompts []string
	confirm := ConfirmFunc(func(p string) bool {
		prompts = append(prompts, p)
		return true
	})
	require.NoError(t, b.Transition(context.Background(), "a1", types.StatusInterview, confirm))

	app, ok := b.Get("a1")
	require.True(t, ok)
	assert.Equal(t, types.StatusInterview, app.Status)
	assert.Equal(t, []string{"Send Offer", "Hire", "Reject"}, labels(b.ActionsFor("a1")))
	assert.Equal(t, []string{"Are you sure you want to schedule an interview?"}, prompts)
	assert.Equal(t, []types.StatusUpdate{{Status: types.StatusInterview}}, svc.updates)
}

func TestBoard_DeclinedConfirmationSendsNothing(t *testing.T) {
	svc := &fakeService{apps: []types.Application{{ID: "a1", Status: types.StatusApplied}}}
	b := newBoard(t, svc)

	err := b.Transition(context.Background(), "a1", types.StatusHired, ConfirmFunc(func(string) bool { return false }))
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Empty(t, svc.updates)
	assert.False(t, b.Busy("a1"))
}

func TestBoard_FailedUpdateLeavesStateUnchanged(t *testing.T) {
	svc := &fakeService{
		apps:      []types.Application{{ID: "a1", Status: types.StatusViewed}},
		updateErr: &api.Error{Status: http.StatusForbidden, Message: "Not your job"},
	}
	b := newBoard(t, svc)

	err := b.Transition(context.Background(), "a1", types.StatusRejected, AlwaysConfirm)
	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "Not your job", werr.Message)

	app, _ := b.Get("a1")
	assert.Equal(t, types.StatusViewed, app.Status)
	assert.False(t, b.Busy("a1"))
}

func TestBoard_FailedUpdateUsesFallbackMessage(t *testing.T) {
	svc := &fakeService{
		apps:      []types.Application{{ID: "a1", Status: types.StatusViewed}},
		updateErr: errors.New("connection reset"),
	}
	b := newBoard(t, svc)

	err := b.Transition(context.Background(), "a1", types.StatusRejected, AlwaysConfirm)
	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "Failed to update application status", werr.Message)
}

func TestBoard_RejectsTerminalAndUnofferedTransitions(t *testing.T) {
	svc := &fakeService{apps: []types.Application{
		{ID: "hired", Status: types.StatusHired},
		{ID: "int", Status: types.StatusInterview},
	}}
	b := newBoard(t, svc)

	assert.ErrorIs(t, b.Transition(context.Background(), "hired", types.StatusRejected, AlwaysConfirm), ErrTerminal)

	var terr *TransitionError
	require.ErrorAs(t, b.Transition(context.Background(), "int", types.StatusShortlisted, AlwaysConfirm), &terr)
	assert.Equal(t, types.StatusInterview, terr.From)

	assert.ErrorIs(t, b.Transition(context.Background(), "missing", types.StatusHired, AlwaysConfirm), ErrNotFound)
	assert.Empty(t, svc.updates)
}

func TestBoard_OneUpdateInFlightPerApplication(t *testing.T) {
	svc := &fakeService{apps: []types.Application{
		{ID: "a1", Status: types.StatusApplied},
		{ID: "a2", Status: types.StatusApplied},
	}}
	b := newBoard(t, svc)

	var nested, other error
	svc.onUpdate = func() {
		svc.onUpdate = nil
		assert.True(t, b.Busy("a1"))
		assert.Empty(t, b.ActionsFor("a1"))
		nested = b.Transition(context.Background(), "a1", types.StatusHired, AlwaysConfirm)
		other = b.Transition(context.Background(), "a2", types.StatusViewed, AlwaysConfirm)
	}

	require.NoError(t, b.Transition(context.Background(), "a1", types.StatusShortlisted, AlwaysConfirm))
	assert.ErrorIs(t, nested, ErrBusy)
	assert.NoError(t, other)
	assert.Len(t, svc.updates, 2)
}

func TestBoard_LoadFailureAndRetry(t *testing.T) {
	svc := &fakeService{listErr: &api.Error{Status: http.StatusInternalServerError}}
	b := NewBoard(svc, "job-1", nil)

	err := b.Load(context.Background())
	var werr *Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "Failed to load applications", werr.Message)
	assert.True(t, b.Loaded())
	assert.Error(t, b.LoadError())

	svc.listErr = nil
	svc.apps = []types.Application{{ID: "a1", Status: types.StatusApplied}, {ID: "a2", Status: types.StatusHired}}
	require.NoError(t, b.Retry(context.Background()))
	assert.NoError(t, b.LoadError())
	assert.Equal(t, map[types.ApplicationStatus]int{types.StatusApplied: 1, types.StatusHired: 1}, b.Counts())
}
