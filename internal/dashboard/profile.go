package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joblify/employer-console/internal/api"
	"github.com/joblify/employer-console/internal/types"
)

const (
	loadProfileFallback   = "Failed to load profile"
	updateProfileFallback = "Failed to update profile"
)

// ProfileService reads and updates the employer's profile.
type ProfileService interface {
	GetProfile(ctx context.Context) (*types.Profile, error)
	UpdateProfile(ctx context.Context, update *types.ProfileUpdate) (*types.Profile, error)
}

// ProfilePage is the state of the profile view.
type ProfilePage struct {
	svc    ProfileService
	logger *slog.Logger

	mu      sync.Mutex
	profile *types.Profile
	loadErr error
	editing bool
	saving  bool
}

// NewProfilePage creates an unloaded profile page.
func NewProfilePage(svc ProfileService, logger *slog.Logger) *ProfilePage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfilePage{svc: svc, logger: logger}
}

// Load fetches the profile.
func (p *ProfilePage) Load(ctx context.Context) error {
	profile, err := p.svc.GetProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Warn("failed to load profile", "error", err)
		p.loadErr = &Error{Message: api.MessageOr(err, loadProfileFallback), Cause: err}
		return p.loadErr
	}
	p.profile = profile
	p.loadErr = nil
	return nil
}

// Retry reloads after a failed Load.
func (p *ProfilePage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

// Profile returns the loaded profile, or nil.
func (p *ProfilePage) Profile() *types.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// LoadError returns the error of the last Load, if any.
func (p *ProfilePage) LoadError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Editing reports whether the page is in edit mode.
func (p *ProfilePage) Editing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

// Edit enters edit mode and returns the form seeded from the loaded profile.
func (p *ProfilePage) Edit() types.ProfileUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = true
	if p.profile == nil {
		return types.ProfileUpdate{}
	}
	return types.ProfileUpdate{Name: p.profile.Name, Profile: p.profile.Profile}
}

// Cancel leaves edit mode without saving.
func (p *ProfilePage) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = false
}

// Save sends update. On success the profile is replaced and edit mode ends; on
// failure edit mode is kept so the user can retry.
func (p *ProfilePage) Save(ctx context.Context, update *types.ProfileUpdate) error {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return ErrNotEditing
	}
	if p.saving {
		p.mu.Unlock()
		return ErrBusy
	}
	p.saving = true
	p.mu.Unlock()

	profile, err := p.svc.UpdateProfile(ctx, update)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.saving = false
	if err != nil {
		p.logger.Warn("failed to update profile", "error", err)
		return &Error{Message: api.MessageOr(err, updateProfileFallback), Cause: err}
	}
	if profile == nil && p.profile != nil {
		merged := *p.profile
		merged.Name = update.Name
		merged.Profile = update.Profile
		profile = &merged
	}
	p.profile = profile
	p.editing = false
	return nil
}
