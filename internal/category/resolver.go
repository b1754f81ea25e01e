// Package category resolves the parent → subcategory cascade used by the job form.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joblify/employer-console/internal/types"
)

// Fetcher loads categories from the API.
type Fetcher interface {
	ParentCategories(ctx context.Context) ([]types.Category, error)
	Subcategories(ctx context.Context, parentID string) ([]types.Category, error)
}

// Resolver holds the category selection of one form.
//
// Changing the parent clears the subcategory before the subcategory fetch starts.
// A failed fetch leaves the option set empty; the parent alone is still a valid
// selection. Responses for a parent that is no longer selected are dropped.
type Resolver struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu            sync.Mutex
	parents       []types.Category
	parentID      string
	subcategoryID string
	options       []types.Category
	pending       bool
	generation    uint64
}

// NewResolver creates a resolver backed by fetcher.
func NewResolver(fetcher Fetcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// LoadParents fetches the top-level categories. On failure the parent list is empty
// and the error is logged and returned.
func (r *Resolver) LoadParents(ctx context.Context) error {
	parents, err := r.fetcher.ParentCategories(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.logger.Warn("failed to fetch parent categories", "error", err)
		r.parents = nil
		return fmt.Errorf("failed to fetch parent categories: %w", err)
	}
	r.parents = parents
	return nil
}

// SelectParent selects parentID and fetches its subcategories. The previous
// subcategory selection and options are cleared before the fetch is issued.
// A fetch error is logged and returned; the selection stays usable.
func (r *Resolver) SelectParent(ctx context.Context, parentID string) error {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.parentID = parentID
	r.subcategoryID = ""
	r.options = nil
	r.pending = parentID != ""
	r.mu.Unlock()

	if parentID == "" {
		return nil
	}

	subs, err := r.fetcher.Subcategories(ctx, parentID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		// superseded by a later selection
		return nil
	}
	r.pending = false
	if err != nil {
		r.logger.Warn("failed to fetch subcategories", "parent_id", parentID, "error", err)
		r.options = nil
		return fmt.Errorf("failed to fetch subcategories for %s: %w", parentID, err)
	}
	r.options = subs
	return nil
}

// SelectSubcategory selects id, which must be one of the current options.
// An empty id clears the subcategory.
func (r *Resolver) SelectSubcategory(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		r.subcategoryID = ""
		return nil
	}
	if r.parentID == "" {
		return fmt.Errorf("select a parent category first")
	}
	for _, c := range r.options {
		if c.ID == id {
			r.subcategoryID = id
			return nil
		}
	}
	return fmt.Errorf("category %q is not a subcategory of %q", id, r.parentID)
}

// Restore re-establishes a stored selection, as when editing an existing job.
// The stored subcategory is kept even if it is missing from the fetched options.
func (r *Resolver) Restore(ctx context.Context, parentID, subcategoryID string) error {
	err := r.SelectParent(ctx, parentID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parentID == parentID && parentID != "" {
		r.subcategoryID = subcategoryID
	}
	return err
}

// Reset clears the selection. Loaded parents are kept.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.parentID = ""
	r.subcategoryID = ""
	r.options = nil
	r.pending = false
}

// Selection returns the selected parent and subcategory ids.
func (r *Resolver) Selection() (parentID, subcategoryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parentID, r.subcategoryID
}

// Options returns the subcategories of the selected parent.
func (r *Resolver) Options() []types.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Category(nil), r.options...)
}

// Parents returns the loaded top-level categories.
func (r *Resolver) Parents() []types.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Category(nil), r.parents...)
}

// Pending reports whether a subcategory fetch is outstanding.
func (r *Resolver) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}
