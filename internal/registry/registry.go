// Package registry caches categories and their attribute schemas in memory.
// It backs attribute pickers and client-side checks of category references
// without refetching on every read. Loads are explicit: cache-only reads never
// trigger a fetch, which keeps load timing visible and testable.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
)

// CategoryService is the slice of the API client the registry depends on.
// The interface enables mocking in tests.
type CategoryService interface {
	ListCategories(ctx context.Context, creds escrow.Credentials) ([]escrow.Category, error)
	ListAttributes(ctx context.Context, creds escrow.Credentials, categoryID string) ([]escrow.Attribute, error)
	CreateAttribute(ctx context.Context, creds escrow.Credentials, categoryID string, payload escrow.AttributePayload) (*escrow.Attribute, error)
	UpdateAttribute(ctx context.Context, creds escrow.Credentials, attributeID string, update escrow.AttributeUpdate) (*escrow.Attribute, error)
	DeleteAttribute(ctx context.Context, creds escrow.Credentials, attributeID string) error
}

// AttributeWithCategory pairs an attribute definition with its owning
// category's name for cross-category listings.
type AttributeWithCategory struct {
	escrow.Attribute
	CategoryName string
}

// Registry is an in-memory cache of categories and per-category attribute
// schemas. It is safe for concurrent use: readers always see the last
// completed snapshot, and refreshes replace cached slices atomically rather
// than mutating them in place.
type Registry struct {
	svc CategoryService
	log zerolog.Logger

	mu               sync.RWMutex
	categories       []escrow.Category
	categoriesLoaded bool
	attributes       map[string][]escrow.Attribute
}

// New creates an empty registry backed by svc.
func New(svc CategoryService, log zerolog.Logger) *Registry {
	return &Registry{
		svc:        svc,
		log:        log,
		attributes: make(map[string][]escrow.Attribute),
	}
}

// LoadCategories fetches the full category list and replaces the cached
// snapshot. Errors are propagated unchanged; the previous snapshot stays
// intact on failure.
func (r *Registry) LoadCategories(ctx context.Context, creds escrow.Credentials) ([]escrow.Category, error) {
	categories, err := r.svc.ListCategories(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("LoadCategories: %w", err)
	}

	r.mu.Lock()
	r.categories = categories
	r.categoriesLoaded = true
	r.mu.Unlock()

	return copyCategories(categories), nil
}

// Categories is a cache-only read of the last loaded category list. It
// returns an empty slice when LoadCategories has never succeeded.
func (r *Registry) Categories() []escrow.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyCategories(r.categories)
}

// Category looks up one cached category by id.
func (r *Registry) Category(id string) (escrow.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.ID == id {
			return category, true
		}
	}
	return escrow.Category{}, false
}

// LoadAttributes fetches the attribute schema for one category and caches it.
// A category with zero attributes is cached as an empty schema, not an error.
func (r *Registry) LoadAttributes(ctx context.Context, creds escrow.Credentials, categoryID string) ([]escrow.Attribute, error) {
	attributes, err := r.svc.ListAttributes(ctx, creds, categoryID)
	if err != nil {
		return nil, fmt.Errorf("LoadAttributes: %w", err)
	}
	if attributes == nil {
		attributes = []escrow.Attribute{}
	}

	r.mu.Lock()
	r.attributes[categoryID] = attributes
	r.mu.Unlock()

	return copyAttributes(attributes), nil
}

// AttributesFor is a cache-only read of one category's schema. It returns an
// empty slice when the category has never been loaded; callers trigger
// LoadAttributes explicitly.
func (r *Registry) AttributesFor(categoryID string) []escrow.Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyAttributes(r.attributes[categoryID])
}

// Invalidate drops the cached attribute schema for the given categories, or
// every cached schema when no ids are given.
func (r *Registry) Invalidate(categoryIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(categoryIDs) == 0 {
		r.attributes = make(map[string][]escrow.Attribute)
		return
	}
	for _, id := range categoryIDs {
		delete(r.attributes, id)
	}
}

// CreateAttribute adds an attribute definition to a category and invalidates
// that category's cached schema. Invalidation is part of this contract so a
// subsequent AttributesFor never serves the pre-mutation snapshot.
func (r *Registry) CreateAttribute(ctx context.Context, creds escrow.Credentials, categoryID string, payload escrow.AttributePayload) (*escrow.Attribute, error) {
	attribute, err := r.svc.CreateAttribute(ctx, creds, categoryID, payload)
	if err != nil {
		return nil, fmt.Errorf("CreateAttribute: %w", err)
	}

	r.Invalidate(categoryID)
	return attribute, nil
}

// UpdateAttribute applies a partial update to an attribute definition and
// invalidates its category's cached schema.
func (r *Registry) UpdateAttribute(ctx context.Context, creds escrow.Credentials, categoryID, attributeID string, update escrow.AttributeUpdate) (*escrow.Attribute, error) {
	attribute, err := r.svc.UpdateAttribute(ctx, creds, attributeID, update)
	if err != nil {
		return nil, fmt.Errorf("UpdateAttribute: %w", err)
	}

	r.Invalidate(categoryID)
	return attribute, nil
}

// DeleteAttribute removes an attribute definition and invalidates its
// category's cached schema.
func (r *Registry) DeleteAttribute(ctx context.Context, creds escrow.Credentials, categoryID, attributeID string) error {
	if err := r.svc.DeleteAttribute(ctx, creds, attributeID); err != nil {
		return fmt.Errorf("DeleteAttribute: %w", err)
	}

	r.Invalidate(categoryID)
	return nil
}

// AllAttributes lists every attribute definition across all categories,
// loading the category list first when it is not cached. A schema fetch
// failure for one category degrades to an empty list for that category so a
// single broken schema does not block browsing the rest.
func (r *Registry) AllAttributes(ctx context.Context, creds escrow.Credentials) ([]AttributeWithCategory, error) {
	r.mu.RLock()
	loaded := r.categoriesLoaded
	r.mu.RUnlock()

	if !loaded {
		if _, err := r.LoadCategories(ctx, creds); err != nil {
			return nil, fmt.Errorf("AllAttributes: %w", err)
		}
	}

	var all []AttributeWithCategory
	for _, category := range r.Categories() {
		attributes, err := r.LoadAttributes(ctx, creds, category.ID)
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("category_id", category.ID).
				Msg("skipping category with failed attribute fetch")
			continue
		}
		for _, attribute := range attributes {
			all = append(all, AttributeWithCategory{Attribute: attribute, CategoryName: category.Name})
		}
	}
	return all, nil
}

// copyCategories returns a defensive copy so callers cannot mutate the cache.
func copyCategories(src []escrow.Category) []escrow.Category {
	out := make([]escrow.Category, len(src))
	copy(out, src)
	return out
}

func copyAttributes(src []escrow.Attribute) []escrow.Attribute {
	out := make([]escrow.Attribute, len(src))
	copy(out, src)
	return out
}
