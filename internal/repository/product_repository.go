package repository

import (
	"context"

	"tourvia/internal/domain"
)

// RegionAll is the sentinel region value that skips region filtering.
const RegionAll = "all"

// ProductRepository defines data access operations for catalog products.
type ProductRepository interface {
	// List retrieves products ordered by most-recently-updated first.
	List(ctx context.Context, filters ProductFilters) ([]*domain.Product, error)

	// GetByID retrieves a product by its ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Create inserts a new product from the editable field set.
	Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)

	// Update replaces all editable fields of an existing product.
	Update(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error)

	// Delete hard-deletes a product. A missing row is treated as success.
	Delete(ctx context.Context, id string) error
}

// ProductFilters provides filtering options for product listings. Filters are
// explicit parameters threaded through each query; there is no shared filter
// state between the public and admin surfaces.
type ProductFilters struct {
	// Search matches title OR subtitle, case-insensitive substring.
	Search string `json:"search,omitempty"`
	// Region is an exact match, skipped when empty or RegionAll.
	Region string `json:"region,omitempty"`
	// Status restricts to the given statuses; empty means all statuses.
	Status []domain.ProductStatus `json:"status,omitempty"`
	// ThemeID restricts to products linked to a theme.
	ThemeID string `json:"theme_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// ThemeRepository defines data access for the two-level theme/area taxonomy.
type ThemeRepository interface {
	// ListThemes retrieves themes ordered by sort_order ascending.
	ListThemes(ctx context.Context) ([]*domain.Theme, error)

	// GetTheme retrieves a theme by ID. Returns ErrNotFound when absent.
	GetTheme(ctx context.Context, id string) (*domain.Theme, error)

	// CreateTheme inserts a new theme.
	CreateTheme(ctx context.Context, input *domain.ThemeInput) (*domain.Theme, error)

	// UpdateTheme applies a partial patch and refreshes the update timestamp.
	UpdateTheme(ctx context.Context, id string, input *domain.ThemeInput) (*domain.Theme, error)

	// DeleteTheme deletes a theme. Dependent areas and products are left with
	// a dangling reference; no cascade is performed.
	DeleteTheme(ctx context.Context, id string) error

	// ListAreas retrieves areas ordered by (theme, sort_order, name).
	ListAreas(ctx context.Context, filters AreaFilters) ([]*domain.Area, error)

	// CreateArea inserts a new area under a theme.
	CreateArea(ctx context.Context, input *domain.AreaInput) (*domain.Area, error)

	// UpdateArea applies a partial patch and refreshes the update timestamp.
	UpdateArea(ctx context.Context, id string, input *domain.AreaInput) (*domain.Area, error)

	// DeleteArea deletes an area without touching linked products.
	DeleteArea(ctx context.Context, id string) error
}

// AreaFilters provides filtering options for area listings.
type AreaFilters struct {
	ThemeID    string `json:"theme_id,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
}
