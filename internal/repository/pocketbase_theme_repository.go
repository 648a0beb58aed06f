package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseThemeRepository implements ThemeRepository using PocketBase.
type pocketbaseThemeRepository struct {
	app core.App
}

// NewPocketBaseThemeRepository creates a new PocketBase theme repository.
func NewPocketBaseThemeRepository(app core.App) ThemeRepository {
	return &pocketbaseThemeRepository{app: app}
}

// ListThemes retrieves themes ordered by sort_order ascending only.
func (r *pocketbaseThemeRepository) ListThemes(_ context.Context) ([]*domain.Theme, error) {
	records, err := r.app.FindRecordsByFilter(CollectionThemes, "", "sort_order", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	themes := make([]*domain.Theme, len(records))
	for i, record := range records {
		themes[i] = r.recordToTheme(record)
	}
	return themes, nil
}

// GetTheme retrieves a theme by ID.
func (r *pocketbaseThemeRepository) GetTheme(_ context.Context, id string) (*domain.Theme, error) {
	record, err := r.app.FindRecordById(CollectionThemes, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find theme by ID %s: %w", id, err)
	}
	return r.recordToTheme(record), nil
}

// CreateTheme inserts a new theme.
func (r *pocketbaseThemeRepository) CreateTheme(_ context.Context, input *domain.ThemeInput) (*domain.Theme, error) {
	if input.Name == nil || *input.Name == "" {
		return nil, domain.NewValidationError("MISSING_NAME", "Theme name is required", nil)
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionThemes)
	if err != nil {
		return nil, fmt.Errorf("failed to find themes collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", *input.Name)
	record.Set("slug", themeSlug(input, *input.Name))
	if input.SortOrder != nil {
		record.Set("sort_order", *input.SortOrder)
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	record.Set("active", active)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save theme record: %w", err)
	}
	return r.recordToTheme(record), nil
}

// UpdateTheme applies a partial patch and refreshes the update timestamp.
func (r *pocketbaseThemeRepository) UpdateTheme(_ context.Context, id string, input *domain.ThemeInput) (*domain.Theme, error) {
	record, err := r.app.FindRecordById(CollectionThemes, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find theme for update: %w", err)
	}

	if input.Name != nil {
		record.Set("name", *input.Name)
	}
	if input.Slug != nil {
		record.Set("slug", *input.Slug)
	}
	if input.SortOrder != nil {
		record.Set("sort_order", *input.SortOrder)
	}
	if input.Active != nil {
		record.Set("active", *input.Active)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update theme record: %w", err)
	}
	return r.recordToTheme(record), nil
}

// DeleteTheme deletes a theme. Areas and products keep their references;
// no cascade is performed.
func (r *pocketbaseThemeRepository) DeleteTheme(_ context.Context, id string) error {
	record, err := r.app.FindRecordById(CollectionThemes, id)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find theme for deletion: %w", err)
	}

	if err := r.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete theme record: %w", err)
	}
	return nil
}

// ListAreas retrieves areas ordered by (theme, sort_order, name) ascending.
func (r *pocketbaseThemeRepository) ListAreas(_ context.Context, filters AreaFilters) ([]*domain.Area, error) {
	var clauses []string
	params := dbx.Params{}

	if filters.ThemeID != "" {
		clauses = append(clauses, "theme = {:theme}")
		params["theme"] = filters.ThemeID
	}
	if filters.ActiveOnly {
		clauses = append(clauses, "active = true")
	}

	filter := strings.Join(clauses, " && ")
	records, err := r.app.FindRecordsByFilter(CollectionAreas, filter, "theme,sort_order,name", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}

	areas := make([]*domain.Area, len(records))
	for i, record := range records {
		areas[i] = r.recordToArea(record)
	}
	return areas, nil
}

// CreateArea inserts a new area under a theme.
func (r *pocketbaseThemeRepository) CreateArea(_ context.Context, input *domain.AreaInput) (*domain.Area, error) {
	if input.ThemeID == nil || *input.ThemeID == "" {
		return nil, domain.NewValidationError("MISSING_THEME", "Area theme is required", nil)
	}
	if input.Name == nil || *input.Name == "" {
		return nil, domain.NewValidationError("MISSING_NAME", "Area name is required", nil)
	}

	// Area.theme must reference an existing theme at creation time.
	if _, err := r.app.FindRecordById(CollectionThemes, *input.ThemeID); err != nil {
		if IsNotFound(err) {
			return nil, domain.NewValidationError("UNKNOWN_THEME", "Referenced theme does not exist", nil)
		}
		return nil, fmt.Errorf("failed to verify theme reference: %w", err)
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to find areas collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("theme", *input.ThemeID)
	record.Set("name", *input.Name)
	if input.Slug != nil {
		record.Set("slug", *input.Slug)
	} else {
		record.Set("slug", slugify(*input.Name))
	}
	if input.SortOrder != nil {
		record.Set("sort_order", *input.SortOrder)
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	record.Set("active", active)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save area record: %w", err)
	}
	return r.recordToArea(record), nil
}

// UpdateArea applies a partial patch and refreshes the update timestamp.
func (r *pocketbaseThemeRepository) UpdateArea(_ context.Context, id string, input *domain.AreaInput) (*domain.Area, error) {
	record, err := r.app.FindRecordById(CollectionAreas, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find area for update: %w", err)
	}

	if input.ThemeID != nil {
		record.Set("theme", *input.ThemeID)
	}
	if input.Name != nil {
		record.Set("name", *input.Name)
	}
	if input.Slug != nil {
		record.Set("slug", *input.Slug)
	}
	if input.SortOrder != nil {
		record.Set("sort_order", *input.SortOrder)
	}
	if input.Active != nil {
		record.Set("active", *input.Active)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update area record: %w", err)
	}
	return r.recordToArea(record), nil
}

// DeleteArea deletes an area without touching linked products.
func (r *pocketbaseThemeRepository) DeleteArea(_ context.Context, id string) error {
	record, err := r.app.FindRecordById(CollectionAreas, id)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find area for deletion: %w", err)
	}

	if err := r.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete area record: %w", err)
	}
	return nil
}

func (r *pocketbaseThemeRepository) recordToTheme(record *core.Record) *domain.Theme {
	return &domain.Theme{
		ID:        record.Id,
		Name:      record.GetString("name"),
		Slug:      record.GetString("slug"),
		SortOrder: record.GetInt("sort_order"),
		Active:    record.GetBool("active"),
		CreatedAt: record.GetDateTime("created").Time(),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}
}

func (r *pocketbaseThemeRepository) recordToArea(record *core.Record) *domain.Area {
	return &domain.Area{
		ID:        record.Id,
		ThemeID:   record.GetString("theme"),
		Name:      record.GetString("name"),
		Slug:      record.GetString("slug"),
		SortOrder: record.GetInt("sort_order"),
		Active:    record.GetBool("active"),
		CreatedAt: record.GetDateTime("created").Time(),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}
}

func themeSlug(input *domain.ThemeInput, name string) string {
	if input.Slug != nil && *input.Slug != "" {
		return *input.Slug
	}
	return slugify(name)
}

// slugify derives a URL-safe identifier for hierarchical catalog browsing.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
