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

// pocketbaseProductRepository implements ProductRepository using PocketBase.
type pocketbaseProductRepository struct {
	app core.App
}

// NewPocketBaseProductRepository creates a new PocketBase product repository.
func NewPocketBaseProductRepository(app core.App) ProductRepository {
	return &pocketbaseProductRepository{app: app}
}

// buildProductFilter composes the listing filter expression. Search matches
// title OR subtitle as a case-insensitive substring; region equality is
// skipped for the "all" sentinel.
func buildProductFilter(filters ProductFilters) (string, dbx.Params) {
	var clauses []string
	params := dbx.Params{}

	if filters.Search != "" {
		clauses = append(clauses, "(title ~ {:search} || subtitle ~ {:search})")
		params["search"] = filters.Search
	}
	if filters.Region != "" && filters.Region != RegionAll {
		clauses = append(clauses, "region = {:region}")
		params["region"] = filters.Region
	}
	if filters.ThemeID != "" {
		clauses = append(clauses, "theme = {:theme}")
		params["theme"] = filters.ThemeID
	}
	if len(filters.Status) > 0 {
		var statusClauses []string
		for i, s := range filters.Status {
			key := fmt.Sprintf("status%d", i)
			statusClauses = append(statusClauses, fmt.Sprintf("status = {:%s}", key))
			params[key] = string(s)
		}
		clauses = append(clauses, "("+strings.Join(statusClauses, " || ")+")")
	}

	return strings.Join(clauses, " && "), params
}

// List retrieves products ordered by most-recently-updated first. Ties keep
// backend-dependent order; there is no secondary sort key.
func (r *pocketbaseProductRepository) List(ctx context.Context, filters ProductFilters) ([]*domain.Product, error) {
	filter, params := buildProductFilter(filters)

	limit := filters.Limit
	if limit <= 0 {
		limit = 0 // unlimited
	}

	records, err := r.app.FindRecordsByFilter(CollectionProducts, filter, "-updated", limit, filters.Offset, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domain.Product, len(records))
	for i, record := range records {
		products[i] = r.recordToProduct(record)
	}
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *pocketbaseProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}

	record, err := r.app.FindRecordById(CollectionProducts, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", id, err)
	}

	return r.recordToProduct(record), nil
}

// Create inserts a new product.
func (r *pocketbaseProductRepository) Create(_ context.Context, input *domain.ProductInput) (*domain.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	input.Normalize()

	collection, err := r.app.FindCollectionByNameOrId(CollectionProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products collection: %w", err)
	}

	record := core.NewRecord(collection)
	r.applyInput(record, input)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save product record: %w", err)
	}

	return r.recordToProduct(record), nil
}

// Update replaces all editable fields of an existing product.
func (r *pocketbaseProductRepository) Update(_ context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	input.Normalize()

	record, err := r.app.FindRecordById(CollectionProducts, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}

	r.applyInput(record, input)
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update product record: %w", err)
	}

	return r.recordToProduct(record), nil
}

// Delete hard-deletes a product. Deleting an absent row is success: the
// backend reported no rows affected without erroring.
func (r *pocketbaseProductRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("product ID cannot be empty")
	}

	record, err := r.app.FindRecordById(CollectionProducts, id)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find product for deletion: %w", err)
	}

	if err := r.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete product record: %w", err)
	}
	return nil
}

// applyInput writes the editable field set onto the record. The thumbnail is
// stored as whichever of {path, url} was supplied, preferring path, and never
// as null; the column carries a NOT NULL constraint.
func (r *pocketbaseProductRepository) applyInput(record *core.Record, input *domain.ProductInput) {
	record.Set("title", input.Title)
	record.Set("subtitle", input.Subtitle)
	record.Set("region", input.Region)
	record.Set("nights", input.Nights)
	record.Set("days", input.Days)
	record.Set("status", string(input.Status))
	record.Set("price_text", input.PriceText)
	record.Set("description", input.Description)
	record.Set("thumbnail_ref", input.ThumbnailReference())
	record.Set("images", input.Images)
	record.Set("included", input.Included)
	record.Set("excluded", input.Excluded)
	record.Set("notices", input.Notices)
	record.Set("itinerary", input.Itinerary)
	record.Set("departures", input.Departures)
	record.Set("theme", input.ThemeID)
}

// recordToProduct converts a backend record to a domain.Product.
func (r *pocketbaseProductRepository) recordToProduct(record *core.Record) *domain.Product {
	product := &domain.Product{
		ID:           record.Id,
		Title:        record.GetString("title"),
		Subtitle:     record.GetString("subtitle"),
		Region:       record.GetString("region"),
		Nights:       record.GetInt("nights"),
		Days:         record.GetInt("days"),
		Status:       domain.ProductStatus(record.GetString("status")),
		PriceText:    record.GetString("price_text"),
		Description:  record.GetString("description"),
		ThumbnailRef: record.GetString("thumbnail_ref"),
		ThemeID:      record.GetString("theme"),
		CreatedAt:    record.GetDateTime("created").Time(),
		UpdatedAt:    record.GetDateTime("updated").Time(),
	}

	if err := record.UnmarshalJSONField("images", &product.Images); err != nil {
		product.Images = nil
	}
	if err := record.UnmarshalJSONField("included", &product.Included); err != nil {
		product.Included = nil
	}
	if err := record.UnmarshalJSONField("excluded", &product.Excluded); err != nil {
		product.Excluded = nil
	}
	if err := record.UnmarshalJSONField("notices", &product.Notices); err != nil {
		product.Notices = nil
	}
	if err := record.UnmarshalJSONField("itinerary", &product.Itinerary); err != nil {
		product.Itinerary = nil
	}
	if err := record.UnmarshalJSONField("departures", &product.Departures); err != nil {
		product.Departures = nil
	}

	return product
}
