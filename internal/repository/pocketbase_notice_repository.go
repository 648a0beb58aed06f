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

// Both notice listings order pinned first, then newest.
const noticeSort = "-pinned,-created"

// pocketbaseNoticeRepository implements NoticeRepository using PocketBase.
type pocketbaseNoticeRepository struct {
	app core.App
}

// NewPocketBaseNoticeRepository creates a new PocketBase notice repository.
func NewPocketBaseNoticeRepository(app core.App) NoticeRepository {
	return &pocketbaseNoticeRepository{app: app}
}

// buildPublicNoticeFilter always pins published = true; the tab collapses to
// an equality predicate on pinned. Search matches the title only.
func buildPublicNoticeFilter(filters NoticeFilters) (string, dbx.Params) {
	clauses := []string{"published = true"}
	params := dbx.Params{}

	switch filters.Tab {
	case domain.NoticeTabPinned:
		clauses = append(clauses, "pinned = true")
	case domain.NoticeTabNormal:
		clauses = append(clauses, "pinned = false")
	}

	if filters.Search != "" {
		clauses = append(clauses, "title ~ {:search}")
		params["search"] = filters.Search
	}

	return strings.Join(clauses, " && "), params
}

// buildAdminNoticeFilter has no implicit published clause; the admin chooses
// Y, N, or ALL.
func buildAdminNoticeFilter(filters AdminNoticeFilters) (string, dbx.Params) {
	var clauses []string
	params := dbx.Params{}

	switch filters.Published {
	case domain.PublishedYes:
		clauses = append(clauses, "published = true")
	case domain.PublishedNo:
		clauses = append(clauses, "published = false")
	}

	if filters.Search != "" {
		clauses = append(clauses, "title ~ {:search}")
		params["search"] = filters.Search
	}

	return strings.Join(clauses, " && "), params
}

// ListPublic retrieves published notices for the site.
func (r *pocketbaseNoticeRepository) ListPublic(_ context.Context, filters NoticeFilters) ([]*domain.Notice, error) {
	filter, params := buildPublicNoticeFilter(filters)

	records, err := r.app.FindRecordsByFilter(CollectionNotices, filter, noticeSort, 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return r.recordsToNotices(records), nil
}

// ListAdmin retrieves notices for the admin console.
func (r *pocketbaseNoticeRepository) ListAdmin(_ context.Context, filters AdminNoticeFilters) ([]*domain.Notice, error) {
	filter, params := buildAdminNoticeFilter(filters)

	records, err := r.app.FindRecordsByFilter(CollectionNotices, filter, noticeSort, 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return r.recordsToNotices(records), nil
}

// GetByID retrieves a notice by ID.
func (r *pocketbaseNoticeRepository) GetByID(_ context.Context, id string) (*domain.Notice, error) {
	record, err := r.app.FindRecordById(CollectionNotices, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notice by ID %s: %w", id, err)
	}
	return r.recordToNotice(record), nil
}

// Create inserts a new notice.
func (r *pocketbaseNoticeRepository) Create(_ context.Context, input *domain.NoticeInput) (*domain.Notice, error) {
	if err := input.ValidateForCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionNotices)
	if err != nil {
		return nil, fmt.Errorf("failed to find notices collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("title", *input.Title)
	if input.Content != nil {
		record.Set("content", *input.Content)
	}
	if input.Published != nil {
		record.Set("published", *input.Published)
	}
	if input.Pinned != nil {
		record.Set("pinned", *input.Pinned)
	}

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save notice record: %w", err)
	}
	return r.recordToNotice(record), nil
}

// Update applies a partial patch and refreshes the update timestamp.
func (r *pocketbaseNoticeRepository) Update(_ context.Context, id string, input *domain.NoticeInput) (*domain.Notice, error) {
	record, err := r.app.FindRecordById(CollectionNotices, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notice for update: %w", err)
	}

	if input.Title != nil {
		record.Set("title", *input.Title)
	}
	if input.Content != nil {
		record.Set("content", *input.Content)
	}
	if input.Published != nil {
		record.Set("published", *input.Published)
	}
	if input.Pinned != nil {
		record.Set("pinned", *input.Pinned)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update notice record: %w", err)
	}
	return r.recordToNotice(record), nil
}

// Delete hard-deletes a notice.
func (r *pocketbaseNoticeRepository) Delete(_ context.Context, id string) error {
	record, err := r.app.FindRecordById(CollectionNotices, id)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find notice for deletion: %w", err)
	}

	if err := r.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete notice record: %w", err)
	}
	return nil
}

func (r *pocketbaseNoticeRepository) recordToNotice(record *core.Record) *domain.Notice {
	return &domain.Notice{
		ID:        record.Id,
		Title:     record.GetString("title"),
		Content:   record.GetString("content"),
		Published: record.GetBool("published"),
		Pinned:    record.GetBool("pinned"),
		CreatedAt: record.GetDateTime("created").Time(),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}
}

func (r *pocketbaseNoticeRepository) recordsToNotices(records []*core.Record) []*domain.Notice {
	notices := make([]*domain.Notice, len(records))
	for i, record := range records {
		notices[i] = r.recordToNotice(record)
	}
	return notices
}
