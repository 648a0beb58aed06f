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

// pocketbaseInquiryRepository implements InquiryRepository using PocketBase.
type pocketbaseInquiryRepository struct {
	app core.App
}

// NewPocketBaseInquiryRepository creates a new PocketBase inquiry repository.
func NewPocketBaseInquiryRepository(app core.App) InquiryRepository {
	return &pocketbaseInquiryRepository{app: app}
}

func buildInquiryFilter(filters InquiryFilters) (string, dbx.Params, []dbx.Expression) {
	var clauses []string
	params := dbx.Params{}
	var countExprs []dbx.Expression

	if len(filters.Status) > 0 {
		statusClauses := make([]string, len(filters.Status))
		statusValues := make([]interface{}, len(filters.Status))
		for i, status := range filters.Status {
			key := fmt.Sprintf("status%d", i)
			statusClauses[i] = fmt.Sprintf("status = {:%s}", key)
			params[key] = string(status)
			statusValues[i] = string(status)
		}
		clauses = append(clauses, "("+strings.Join(statusClauses, " || ")+")")
		countExprs = append(countExprs, dbx.In("status", statusValues...))
	}

	if filters.Search != "" {
		clauses = append(clauses, "(title ~ {:search} || content ~ {:search})")
		params["search"] = filters.Search
		countExprs = append(countExprs, dbx.Or(
			dbx.Like("title", filters.Search),
			dbx.Like("content", filters.Search),
		))
	}

	return strings.Join(clauses, " && "), params, countExprs
}

// Create inserts a new inquiry. The user ID is empty for anonymous submissions.
func (r *pocketbaseInquiryRepository) Create(_ context.Context, userID string, req *domain.CreateInquiryRequest) (*domain.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionInquiries)
	if err != nil {
		return nil, fmt.Errorf("failed to find inquiries collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", req.Name)
	record.Set("email", req.Email)
	record.Set("phone", req.Phone)
	record.Set("title", req.Title)
	record.Set("content", req.Content)
	record.Set("user", userID)
	record.Set("status", string(domain.InquiryNew))

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save inquiry record: %w", err)
	}
	return r.recordToInquiry(record), nil
}

// GetByID retrieves an inquiry by ID.
func (r *pocketbaseInquiryRepository) GetByID(_ context.Context, id string) (*domain.Inquiry, error) {
	record, err := r.app.FindRecordById(CollectionInquiries, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry by ID %s: %w", id, err)
	}
	return r.recordToInquiry(record), nil
}

// ListAdmin retrieves a page of inquiries plus the exact total for the filter.
func (r *pocketbaseInquiryRepository) ListAdmin(_ context.Context, filters InquiryFilters) ([]*domain.Inquiry, int, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	filter, params, countExprs := buildInquiryFilter(filters)

	records, err := r.app.FindRecordsByFilter(CollectionInquiries, filter, "-created", limit, filters.Offset, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}

	total, err := r.app.CountRecords(CollectionInquiries, countExprs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	inquiries := make([]*domain.Inquiry, len(records))
	for i, record := range records {
		inquiries[i] = r.recordToInquiry(record)
	}
	return inquiries, int(total), nil
}

// PatchAdmin applies a status/memo patch. Title and content are immutable.
func (r *pocketbaseInquiryRepository) PatchAdmin(_ context.Context, id string, patch *domain.AdminInquiryPatch) (*domain.Inquiry, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record, err := r.app.FindRecordById(CollectionInquiries, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry for update: %w", err)
	}

	if patch.Status != nil {
		record.Set("status", string(*patch.Status))
	}
	if patch.AdminMemo != nil {
		record.Set("admin_memo", *patch.AdminMemo)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update inquiry record: %w", err)
	}
	return r.recordToInquiry(record), nil
}

func (r *pocketbaseInquiryRepository) recordToInquiry(record *core.Record) *domain.Inquiry {
	return &domain.Inquiry{
		ID:        record.Id,
		UserID:    record.GetString("user"),
		Name:      record.GetString("name"),
		Email:     record.GetString("email"),
		Phone:     record.GetString("phone"),
		Title:     record.GetString("title"),
		Content:   record.GetString("content"),
		Status:    domain.InquiryStatus(record.GetString("status")),
		AdminMemo: record.GetString("admin_memo"),
		CreatedAt: record.GetDateTime("created").Time(),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}
}
