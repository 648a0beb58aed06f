package repository

import (
	"context"

	"tourvia/internal/domain"
)

// NoticeRepository defines data access for site notices. The public and
// admin listings are separate contracts: the public one always filters to
// published rows, the admin one exposes a Y/N/ALL published filter instead.
type NoticeRepository interface {
	// ListPublic retrieves published notices, pinned first then newest.
	ListPublic(ctx context.Context, filters NoticeFilters) ([]*domain.Notice, error)

	// ListAdmin retrieves notices for the admin console, pinned first then
	// newest, across publish states unless filtered.
	ListAdmin(ctx context.Context, filters AdminNoticeFilters) ([]*domain.Notice, error)

	GetByID(ctx context.Context, id string) (*domain.Notice, error)
	Create(ctx context.Context, input *domain.NoticeInput) (*domain.Notice, error)
	Update(ctx context.Context, id string, input *domain.NoticeInput) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
}

// NoticeFilters provides the public listing's tab and title search.
type NoticeFilters struct {
	Tab    domain.NoticeTab `json:"tab,omitempty"`
	Search string           `json:"search,omitempty"`
}

// AdminNoticeFilters provides the admin listing's published filter and
// title search.
type AdminNoticeFilters struct {
	Published domain.PublishedFilter `json:"published,omitempty"`
	Search    string                 `json:"search,omitempty"`
}

// InquiryRepository defines data access for contact inquiries. Title and
// content are immutable after creation.
type InquiryRepository interface {
	// Create inserts an inquiry. userID may be empty for anonymous senders.
	Create(ctx context.Context, userID string, req *domain.CreateInquiryRequest) (*domain.Inquiry, error)

	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)

	// ListAdmin retrieves a page of inquiries with an exact total count.
	ListAdmin(ctx context.Context, filters InquiryFilters) ([]*domain.Inquiry, int, error)

	// PatchAdmin applies a partial update of status and admin memo only.
	PatchAdmin(ctx context.Context, id string, patch *domain.AdminInquiryPatch) (*domain.Inquiry, error)
}

// InquiryFilters provides filtering and pagination for the admin inquiry
// listing.
type InquiryFilters struct {
	// Status restricts to the given statuses; empty means all statuses.
	Status []domain.InquiryStatus `json:"status,omitempty"`
	// Search matches title OR content, case-insensitive substring.
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
