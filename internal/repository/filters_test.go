package repository

import (
	"testing"

	"github.com/pocketbase/dbx"

	"tourvia/internal/domain"
)

func TestBuildProductFilter(t *testing.T) {
	tests := []struct {
		name       string
		filters    ProductFilters
		wantFilter string
		wantParams map[string]interface{}
	}{
		{
			name:       "empty filters",
			filters:    ProductFilters{},
			wantFilter: "",
			wantParams: map[string]interface{}{},
		},
		{
			name:       "search matches title or subtitle",
			filters:    ProductFilters{Search: "jeju"},
			wantFilter: "(title ~ {:search} || subtitle ~ {:search})",
			wantParams: map[string]interface{}{"search": "jeju"},
		},
		{
			name:       "region exact match",
			filters:    ProductFilters{Region: "europe"},
			wantFilter: "region = {:region}",
			wantParams: map[string]interface{}{"region": "europe"},
		},
		{
			name:       "all sentinel skips region clause",
			filters:    ProductFilters{Region: RegionAll},
			wantFilter: "",
			wantParams: map[string]interface{}{},
		},
		{
			name:       "status restriction",
			filters:    ProductFilters{Status: []domain.ProductStatus{domain.ProductPublished}},
			wantFilter: "(status = {:status0})",
			wantParams: map[string]interface{}{"status0": "PUBLISHED"},
		},
		{
			name: "combined clauses",
			filters: ProductFilters{
				Search: "tour",
				Region: "asia",
				Status: []domain.ProductStatus{domain.ProductPublished, domain.ProductHidden},
			},
			wantFilter: "(title ~ {:search} || subtitle ~ {:search}) && region = {:region} && (status = {:status0} || status = {:status1})",
			wantParams: map[string]interface{}{
				"search":  "tour",
				"region":  "asia",
				"status0": "PUBLISHED",
				"status1": "HIDDEN",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, params := buildProductFilter(tt.filters)
			if filter != tt.wantFilter {
				t.Errorf("filter = %q, want %q", filter, tt.wantFilter)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for key, want := range tt.wantParams {
				if params[key] != want {
					t.Errorf("params[%q] = %v, want %v", key, params[key], want)
				}
			}
		})
	}
}

func TestBuildPublicNoticeFilter(t *testing.T) {
	tests := []struct {
		name       string
		filters    NoticeFilters
		wantFilter string
	}{
		{
			name:       "default tab only restricts published",
			filters:    NoticeFilters{},
			wantFilter: "published = true",
		},
		{
			name:       "pinned tab",
			filters:    NoticeFilters{Tab: domain.NoticeTabPinned},
			wantFilter: "published = true && pinned = true",
		},
		{
			name:       "normal tab",
			filters:    NoticeFilters{Tab: domain.NoticeTabNormal},
			wantFilter: "published = true && pinned = false",
		},
		{
			name:       "search restricted to title",
			filters:    NoticeFilters{Search: "holiday"},
			wantFilter: "published = true && title ~ {:search}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, _ := buildPublicNoticeFilter(tt.filters)
			if filter != tt.wantFilter {
				t.Errorf("filter = %q, want %q", filter, tt.wantFilter)
			}
		})
	}
}

func TestBuildAdminNoticeFilter(t *testing.T) {
	tests := []struct {
		name       string
		filters    AdminNoticeFilters
		wantFilter string
	}{
		{
			name:       "ALL imposes no published clause",
			filters:    AdminNoticeFilters{Published: domain.PublishedAll},
			wantFilter: "",
		},
		{
			name:       "published only",
			filters:    AdminNoticeFilters{Published: domain.PublishedYes},
			wantFilter: "published = true",
		},
		{
			name:       "drafts only",
			filters:    AdminNoticeFilters{Published: domain.PublishedNo},
			wantFilter: "published = false",
		},
		{
			name:       "draft search",
			filters:    AdminNoticeFilters{Published: domain.PublishedNo, Search: "promo"},
			wantFilter: "published = false && title ~ {:search}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, _ := buildAdminNoticeFilter(tt.filters)
			if filter != tt.wantFilter {
				t.Errorf("filter = %q, want %q", filter, tt.wantFilter)
			}
		})
	}
}

func TestBuildInquiryFilter(t *testing.T) {
	filter, params, countExprs := buildInquiryFilter(InquiryFilters{
		Status: []domain.InquiryStatus{domain.InquiryNew, domain.InquiryDone},
		Search: "refund",
	})

	wantFilter := "(status = {:status0} || status = {:status1}) && (title ~ {:search} || content ~ {:search})"
	if filter != wantFilter {
		t.Errorf("filter = %q, want %q", filter, wantFilter)
	}
	if params["status0"] != "NEW" || params["status1"] != "DONE" || params["search"] != "refund" {
		t.Errorf("unexpected params: %v", params)
	}
	// The count expressions must mirror the page filter so totals and pages
	// never disagree.
	if len(countExprs) != 2 {
		t.Errorf("countExprs = %d expressions, want 2", len(countExprs))
	}
}

func TestBuildAdminBookingFilter(t *testing.T) {
	tests := []struct {
		name       string
		filters    AdminBookingFilters
		wantFilter string
		wantExprs  int
	}{
		{
			name:       "no status filter counts every row",
			filters:    AdminBookingFilters{Limit: 50},
			wantFilter: "",
			wantExprs:  0,
		},
		{
			name:       "status narrows page and count alike",
			filters:    AdminBookingFilters{Status: domain.BookingRequested},
			wantFilter: "status = {:status}",
			wantExprs:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, params, countExprs := buildAdminBookingFilter(tt.filters)
			if filter != tt.wantFilter {
				t.Errorf("filter = %q, want %q", filter, tt.wantFilter)
			}
			// The count expressions must mirror the page filter so the
			// reported total matches the rows the pages walk through.
			if len(countExprs) != tt.wantExprs {
				t.Errorf("countExprs = %d expressions, want %d", len(countExprs), tt.wantExprs)
			}
			if tt.filters.Status != "" {
				if params["status"] != string(tt.filters.Status) {
					t.Errorf("params[status] = %v, want %v", params["status"], tt.filters.Status)
				}
				expr, ok := countExprs[0].(dbx.HashExp)
				if !ok {
					t.Fatalf("countExprs[0] is %T, want dbx.HashExp", countExprs[0])
				}
				if expr["status"] != string(tt.filters.Status) {
					t.Errorf("count expression status = %v, want %v", expr["status"], tt.filters.Status)
				}
			}
		})
	}
}
