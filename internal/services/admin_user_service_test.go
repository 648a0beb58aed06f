package services

import (
	"context"
	"testing"
	"time"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

func TestAdminUserServiceListUsers(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-48 * time.Hour)

	profiles := &mockProfileRepo{
		listPageFn: func(_ context.Context, _ repository.ProfileFilters) ([]*domain.Profile, int, error) {
			return []*domain.Profile{
				{ID: "p1", UserID: "user1", Name: "Kim"},
				{ID: "p2", UserID: "user2", Name: "Lee"},
				{ID: "p3", UserID: "user3", Name: "Park"},
			}, 57, nil
		},
	}

	var bookingQueryIDs []string
	bookings := &mockBookingRepo{
		listByUserIDsFn: func(_ context.Context, userIDs []string) ([]*domain.Booking, error) {
			bookingQueryIDs = userIDs
			return []*domain.Booking{
				{ID: "b1", UserID: "user1", CreatedAt: earlier},
				{ID: "b2", UserID: "user1", CreatedAt: now},
				{ID: "b3", UserID: "user2", CreatedAt: earlier},
			}, nil
		},
	}
	favorites := &mockFavoriteRepo{
		listByUserIDsFn: func(_ context.Context, _ []string) ([]*domain.Favorite, error) {
			return []*domain.Favorite{
				{ID: "f1", UserID: "user2"},
				{ID: "f2", UserID: "user2"},
			}, nil
		},
	}

	svc := NewAdminUserService(profiles, bookings, favorites, &mockStatsRepo{})

	rows, total, err := svc.ListUsers(context.Background(), repository.ProfileFilters{Limit: 3})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if total != 57 {
		t.Errorf("total = %d, want 57", total)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// Bulk lookups must be restricted to exactly the page's user IDs.
	if len(bookingQueryIDs) != 3 || bookingQueryIDs[0] != "user1" || bookingQueryIDs[2] != "user3" {
		t.Errorf("booking bulk lookup IDs = %v", bookingQueryIDs)
	}

	if rows[0].BookingCount != 2 {
		t.Errorf("user1 booking count = %d, want 2", rows[0].BookingCount)
	}
	if rows[0].LastBookingAt == nil || !rows[0].LastBookingAt.Equal(now) {
		t.Errorf("user1 last booking = %v, want %v", rows[0].LastBookingAt, now)
	}
	if rows[1].FavoriteCount != 2 {
		t.Errorf("user2 favorite count = %d, want 2", rows[1].FavoriteCount)
	}
	if rows[2].BookingCount != 0 || rows[2].FavoriteCount != 0 || rows[2].LastBookingAt != nil {
		t.Errorf("user3 rollups should be zero-valued, got %+v", rows[2])
	}
}

func TestAdminUserServiceListUsersEmptyPage(t *testing.T) {
	profiles := &mockProfileRepo{
		listPageFn: func(_ context.Context, _ repository.ProfileFilters) ([]*domain.Profile, int, error) {
			return nil, 0, nil
		},
	}
	// The bulk lookups are never reached; their funcs stay nil.
	svc := NewAdminUserService(profiles, &mockBookingRepo{}, &mockFavoriteRepo{}, &mockStatsRepo{})

	rows, total, err := svc.ListUsers(context.Background(), repository.ProfileFilters{Search: "nobody"})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("rows = %d total = %d, want empty page", len(rows), total)
	}
}

func TestAdminUserServiceSummary(t *testing.T) {
	stats := &mockStatsRepo{
		summaryFn: func(_ context.Context) (*domain.AdminUsersSummary, error) {
			return &domain.AdminUsersSummary{TotalUsers: 100, NewSignups30d: 12, MarketingOptIns: 40}, nil
		},
	}
	svc := NewAdminUserService(&mockProfileRepo{}, &mockBookingRepo{}, &mockFavoriteRepo{}, stats)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalUsers != 100 || summary.NewSignups30d != 12 || summary.MarketingOptIns != 40 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
