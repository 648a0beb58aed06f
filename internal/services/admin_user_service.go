package services

import (
	"context"
	"time"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// AdminUserService assembles the admin user listing: one page query over
// profiles plus two bulk lookups restricted to the page's user IDs, folded
// into per-user activity rollups. The dashboard summary is a single
// pre-aggregated query.
type AdminUserService struct {
	profiles  repository.ProfileRepository
	bookings  repository.BookingRepository
	favorites repository.FavoriteRepository
	stats     repository.AdminStatsRepository
}

// NewAdminUserService creates a new admin user service.
func NewAdminUserService(
	profiles repository.ProfileRepository,
	bookings repository.BookingRepository,
	favorites repository.FavoriteRepository,
	stats repository.AdminStatsRepository,
) *AdminUserService {
	return &AdminUserService{
		profiles:  profiles,
		bookings:  bookings,
		favorites: favorites,
		stats:     stats,
	}
}

// ListUsers retrieves a page of user rows with booking and favorite rollups
// and the exact total for pagination.
func (s *AdminUserService) ListUsers(ctx context.Context, filters repository.ProfileFilters) ([]*domain.AdminUserRow, int, error) {
	profiles, total, err := s.profiles.ListPage(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if len(profiles) == 0 {
		return []*domain.AdminUserRow{}, total, nil
	}

	userIDs := make([]string, len(profiles))
	for i, profile := range profiles {
		userIDs[i] = profile.UserID
	}

	bookings, err := s.bookings.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}
	favorites, err := s.favorites.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, err
	}

	bookingCounts := make(map[string]int, len(userIDs))
	lastBookingAt := make(map[string]time.Time, len(userIDs))
	for _, booking := range bookings {
		bookingCounts[booking.UserID]++
		if booking.CreatedAt.After(lastBookingAt[booking.UserID]) {
			lastBookingAt[booking.UserID] = booking.CreatedAt
		}
	}
	favoriteCounts := make(map[string]int, len(userIDs))
	for _, favorite := range favorites {
		favoriteCounts[favorite.UserID]++
	}

	rows := make([]*domain.AdminUserRow, len(profiles))
	for i, profile := range profiles {
		row := &domain.AdminUserRow{
			Profile:       *profile,
			BookingCount:  bookingCounts[profile.UserID],
			FavoriteCount: favoriteCounts[profile.UserID],
		}
		if last, ok := lastBookingAt[profile.UserID]; ok {
			t := last
			row.LastBookingAt = &t
		}
		rows[i] = row
	}
	return rows, total, nil
}

// Summary returns the dashboard counters.
func (s *AdminUserService) Summary(ctx context.Context) (*domain.AdminUsersSummary, error) {
	return s.stats.Summary(ctx)
}
