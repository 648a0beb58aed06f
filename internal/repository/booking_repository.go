package repository

import (
	"context"

	"tourvia/internal/domain"
)

// BookingRepository defines data access operations for the booking lifecycle.
type BookingRepository interface {
	// Create inserts a booking for a user. The stored status is always
	// REQUESTED regardless of anything present in the payload.
	Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error)

	// GetByID retrieves a booking by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListMine retrieves a user's bookings excluding CANCELLED rows,
	// newest first, with product display fields joined in.
	ListMine(ctx context.Context, userID string) ([]*domain.Booking, error)

	// ListAdmin retrieves a page of bookings across all statuses with an
	// exact total count for pagination, product and profile fields joined in.
	ListAdmin(ctx context.Context, filters AdminBookingFilters) ([]*domain.Booking, int, error)

	// ListByUserIDs retrieves all bookings belonging to the given users in
	// one query. Used by the admin aggregation rollup.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Booking, error)

	// PatchAdmin applies a partial status/memo update. No transition
	// validation is performed; any status may overwrite any other.
	PatchAdmin(ctx context.Context, id string, patch *domain.AdminBookingPatch) (*domain.Booking, error)

	// CancelMine sets status CANCELLED on the booking matching both the
	// booking ID and the requesting user ID. A predicate that matches zero
	// rows returns ErrNotFound, whether the booking is absent or owned by
	// someone else.
	CancelMine(ctx context.Context, id, userID string) error
}

// AdminBookingFilters provides filtering and pagination for the admin
// booking listing.
type AdminBookingFilters struct {
	// Status restricts to a single status; empty means all statuses.
	Status domain.BookingStatus `json:"status,omitempty"`
	Limit  int                  `json:"limit,omitempty"`
	Offset int                  `json:"offset,omitempty"`
}

// FavoriteRepository defines data access for (user, product) favorites.
// Add performs no existence check; duplicate rows are possible at this layer.
type FavoriteRepository interface {
	IsFavorited(ctx context.Context, userID, productID string) (bool, error)
	Add(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID string) error

	// ListMine retrieves a user's favorites newest first with product
	// display fields joined in.
	ListMine(ctx context.Context, userID string) ([]*domain.Favorite, error)

	// ListByUserIDs retrieves all favorites belonging to the given users in
	// one query. Used by the admin aggregation rollup.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Favorite, error)
}
