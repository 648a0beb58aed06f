package services

import (
	"context"
	"log/slog"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// BookingService wraps the booking lifecycle with product existence checks
// and thumbnail resolution on the joined display fields.
type BookingService struct {
	bookings repository.BookingRepository
	products repository.ProductRepository
	resolver URLResolver
	logger   *slog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	products repository.ProductRepository,
	resolver URLResolver,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		products: products,
		resolver: resolver,
		logger:   logger,
	}
}

// Create places a booking for the user. The referenced product must exist;
// the stored status is always REQUESTED no matter what the client sent.
func (s *BookingService) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}

	return s.bookings.Create(ctx, userID, req)
}

// ListMine retrieves the user's active bookings, cancelled rows excluded.
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]*domain.Booking, error) {
	bookings, err := s.bookings.ListMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.resolveProductThumbnails(ctx, bookings)
	return bookings, nil
}

// CancelMine soft-cancels the user's own booking. A booking that does not
// exist or belongs to someone else fails identically.
func (s *BookingService) CancelMine(ctx context.Context, id, userID string) error {
	if err := s.bookings.CancelMine(ctx, id, userID); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("BOOKING_NOT_FOUND", "Booking does not exist")
		}
		return err
	}
	return nil
}

// ListAdmin retrieves a booking page with its exact total for the console.
func (s *BookingService) ListAdmin(ctx context.Context, filters repository.AdminBookingFilters) ([]*domain.Booking, int, error) {
	bookings, total, err := s.bookings.ListAdmin(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	s.resolveProductThumbnails(ctx, bookings)
	return bookings, total, nil
}

// PatchAdmin applies a status/memo update from the console.
func (s *BookingService) PatchAdmin(ctx context.Context, id string, patch *domain.AdminBookingPatch) (*domain.Booking, error) {
	booking, err := s.bookings.PatchAdmin(ctx, id, patch)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("BOOKING_NOT_FOUND", "Booking does not exist")
		}
		return nil, err
	}
	return booking, nil
}

// resolveProductThumbnails rewrites each joined product's thumbnail reference
// into a loadable URL, degrading to the raw value on failure.
func (s *BookingService) resolveProductThumbnails(ctx context.Context, bookings []*domain.Booking) {
	for _, booking := range bookings {
		if booking.Product == nil || booking.Product.ThumbnailURL == "" {
			continue
		}
		url, err := s.resolver.ResolveURL(ctx, booking.Product.ThumbnailURL)
		if err != nil {
			s.logger.Warn("booking thumbnail resolution failed",
				slog.String("booking_id", booking.ID),
				slog.String("error", err.Error()))
			continue
		}
		booking.Product.ThumbnailURL = url
	}
}
