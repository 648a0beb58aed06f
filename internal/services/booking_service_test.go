package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validBookingRequest() *domain.CreateBookingRequest {
	return &domain.CreateBookingRequest{
		ProductID:   "prod1",
		TravelDate:  "2026-10-01",
		PeopleCount: 2,
		ContactName: "Kim",
		Phone:       "010-0000-0000",
	}
}

func TestBookingServiceCreate(t *testing.T) {
	t.Run("stores REQUESTED regardless of caller intent", func(t *testing.T) {
		products := &mockProductRepo{
			getByIDFn: func(_ context.Context, id string) (*domain.Product, error) {
				return &domain.Product{ID: id}, nil
			},
		}
		bookings := &mockBookingRepo{
			createFn: func(_ context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
				return &domain.Booking{
					ID:        "bk1",
					UserID:    userID,
					ProductID: req.ProductID,
					Status:    domain.BookingRequested,
				}, nil
			},
		}
		svc := NewBookingService(bookings, products, &mockResolver{}, testLogger())

		booking, err := svc.Create(context.Background(), "user1", validBookingRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if booking.Status != domain.BookingRequested {
			t.Errorf("status = %q, want %q", booking.Status, domain.BookingRequested)
		}
	})

	t.Run("rejects missing product", func(t *testing.T) {
		products := &mockProductRepo{
			getByIDFn: func(_ context.Context, _ string) (*domain.Product, error) {
				return nil, repository.ErrNotFound
			},
		}
		svc := NewBookingService(&mockBookingRepo{}, products, &mockResolver{}, testLogger())

		_, err := svc.Create(context.Background(), "user1", validBookingRequest())
		var domainErr *domain.Error
		if !errors.As(err, &domainErr) || domainErr.Code != "PRODUCT_NOT_FOUND" {
			t.Errorf("Create() error = %v, want PRODUCT_NOT_FOUND", err)
		}
	})

	t.Run("rejects invalid payload before touching storage", func(t *testing.T) {
		svc := NewBookingService(&mockBookingRepo{}, &mockProductRepo{}, &mockResolver{}, testLogger())

		req := validBookingRequest()
		req.PeopleCount = 0
		if _, err := svc.Create(context.Background(), "user1", req); err == nil {
			t.Error("Create() with zero people succeeded, want validation error")
		}
	})
}

func TestBookingServiceCancelMine(t *testing.T) {
	t.Run("missing and not-owned fail identically", func(t *testing.T) {
		bookings := &mockBookingRepo{
			cancelMineFn: func(_ context.Context, _, _ string) error {
				return repository.ErrNotFound
			},
		}
		svc := NewBookingService(bookings, &mockProductRepo{}, &mockResolver{}, testLogger())

		err := svc.CancelMine(context.Background(), "bk1", "intruder")
		var domainErr *domain.Error
		if !errors.As(err, &domainErr) || domainErr.Code != "BOOKING_NOT_FOUND" {
			t.Errorf("CancelMine() error = %v, want BOOKING_NOT_FOUND", err)
		}
	})

	t.Run("scopes the cancel to booking and owner", func(t *testing.T) {
		var gotID, gotUser string
		bookings := &mockBookingRepo{
			cancelMineFn: func(_ context.Context, id, userID string) error {
				gotID, gotUser = id, userID
				return nil
			},
		}
		svc := NewBookingService(bookings, &mockProductRepo{}, &mockResolver{}, testLogger())

		if err := svc.CancelMine(context.Background(), "bk1", "user1"); err != nil {
			t.Fatalf("CancelMine() error = %v", err)
		}
		if gotID != "bk1" || gotUser != "user1" {
			t.Errorf("cancel scoped to (%q, %q), want (bk1, user1)", gotID, gotUser)
		}
	})
}

func TestBookingServiceListMine(t *testing.T) {
	bookings := &mockBookingRepo{
		listMineFn: func(_ context.Context, userID string) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: "bk1", UserID: userID, Status: domain.BookingRequested,
					Product: &domain.BookingProduct{ID: "prod1", ThumbnailURL: "images/a.jpg"}},
				{ID: "bk2", UserID: userID, Status: domain.BookingConfirmed, Product: nil},
			}, nil
		},
	}
	resolver := &mockResolver{}
	svc := NewBookingService(bookings, &mockProductRepo{}, resolver, testLogger())

	result, err := svc.ListMine(context.Background(), "user1")
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("ListMine() returned %d bookings, want 2", len(result))
	}
	if result[0].Product.ThumbnailURL != "https://signed.example.com/images/a.jpg" {
		t.Errorf("thumbnail not resolved: %q", result[0].Product.ThumbnailURL)
	}
	// Only the row with a joined product and a thumbnail hits the resolver.
	if len(resolver.seen) != 1 {
		t.Errorf("resolver saw %d refs, want 1", len(resolver.seen))
	}
}

func TestBookingServicePatchAdmin(t *testing.T) {
	confirmed := domain.BookingConfirmed
	bookings := &mockBookingRepo{
		patchAdminFn: func(_ context.Context, id string, patch *domain.AdminBookingPatch) (*domain.Booking, error) {
			return &domain.Booking{ID: id, Status: *patch.Status}, nil
		},
	}
	svc := NewBookingService(bookings, &mockProductRepo{}, &mockResolver{}, testLogger())

	booking, err := svc.PatchAdmin(context.Background(), "bk1", &domain.AdminBookingPatch{Status: &confirmed})
	if err != nil {
		t.Fatalf("PatchAdmin() error = %v", err)
	}
	if booking.Status != domain.BookingConfirmed {
		t.Errorf("status = %q, want %q", booking.Status, domain.BookingConfirmed)
	}
}
