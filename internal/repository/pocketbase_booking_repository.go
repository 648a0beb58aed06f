package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseBookingRepository implements BookingRepository using PocketBase.
type pocketbaseBookingRepository struct {
	app core.App
}

// NewPocketBaseBookingRepository creates a new PocketBase booking repository.
func NewPocketBaseBookingRepository(app core.App) BookingRepository {
	return &pocketbaseBookingRepository{app: app}
}

// Create inserts a booking with status forced to REQUESTED. The request type
// carries no status field, so nothing a client smuggles into the JSON body
// can influence the initial state.
func (r *pocketbaseBookingRepository) Create(
	_ context.Context, userID string, req *domain.CreateBookingRequest,
) (*domain.Booking, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user", userID)
	record.Set("product", req.ProductID)
	record.Set("status", string(domain.BookingRequested))
	record.Set("travel_date", req.TravelDate)
	record.Set("people_count", req.PeopleCount)
	record.Set("contact_name", req.ContactName)
	record.Set("phone", req.Phone)
	record.Set("memo", req.Memo)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save booking record: %w", err)
	}

	return r.recordToBooking(record), nil
}

// GetByID retrieves a booking by ID.
func (r *pocketbaseBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	record, err := r.app.FindRecordById(CollectionBookings, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by ID %s: %w", id, err)
	}
	return r.recordToBooking(record), nil
}

// ListMine retrieves a user's bookings excluding soft-cancelled rows, newest
// first, with product display fields joined in.
func (r *pocketbaseBookingRepository) ListMine(_ context.Context, userID string) ([]*domain.Booking, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	records, err := r.app.FindRecordsByFilter(
		CollectionBookings,
		"user = {:user} && status != {:cancelled}",
		"-created", 0, 0,
		dbx.Params{"user": userID, "cancelled": string(domain.BookingCancelled)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*domain.Booking, len(records))
	for i, record := range records {
		booking := r.recordToBooking(record)
		booking.Product = r.expandProduct(record)
		bookings[i] = booking
	}
	return bookings, nil
}

// buildAdminBookingFilter translates the admin filters into a page filter
// and the matching count expressions. Both must cover the same rows or the
// pagination total drifts from the pages it describes.
func buildAdminBookingFilter(filters AdminBookingFilters) (string, dbx.Params, []dbx.Expression) {
	filter := ""
	params := dbx.Params{}
	countExprs := []dbx.Expression{}

	if filters.Status != "" {
		filter = "status = {:status}"
		params["status"] = string(filters.Status)
		countExprs = append(countExprs, dbx.HashExp{"status": string(filters.Status)})
	}
	return filter, params, countExprs
}

// ListAdmin retrieves a page of bookings with an exact total count, joined
// with product and profile display fields.
func (r *pocketbaseBookingRepository) ListAdmin(
	ctx context.Context, filters AdminBookingFilters,
) ([]*domain.Booking, int, error) {
	filter, params, countExprs := buildAdminBookingFilter(filters)

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	records, err := r.app.FindRecordsByFilter(CollectionBookings, filter, "-created", limit, filters.Offset, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	total, err := r.app.CountRecords(CollectionBookings, countExprs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings := make([]*domain.Booking, len(records))
	userIDs := make([]string, 0, len(records))
	for i, record := range records {
		booking := r.recordToBooking(record)
		booking.Product = r.expandProduct(record)
		bookings[i] = booking
		userIDs = append(userIDs, booking.UserID)
	}

	if err := r.attachProfiles(ctx, bookings, userIDs); err != nil {
		return nil, 0, err
	}

	return bookings, int(total), nil
}

// ListByUserIDs retrieves all bookings for the given users in one query.
func (r *pocketbaseBookingRepository) ListByUserIDs(_ context.Context, userIDs []string) ([]*domain.Booking, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ids := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}

	var records []*core.Record
	err := r.app.RecordQuery(CollectionBookings).
		AndWhere(dbx.In("user", ids...)).
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by users: %w", err)
	}

	bookings := make([]*domain.Booking, len(records))
	for i, record := range records {
		bookings[i] = r.recordToBooking(record)
	}
	return bookings, nil
}

// PatchAdmin applies a partial status/memo update. Transitions are not
// validated; the admin console may set any status from any other.
func (r *pocketbaseBookingRepository) PatchAdmin(
	_ context.Context, id string, patch *domain.AdminBookingPatch,
) (*domain.Booking, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record, err := r.app.FindRecordById(CollectionBookings, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking for update: %w", err)
	}

	if patch.Status != nil {
		record.Set("status", string(*patch.Status))
	}
	if patch.AdminMemo != nil {
		record.Set("admin_memo", *patch.AdminMemo)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update booking record: %w", err)
	}
	return r.recordToBooking(record), nil
}

// CancelMine soft-cancels a booking scoped by booking ID and owner in a
// single predicate. Zero rows matched surfaces as ErrNotFound; whether the
// row is missing or owned by someone else is not distinguished.
func (r *pocketbaseBookingRepository) CancelMine(_ context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return fmt.Errorf("booking ID and user ID cannot be empty")
	}

	record, err := r.app.FindFirstRecordByFilter(
		CollectionBookings,
		"id = {:id} && user = {:user}",
		dbx.Params{"id": id, "user": userID},
	)
	if err != nil {
		if IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find booking for cancellation: %w", err)
	}

	record.Set("status", string(domain.BookingCancelled))
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

// expandProduct resolves the booking's product relation into the display
// subset. A failed expansion leaves the field nil; listings degrade rather
// than abort.
func (r *pocketbaseBookingRepository) expandProduct(record *core.Record) *domain.BookingProduct {
	errs := r.app.ExpandRecord(record, []string{"product"}, nil)
	if len(errs) > 0 {
		return nil
	}

	product := record.ExpandedOne("product")
	if product == nil {
		return nil
	}

	return &domain.BookingProduct{
		ID:           product.Id,
		Title:        product.GetString("title"),
		Region:       product.GetString("region"),
		ThumbnailURL: product.GetString("thumbnail_ref"),
	}
}

// attachProfiles bulk-loads the profile rows for the page's user set and
// merges the contact subset into each booking. One query per page, not per
// row.
func (r *pocketbaseBookingRepository) attachProfiles(_ context.Context, bookings []*domain.Booking, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	ids := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}

	var records []*core.Record
	err := r.app.RecordQuery(CollectionProfiles).
		AndWhere(dbx.In("user", ids...)).
		All(&records)
	if err != nil {
		return fmt.Errorf("failed to load booking profiles: %w", err)
	}

	byUser := make(map[string]*domain.BookingProfile, len(records))
	for _, record := range records {
		byUser[record.GetString("user")] = &domain.BookingProfile{
			ID:    record.Id,
			Name:  record.GetString("name"),
			Email: record.GetString("email"),
			Phone: record.GetString("phone"),
		}
	}

	for _, booking := range bookings {
		booking.Profile = byUser[booking.UserID]
	}
	return nil
}

func (r *pocketbaseBookingRepository) recordToBooking(record *core.Record) *domain.Booking {
	return &domain.Booking{
		ID:          record.Id,
		UserID:      record.GetString("user"),
		ProductID:   record.GetString("product"),
		Status:      domain.BookingStatus(record.GetString("status")),
		TravelDate:  record.GetString("travel_date"),
		PeopleCount: record.GetInt("people_count"),
		ContactName: record.GetString("contact_name"),
		Phone:       record.GetString("phone"),
		Memo:        record.GetString("memo"),
		AdminMemo:   record.GetString("admin_memo"),
		CreatedAt:   record.GetDateTime("created").Time(),
		UpdatedAt:   record.GetDateTime("updated").Time(),
	}
}
