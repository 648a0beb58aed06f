package domain

import "time"

type BookingStatus string

const (
	// BookingRequested is the only status a booking can be created with.
	BookingRequested BookingStatus = "REQUESTED"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingRequested, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	default:
		return false
	}
}

// Booking is a user's request for a product. There is no enforced transition
// graph: the admin console may set any status from any other. End users can
// only soft-cancel their own rows.
type Booking struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user"`
	ProductID   string        `json:"product_id" db:"product"`
	Status      BookingStatus `json:"status" db:"status"`
	TravelDate  string        `json:"travel_date" db:"travel_date"`
	PeopleCount int           `json:"people_count" db:"people_count"`
	ContactName string        `json:"contact_name" db:"contact_name"`
	Phone       string        `json:"phone" db:"phone"`
	Memo        string        `json:"memo" db:"memo"`
	AdminMemo   string        `json:"admin_memo,omitempty" db:"admin_memo"`
	CreatedAt   time.Time     `json:"created_at" db:"created"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated"`

	// Display fields joined from the product and profile rows; populated by
	// listing queries, never written back.
	Product *BookingProduct `json:"product,omitempty" db:"-"`
	Profile *BookingProfile `json:"profile,omitempty" db:"-"`
}

// BookingProduct is the product display subset joined into booking listings.
type BookingProduct struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Region       string `json:"region"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// BookingProfile is the contact subset joined into admin booking listings.
type BookingProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateBookingRequest is the end-user booking payload. Any status supplied
// by the client is discarded; creation always starts at REQUESTED.
type CreateBookingRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	TravelDate  string `json:"travel_date" binding:"required"`
	PeopleCount int    `json:"people_count"`
	ContactName string `json:"contact_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Memo        string `json:"memo"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.ProductID == "" {
		return NewValidationError("MISSING_PRODUCT", "Product ID is required", nil)
	}
	if r.ContactName == "" {
		return NewValidationError("MISSING_CONTACT", "Contact name is required", nil)
	}
	if r.Phone == "" {
		return NewValidationError("MISSING_PHONE", "Contact phone is required", nil)
	}
	if r.PeopleCount < 1 {
		return NewValidationError("INVALID_PEOPLE_COUNT", "People count must be at least 1", nil)
	}
	return nil
}

// AdminBookingPatch is the admin-side partial update: status and admin memo
// only. Nil fields are left untouched.
type AdminBookingPatch struct {
	Status    *BookingStatus `json:"status"`
	AdminMemo *string        `json:"admin_memo"`
}

func (p *AdminBookingPatch) Validate() error {
	if p.Status == nil && p.AdminMemo == nil {
		return NewValidationError("EMPTY_PATCH", "At least one field must be set", nil)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return NewValidationError("INVALID_STATUS", "Invalid booking status", nil)
	}
	return nil
}
