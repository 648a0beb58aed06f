package domain

import "time"

type ProductStatus string

const (
	ProductDraft     ProductStatus = "DRAFT"
	ProductPublished ProductStatus = "PUBLISHED"
	ProductHidden    ProductStatus = "HIDDEN"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductDraft, ProductPublished, ProductHidden:
		return true
	default:
		return false
	}
}

type MealType string

const (
	MealNone     MealType = "NONE"
	MealIncluded MealType = "INCLUDED"
	MealSelf     MealType = "SELF"
)

func (m MealType) IsValid() bool {
	switch m {
	case MealNone, MealIncluded, MealSelf:
		return true
	default:
		return false
	}
}

type OfferType string

const (
	OfferNormal  OfferType = "NORMAL"
	OfferEvent   OfferType = "EVENT"
	OfferSpecial OfferType = "SPECIAL"
)

func (o OfferType) IsValid() bool {
	switch o {
	case OfferNormal, OfferEvent, OfferSpecial:
		return true
	default:
		return false
	}
}

type DepartureStatus string

const (
	DepartureAvailable DepartureStatus = "AVAILABLE"
	DepartureConfirmed DepartureStatus = "CONFIRMED"
	DepartureInquiry   DepartureStatus = "INQUIRY"
)

func (s DepartureStatus) IsValid() bool {
	switch s {
	case DepartureAvailable, DepartureConfirmed, DepartureInquiry:
		return true
	default:
		return false
	}
}

// ItineraryRow is a single schedule entry within a day: place, transport,
// time, free text, and the three meal indicators.
type ItineraryRow struct {
	Place     string   `json:"place"`
	Transport string   `json:"transport"`
	Time      string   `json:"time"`
	Content   string   `json:"content"`
	Breakfast MealType `json:"breakfast"`
	Lunch     MealType `json:"lunch"`
	Dinner    MealType `json:"dinner"`
}

// ItineraryDay groups the rows of one travel day. Day numbers are assigned
// sequentially on write, never by the client.
type ItineraryDay struct {
	Day  int            `json:"day"`
	Rows []ItineraryRow `json:"rows"`
}

// Departure is a bookable date-offer combination. AdultPrice carries no
// meaning when Status is INQUIRY; the admin UI disables the input rather than
// validating the value away.
type Departure struct {
	Date            string          `json:"date"`
	OfferType       OfferType       `json:"offer_type"`
	Status          DepartureStatus `json:"status"`
	AdultPrice      int             `json:"adult_price"`
	SeatsLeft       *int            `json:"seats_left,omitempty"`
	MinParticipants int             `json:"min_participants"`
	MaxParticipants int             `json:"max_participants"`
	Note            string          `json:"note"`
}

type Product struct {
	ID           string         `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Subtitle     string         `json:"subtitle" db:"subtitle"`
	Region       string         `json:"region" db:"region"`
	Nights       int            `json:"nights" db:"nights"`
	Days         int            `json:"days" db:"days"`
	Status       ProductStatus  `json:"status" db:"status"`
	PriceText    string         `json:"price_text" db:"price_text"`
	Description  string         `json:"description" db:"description"`
	ThumbnailURL string         `json:"thumbnail_url" db:"thumbnail_url"`
	ThumbnailRef string         `json:"-" db:"thumbnail_ref"`
	Images       []string       `json:"images" db:"-"`
	Included     []string       `json:"included" db:"-"`
	Excluded     []string       `json:"excluded" db:"-"`
	Notices      []string       `json:"notices" db:"-"`
	Itinerary    []ItineraryDay `json:"itinerary" db:"-"`
	Departures   []Departure    `json:"departures" db:"-"`
	ThemeID      string         `json:"theme_id" db:"theme"`
	CreatedAt    time.Time      `json:"created_at" db:"created"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated"`
}

// ProductInput is the editable field set for admin upserts. A write replaces
// all of these fields on the row.
type ProductInput struct {
	Title         string         `json:"title" binding:"required"`
	Subtitle      string         `json:"subtitle"`
	Region        string         `json:"region"`
	Nights        int            `json:"nights"`
	Days          int            `json:"days"`
	Status        ProductStatus  `json:"status"`
	PriceText     string         `json:"price_text"`
	Description   string         `json:"description"`
	ThumbnailPath string         `json:"thumbnail_path"`
	ThumbnailURL  string         `json:"thumbnail_url"`
	Images        []string       `json:"images"`
	Included      []string       `json:"included"`
	Excluded      []string       `json:"excluded"`
	Notices       []string       `json:"notices"`
	Itinerary     []ItineraryDay `json:"itinerary"`
	Departures    []Departure    `json:"departures"`
	ThemeID       string         `json:"theme_id"`
}

func (in *ProductInput) Validate() error {
	if in.Title == "" {
		return NewValidationError("MISSING_TITLE", "Title is required", nil)
	}
	if in.Status != "" && !in.Status.IsValid() {
		return NewValidationError("INVALID_STATUS", "Invalid product status", nil)
	}
	for _, d := range in.Departures {
		if d.OfferType != "" && !d.OfferType.IsValid() {
			return NewValidationError("INVALID_OFFER_TYPE", "Invalid departure offer type", nil)
		}
		if d.Status != "" && !d.Status.IsValid() {
			return NewValidationError("INVALID_DEPARTURE_STATUS", "Invalid departure status", nil)
		}
	}
	return nil
}

// Normalize clamps user-supplied counters and renumbers itinerary days 1..N.
// Inserting or deleting a day renumbers everything after it, so stored day
// numbers are always dense.
func (in *ProductInput) Normalize() {
	in.Nights = clampNonNegative(in.Nights)
	in.Days = clampNonNegative(in.Days)
	if in.Status == "" {
		in.Status = ProductDraft
	}
	for i := range in.Itinerary {
		in.Itinerary[i].Day = i + 1
		for j := range in.Itinerary[i].Rows {
			row := &in.Itinerary[i].Rows[j]
			if row.Breakfast == "" {
				row.Breakfast = MealNone
			}
			if row.Lunch == "" {
				row.Lunch = MealNone
			}
			if row.Dinner == "" {
				row.Dinner = MealNone
			}
		}
	}
	for i := range in.Departures {
		if in.Departures[i].OfferType == "" {
			in.Departures[i].OfferType = OfferNormal
		}
		if in.Departures[i].Status == "" {
			in.Departures[i].Status = DepartureAvailable
		}
	}
}

// ThumbnailReference returns the stored thumbnail reference, preferring the
// storage path over the external URL when both were supplied. The result may
// be empty but is never meant to be written as null.
func (in *ProductInput) ThumbnailReference() string {
	if in.ThumbnailPath != "" {
		return in.ThumbnailPath
	}
	return in.ThumbnailURL
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
