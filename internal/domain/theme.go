package domain

import "time"

// Theme is the top level of the two-level catalog taxonomy, e.g. "Japan Golf".
type Theme struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created"`
	UpdatedAt time.Time `json:"updated_at" db:"updated"`
}

// Area is the second taxonomy level, e.g. "Okinawa" under "Japan Golf".
// Deleting a Theme does not cascade; areas keep a dangling theme reference.
type Area struct {
	ID        string    `json:"id" db:"id"`
	ThemeID   string    `json:"theme_id" db:"theme"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created"`
	UpdatedAt time.Time `json:"updated_at" db:"updated"`
}

// ThemeInput carries admin-editable theme fields. Nil pointer fields are left
// untouched by patch updates.
type ThemeInput struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}

// AreaInput carries admin-editable area fields for create and patch.
type AreaInput struct {
	ThemeID   *string `json:"theme_id"`
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"active"`
}
