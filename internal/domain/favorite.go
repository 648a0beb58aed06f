package domain

import "time"

// Favorite is a (user, product) pairing. This layer performs no existence
// check before insert; uniqueness is left to the storage schema.
type Favorite struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user"`
	ProductID string    `json:"product_id" db:"product"`
	CreatedAt time.Time `json:"created_at" db:"created"`

	// Product display fields joined by listing queries. The backend may
	// return the joined row as a single object or a one-element list; the
	// repository normalizes both shapes into this nullable field.
	Product *BookingProduct `json:"product,omitempty" db:"-"`
}
