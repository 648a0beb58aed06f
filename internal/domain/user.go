package domain

import "time"

// User is the authenticated identity backed by the users auth collection.
// Password handling is delegated entirely to the auth backend; this type
// never carries credential material.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	IsAdmin   bool      `json:"is_admin" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created"`
	UpdatedAt time.Time `json:"updated_at" db:"updated"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("MISSING_EMAIL", "Email is required", nil)
	}
	if len(r.Password) < 8 {
		return NewValidationError("WEAK_PASSWORD", "Password must be at least 8 characters", nil)
	}
	return nil
}

// TokenPair holds the issued access/refresh token set.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
