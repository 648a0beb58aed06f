package repository

import (
	"context"

	"tourvia/internal/domain"
)

// ProfileRepository defines data access for per-user profile rows.
type ProfileRepository interface {
	// GetByUserID retrieves the profile for a user. Returns ErrNotFound
	// when no row exists yet.
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)

	// EnsureForUser returns the user's profile, creating it seeded from the
	// auth session's email when absent.
	EnsureForUser(ctx context.Context, user *domain.User) (*domain.Profile, error)

	// Patch applies user-editable profile fields. The marketing consent
	// timestamp is only set when consent newly transitions to true.
	Patch(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error)

	// ListPage retrieves a page of profiles newest first with an exact
	// total count.
	ListPage(ctx context.Context, filters ProfileFilters) ([]*domain.Profile, int, error)
}

// ProfileFilters provides filtering and pagination for the admin user list.
type ProfileFilters struct {
	// Search matches name OR email, case-insensitive substring.
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// UserRepository defines access to the auth backend's user records and the
// admin allowlist.
type UserRepository interface {
	// Register creates a new auth record. Password material is handed to
	// the auth backend and never stored by this layer.
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)

	// Authenticate verifies credentials against the auth backend.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// ExistsByEmail checks whether an auth record exists for the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// IsAdmin reports whether the user is in the admin allowlist.
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AdminStatsRepository exposes the single pre-aggregated summary call the
// admin dashboard uses instead of per-row joins.
type AdminStatsRepository interface {
	Summary(ctx context.Context) (*domain.AdminUsersSummary, error)
}

// SiteSettingsRepository defines access to the singleton branding row.
type SiteSettingsRepository interface {
	// Get retrieves the settings row, or ErrNotFound when none was seeded.
	Get(ctx context.Context) (*domain.SiteSettings, error)

	// Patch applies admin-editable branding fields.
	Patch(ctx context.Context, patch *domain.SiteSettingsPatch) (*domain.SiteSettings, error)
}
