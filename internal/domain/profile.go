package domain

import "time"

// Profile is the one-row-per-user contact record, auto-created on first
// access and seeded from the auth session's email.
type Profile struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user"`
	Name             string     `json:"name" db:"name"`
	Email            string     `json:"email" db:"email"`
	Phone            string     `json:"phone" db:"phone"`
	MarketingConsent bool       `json:"marketing_consent" db:"marketing_consent"`
	ConsentAt        *time.Time `json:"consent_at,omitempty" db:"consent_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated"`
}

// ApplyConsent records a consent change. The timestamp is only refreshed when
// consent newly transitions to true; revoking leaves the old timestamp in
// place, matching the observed site behavior.
func (p *Profile) ApplyConsent(consent bool, now time.Time) {
	if consent && !p.MarketingConsent {
		t := now
		p.ConsentAt = &t
	}
	p.MarketingConsent = consent
}

// ProfilePatch carries user-editable profile fields.
type ProfilePatch struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	MarketingConsent *bool   `json:"marketing_consent"`
}

// AdminUserRow is a profile row decorated with the activity rollups computed
// by the admin aggregation service.
type AdminUserRow struct {
	Profile       Profile    `json:"profile"`
	BookingCount  int        `json:"booking_count"`
	FavoriteCount int        `json:"favorite_count"`
	LastBookingAt *time.Time `json:"last_booking_at,omitempty"`
}

// AdminUsersSummary is the pre-aggregated dashboard counter set.
type AdminUsersSummary struct {
	TotalUsers      int `json:"total_users"`
	NewSignups30d   int `json:"new_signups_30d"`
	MarketingOptIns int `json:"marketing_opt_ins"`
}
