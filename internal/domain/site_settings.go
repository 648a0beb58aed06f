package domain

import "time"

// SiteSettings is the singleton branding row: site name, logo, and the
// contact fields rendered in the footer. The logo path resolves through the
// public bucket, never the signed resolver.
type SiteSettings struct {
	ID           string    `json:"id" db:"id"`
	SiteName     string    `json:"site_name" db:"site_name"`
	LogoPath     string    `json:"logo_path" db:"logo_path"`
	LogoURL      string    `json:"logo_url" db:"-"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	ContactPhone string    `json:"contact_phone" db:"contact_phone"`
	Address      string    `json:"address" db:"address"`
	FooterText   string    `json:"footer_text" db:"footer_text"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated"`
}

// SiteSettingsPatch carries admin-editable branding fields.
type SiteSettingsPatch struct {
	SiteName     *string `json:"site_name"`
	LogoPath     *string `json:"logo_path"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
	FooterText   *string `json:"footer_text"`
}
