package repository

// Collection names in the backing store.
const (
	CollectionUsers        = "users"
	CollectionAdminUsers   = "admin_users"
	CollectionProfiles     = "profiles"
	CollectionProducts     = "products"
	CollectionThemes       = "product_themes"
	CollectionAreas        = "product_areas"
	CollectionBookings     = "bookings"
	CollectionFavorites    = "product_favorites"
	CollectionNotices      = "notices"
	CollectionInquiries    = "inquiries"
	CollectionSiteSettings = "site_settings"
)

// Default page size for admin listings when the caller passes no limit.
const DefaultPageSize = 50
