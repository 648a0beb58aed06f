package api

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"tourvia/internal/api/middleware"
	"tourvia/internal/config"
)

// Handlers collects every route handler the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Profile      *ProfileHandler
	Booking      *BookingHandler
	Favorite     *FavoriteHandler
	Notice       *NoticeHandler
	Inquiry      *InquiryHandler
	SiteSettings *SiteSettingsHandler

	AdminCatalog      *AdminCatalogHandler
	AdminBooking      *AdminBookingHandler
	AdminNotice       *AdminNoticeHandler
	AdminInquiry      *AdminInquiryHandler
	AdminUser         *AdminUserHandler
	AdminSiteSettings *AdminSiteSettingsHandler
	AdminStorage      *AdminStorageHandler
}

// NewRouter assembles the Gin engine: global middleware, the public /api
// surface and the admin console under /api/admin. The returned manager owns
// the rate limiter lifecycle and must be shut down with the server.
func NewRouter(
	ctx context.Context,
	cfg *config.AppConfig,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
	handlers Handlers,
) (*gin.Engine, *middleware.RateLimitManager) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.StructuredLoggingMiddleware("/health", "/ping"))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.DefaultCORSMiddleware())

	rateLimit, manager := middleware.RateLimitMiddleware(ctx, middleware.RateLimitConfig{
		KeyGenerator:      middleware.IPKeyGenerator,
		RequestsPerMinute: cfg.GetRateLimitRequestsPerMinute(),
		RedisAddr:         cfg.GetRedisAddr(),
		RedisPassword:     cfg.GetRedisPassword(),
		RedisDB:           cfg.GetRedisDB(),
	})
	router.Use(rateLimit)

	handlers.Health.RegisterRoutes(router)

	apiGroup := router.Group("/api")
	handlers.Auth.RegisterRoutes(apiGroup, authMiddleware)
	handlers.Catalog.RegisterRoutes(apiGroup)
	handlers.Profile.RegisterRoutes(apiGroup, authMiddleware)
	handlers.Booking.RegisterRoutes(apiGroup, authMiddleware)
	handlers.Favorite.RegisterRoutes(apiGroup, authMiddleware)
	handlers.Notice.RegisterRoutes(apiGroup)
	handlers.Inquiry.RegisterRoutes(apiGroup, authMiddleware)
	handlers.SiteSettings.RegisterRoutes(apiGroup)

	adminGroup := apiGroup.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	handlers.AdminCatalog.RegisterRoutes(adminGroup)
	handlers.AdminBooking.RegisterRoutes(adminGroup)
	handlers.AdminNotice.RegisterRoutes(adminGroup)
	handlers.AdminInquiry.RegisterRoutes(adminGroup)
	handlers.AdminUser.RegisterRoutes(adminGroup)
	handlers.AdminSiteSettings.RegisterRoutes(adminGroup)
	handlers.AdminStorage.RegisterRoutes(adminGroup)

	return router, manager
}
