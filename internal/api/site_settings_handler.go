package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// SiteSettingsHandler serves the public site branding payload.
type SiteSettingsHandler struct {
	settings repository.SiteSettingsRepository
	storage  *services.StorageService
}

// NewSiteSettingsHandler creates a new site settings handler.
func NewSiteSettingsHandler(settings repository.SiteSettingsRepository, storage *services.StorageService) *SiteSettingsHandler {
	return &SiteSettingsHandler{settings: settings, storage: storage}
}

// RegisterRoutes registers the public site settings route.
func (h *SiteSettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/site-settings", h.Get)
}

// Get handles GET /api/site-settings. When no settings row has been seeded
// yet the site still needs to render, so an empty payload is returned rather
// than an error.
func (h *SiteSettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		if repository.IsNotFound(err) {
			SuccessResponse(c, &domain.SiteSettings{})
			return
		}
		SanitizedErrorResponse(c, err)
		return
	}

	settings.LogoURL = h.storage.PublicURL(settings.LogoPath)
	SuccessResponse(c, settings)
}
