package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// AdminSiteSettingsHandler exposes the admin console's branding endpoints.
type AdminSiteSettingsHandler struct {
	settings repository.SiteSettingsRepository
	storage  *services.StorageService
}

// NewAdminSiteSettingsHandler creates a new admin site settings handler.
func NewAdminSiteSettingsHandler(settings repository.SiteSettingsRepository, storage *services.StorageService) *AdminSiteSettingsHandler {
	return &AdminSiteSettingsHandler{settings: settings, storage: storage}
}

// RegisterRoutes registers the admin site settings routes. The group is
// expected to already carry auth and admin middleware.
func (h *AdminSiteSettingsHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/site-settings", h.Get)
	admin.PATCH("/site-settings", h.Patch)
}

// Get handles GET /api/admin/site-settings.
func (h *AdminSiteSettingsHandler) Get(c *gin.Context) {
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

// Patch handles PATCH /api/admin/site-settings. The settings row is created
// on first write, so the console never has to seed it by hand.
func (h *AdminSiteSettingsHandler) Patch(c *gin.Context) {
	var patch domain.SiteSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	settings, err := h.settings.Patch(c.Request.Context(), &patch)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}

	settings.LogoURL = h.storage.PublicURL(settings.LogoPath)
	SuccessResponse(c, settings)
}
