package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/api/middleware"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// ProfileHandler handles the signed-in user's own profile.
type ProfileHandler struct {
	profiles repository.ProfileRepository
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	me := router.Group("/me")
	me.Use(authMiddleware.RequireAuth())
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.PatchMe)
	}
}

// GetMe handles GET /api/me. First access creates the profile row from the
// session's email.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	user := middleware.GetUser(c)

	profile, err := h.profiles.EnsureForUser(c.Request.Context(), user)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, profile)
}

// PatchMe handles PATCH /api/me.
func (h *ProfileHandler) PatchMe(c *gin.Context) {
	user := middleware.GetUser(c)

	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	// The row may not exist yet for a fresh account patching straight away.
	if _, err := h.profiles.EnsureForUser(c.Request.Context(), user); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}

	profile, err := h.profiles.Patch(c.Request.Context(), user.ID, &patch)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, profile)
}
