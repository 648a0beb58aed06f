package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// AdminUserHandler exposes the admin console's member listing and rollup
// endpoints.
type AdminUserHandler struct {
	users *services.AdminUserService
}

// NewAdminUserHandler creates a new admin user handler.
func NewAdminUserHandler(users *services.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

// RegisterRoutes registers the admin user routes. The group is expected to
// already carry auth and admin middleware.
func (h *AdminUserHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.List)
	admin.GET("/users/summary", h.Summary)
}

// List handles GET /api/admin/users. Each row carries the member's booking
// count, last booking time and favorite count alongside the profile.
func (h *AdminUserHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	filters := repository.ProfileFilters{
		Search: c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}

	rows, total, err := h.users.ListUsers(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	ListResponse(c, rows, total)
}

// Summary handles GET /api/admin/users/summary.
func (h *AdminUserHandler) Summary(c *gin.Context) {
	summary, err := h.users.Summary(c.Request.Context())
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, summary)
}
