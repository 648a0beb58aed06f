package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// AdminBookingHandler exposes the admin console's booking management
// endpoints.
type AdminBookingHandler struct {
	bookings *services.BookingService
}

// NewAdminBookingHandler creates a new admin booking handler.
func NewAdminBookingHandler(bookings *services.BookingService) *AdminBookingHandler {
	return &AdminBookingHandler{bookings: bookings}
}

// RegisterRoutes registers the admin booking routes. The group is expected
// to already carry auth and admin middleware.
func (h *AdminBookingHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/bookings", h.List)
	admin.PATCH("/bookings/:id", h.Patch)
}

// List handles GET /api/admin/bookings with an exact total for pagination.
func (h *AdminBookingHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	filters := repository.AdminBookingFilters{
		Status: domain.BookingStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	}

	bookings, total, err := h.bookings.ListAdmin(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	ListResponse(c, bookings, total)
}

// Patch handles PATCH /api/admin/bookings/:id. Only the status and admin
// memo are writable from this side.
func (h *AdminBookingHandler) Patch(c *gin.Context) {
	var patch domain.AdminBookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	if err := patch.Validate(); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}

	booking, err := h.bookings.PatchAdmin(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "BOOKING_NOT_FOUND", "Booking not found"))
		return
	}
	SuccessResponse(c, booking)
}
