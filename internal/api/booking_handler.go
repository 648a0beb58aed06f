package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/api/middleware"
	"tourvia/internal/domain"
	"tourvia/internal/services"
)

// BookingHandler handles the end-user booking endpoints.
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// RegisterRoutes registers the booking routes.
func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	router.POST("/bookings", authMiddleware.RequireAuth(), h.Create)

	me := router.Group("/me", authMiddleware.RequireAuth())
	{
		me.GET("/bookings", h.ListMine)
		me.POST("/bookings/:id/cancel", h.CancelMine)
	}
}

// Create handles POST /api/bookings. Whatever the payload claims, the stored
// booking starts at REQUESTED.
func (h *BookingHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, booking)
}

// ListMine handles GET /api/me/bookings. Cancelled rows stay hidden.
func (h *BookingHandler) ListMine(c *gin.Context) {
	user := middleware.GetUser(c)

	bookings, err := h.bookings.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, bookings)
}

// CancelMine handles POST /api/me/bookings/:id/cancel. Someone else's
// booking and a nonexistent one fail the same way.
func (h *BookingHandler) CancelMine(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.bookings.CancelMine(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{"cancelled": true})
}
