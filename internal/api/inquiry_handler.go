package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/api/middleware"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// InquiryHandler handles the public inquiry form.
type InquiryHandler struct {
	inquiries repository.InquiryRepository
}

// NewInquiryHandler creates a new inquiry handler.
func NewInquiryHandler(inquiries repository.InquiryRepository) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// RegisterRoutes registers the inquiry routes. Auth is optional: anonymous
// visitors may submit too.
func (h *InquiryHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	router.POST("/inquiries", authMiddleware.OptionalAuth(), h.Create)
}

// Create handles POST /api/inquiries.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req domain.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	userID := ""
	if user := middleware.GetUser(c); user != nil {
		userID = user.ID
	}

	inquiry, err := h.inquiries.Create(c.Request.Context(), userID, &req)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, inquiry)
}
