package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// AdminNoticeHandler exposes the admin console's notice management endpoints.
type AdminNoticeHandler struct {
	notices repository.NoticeRepository
}

// NewAdminNoticeHandler creates a new admin notice handler.
func NewAdminNoticeHandler(notices repository.NoticeRepository) *AdminNoticeHandler {
	return &AdminNoticeHandler{notices: notices}
}

// RegisterRoutes registers the admin notice routes. The group is expected to
// already carry auth and admin middleware.
func (h *AdminNoticeHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/notices", h.List)
	admin.GET("/notices/:id", h.Get)
	admin.POST("/notices", h.Create)
	admin.PATCH("/notices/:id", h.Update)
	admin.DELETE("/notices/:id", h.Delete)
}

// List handles GET /api/admin/notices. Drafts are visible here; the
// published query narrows to Y or N, defaulting to everything.
func (h *AdminNoticeHandler) List(c *gin.Context) {
	filters := repository.AdminNoticeFilters{
		Published: domain.PublishedFilter(c.DefaultQuery("published", string(domain.PublishedAll))),
		Search:    c.Query("q"),
	}

	notices, err := h.notices.ListAdmin(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, notices)
}

func (h *AdminNoticeHandler) Get(c *gin.Context) {
	notice, err := h.notices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "NOTICE_NOT_FOUND", "Notice not found"))
		return
	}
	SuccessResponse(c, notice)
}

func (h *AdminNoticeHandler) Create(c *gin.Context) {
	var input domain.NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}
	if err := input.ValidateForCreate(); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}

	notice, err := h.notices.Create(c.Request.Context(), &input)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, notice)
}

func (h *AdminNoticeHandler) Update(c *gin.Context) {
	var input domain.NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}
	notice, err := h.notices.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "NOTICE_NOT_FOUND", "Notice not found"))
		return
	}
	SuccessResponse(c, notice)
}

// Delete handles DELETE /api/admin/notices/:id. Deleting an already-missing
// notice is treated as success.
func (h *AdminNoticeHandler) Delete(c *gin.Context) {
	if err := h.notices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
