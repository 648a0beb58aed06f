package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// AdminInquiryHandler exposes the admin console's inquiry triage endpoints.
type AdminInquiryHandler struct {
	inquiries repository.InquiryRepository
}

// NewAdminInquiryHandler creates a new admin inquiry handler.
func NewAdminInquiryHandler(inquiries repository.InquiryRepository) *AdminInquiryHandler {
	return &AdminInquiryHandler{inquiries: inquiries}
}

// RegisterRoutes registers the admin inquiry routes. The group is expected
// to already carry auth and admin middleware.
func (h *AdminInquiryHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/inquiries", h.List)
	admin.GET("/inquiries/:id", h.Get)
	admin.PATCH("/inquiries/:id", h.Patch)
}

// List handles GET /api/admin/inquiries with an exact total for pagination.
// The status query accepts a comma-separated list, e.g. status=NEW,IN_PROGRESS.
func (h *AdminInquiryHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	filters := repository.InquiryFilters{
		Search: c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Status = append(filters.Status, domain.InquiryStatus(s))
			}
		}
	}

	inquiries, total, err := h.inquiries.ListAdmin(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	ListResponse(c, inquiries, total)
}

func (h *AdminInquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.inquiries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "INQUIRY_NOT_FOUND", "Inquiry not found"))
		return
	}
	SuccessResponse(c, inquiry)
}

// Patch handles PATCH /api/admin/inquiries/:id. Title and content are
// immutable; only status and admin memo are writable.
func (h *AdminInquiryHandler) Patch(c *gin.Context) {
	var patch domain.AdminInquiryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}
	if err := patch.Validate(); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}

	inquiry, err := h.inquiries.PatchAdmin(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "INQUIRY_NOT_FOUND", "Inquiry not found"))
		return
	}
	SuccessResponse(c, inquiry)
}
