package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// NoticeHandler handles the public notice board.
type NoticeHandler struct {
	notices repository.NoticeRepository
}

// NewNoticeHandler creates a new notice handler.
func NewNoticeHandler(notices repository.NoticeRepository) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// RegisterRoutes registers the public notice routes.
func (h *NoticeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notices", h.List)
	router.GET("/notices/:id", h.Get)
}

// List handles GET /api/notices. Visitors only ever see published rows;
// the tab query narrows to pinned or normal entries.
func (h *NoticeHandler) List(c *gin.Context) {
	filters := repository.NoticeFilters{
		Tab:    domain.NoticeTab(c.DefaultQuery("tab", string(domain.NoticeTabAll))),
		Search: c.Query("q"),
	}

	notices, err := h.notices.ListPublic(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, notices)
}

// Get handles GET /api/notices/:id.
func (h *NoticeHandler) Get(c *gin.Context) {
	notice, err := h.notices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "NOTICE_NOT_FOUND", "Notice does not exist"))
		return
	}
	if !notice.Published {
		SanitizedErrorResponse(c, domain.NewNotFoundError("NOTICE_NOT_FOUND", "Notice does not exist"))
		return
	}
	SuccessResponse(c, notice)
}
