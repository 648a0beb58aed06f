package api

import (
	"path"

	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/services"
)

// AdminStorageHandler exposes the admin console's object storage endpoints:
// uploading assets and minting signed URLs for private ones.
type AdminStorageHandler struct {
	storage *services.StorageService
}

// NewAdminStorageHandler creates a new admin storage handler.
func NewAdminStorageHandler(storage *services.StorageService) *AdminStorageHandler {
	return &AdminStorageHandler{storage: storage}
}

// RegisterRoutes registers the admin storage routes. The group is expected
// to already carry auth and admin middleware.
func (h *AdminStorageHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/storage/upload", h.Upload)
	admin.POST("/storage/sign", h.Sign)
}

// Upload handles POST /api/admin/storage/upload as a multipart form. The
// "path" field names the object key; when absent the original filename is
// used. Existing objects are not replaced unless overwrite=true.
func (h *AdminStorageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("MISSING_FILE", "A file part is required", nil))
		return
	}

	key := c.PostForm("path")
	if key == "" {
		key = path.Base(file.Filename)
	}
	overwrite := c.PostForm("overwrite") == "true"

	src, err := file.Open()
	if err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("UNREADABLE_FILE", err.Error(), nil))
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	cacheControl := c.PostForm("cache_control")

	stored, err := h.storage.Upload(c.Request.Context(), key, src, contentType, cacheControl, overwrite)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, gin.H{"path": stored})
}

type signRequest struct {
	Path string `json:"path" binding:"required"`
}

// Sign handles POST /api/admin/storage/sign, returning a time-limited URL
// for a private object. Absolute URLs pass through unchanged.
func (h *AdminStorageHandler) Sign(c *gin.Context) {
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	url, err := h.storage.ResolveURL(c.Request.Context(), req.Path)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{"url": url})
}
