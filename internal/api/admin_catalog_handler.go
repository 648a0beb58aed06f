package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// AdminCatalogHandler exposes the admin console's product and taxonomy
// management endpoints.
type AdminCatalogHandler struct {
	catalog *services.CatalogService
	themes  repository.ThemeRepository
}

// NewAdminCatalogHandler creates a new admin catalog handler.
func NewAdminCatalogHandler(catalog *services.CatalogService, themes repository.ThemeRepository) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalog: catalog, themes: themes}
}

// RegisterRoutes registers the admin catalog routes. The group is expected
// to already carry auth and admin middleware.
func (h *AdminCatalogHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/products", h.ListProducts)
	admin.GET("/products/:id", h.GetProduct)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.GET("/themes", h.ListThemes)
	admin.POST("/themes", h.CreateTheme)
	admin.PATCH("/themes/:id", h.UpdateTheme)
	admin.DELETE("/themes/:id", h.DeleteTheme)

	admin.GET("/areas", h.ListAreas)
	admin.POST("/areas", h.CreateArea)
	admin.PATCH("/areas/:id", h.UpdateArea)
	admin.DELETE("/areas/:id", h.DeleteArea)
}

// ListProducts handles GET /api/admin/products. Unlike the public listing it
// spans every status unless one is asked for.
func (h *AdminCatalogHandler) ListProducts(c *gin.Context) {
	limit, offset := parsePagination(c)
	filters := repository.ProductFilters{
		Search:  c.Query("q"),
		Region:  c.Query("region"),
		ThemeID: c.Query("theme"),
		Limit:   limit,
		Offset:  offset,
	}
	if status := c.Query("status"); status != "" {
		filters.Status = []domain.ProductStatus{domain.ProductStatus(status)}
	}

	products, err := h.catalog.ListAdmin(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, products)
}

func (h *AdminCatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "PRODUCT_NOT_FOUND", "Product not found"))
		return
	}
	SuccessResponse(c, product)
}

func (h *AdminCatalogHandler) CreateProduct(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, product)
}

func (h *AdminCatalogHandler) UpdateProduct(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "PRODUCT_NOT_FOUND", "Product not found"))
		return
	}
	SuccessResponse(c, product)
}

func (h *AdminCatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "PRODUCT_NOT_FOUND", "Product not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminCatalogHandler) ListThemes(c *gin.Context) {
	themes, err := h.themes.ListThemes(c.Request.Context())
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, themes)
}

func (h *AdminCatalogHandler) CreateTheme(c *gin.Context) {
	var input domain.ThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}
	if input.Name == nil || *input.Name == "" {
		SanitizedErrorResponse(c, domain.NewValidationError("MISSING_NAME", "Theme name is required", nil))
		return
	}

	theme, err := h.themes.CreateTheme(c.Request.Context(), &input)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, theme)
}

func (h *AdminCatalogHandler) UpdateTheme(c *gin.Context) {
	var input domain.ThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	theme, err := h.themes.UpdateTheme(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "THEME_NOT_FOUND", "Theme not found"))
		return
	}
	SuccessResponse(c, theme)
}

func (h *AdminCatalogHandler) DeleteTheme(c *gin.Context) {
	if err := h.themes.DeleteTheme(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "THEME_NOT_FOUND", "Theme not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAreas handles GET /api/admin/areas. Inactive areas are included so the
// console can toggle them back on.
func (h *AdminCatalogHandler) ListAreas(c *gin.Context) {
	areas, err := h.themes.ListAreas(c.Request.Context(), repository.AreaFilters{
		ThemeID: c.Query("theme"),
	})
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, areas)
}

func (h *AdminCatalogHandler) CreateArea(c *gin.Context) {
	var input domain.AreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}
	if input.ThemeID == nil || *input.ThemeID == "" {
		SanitizedErrorResponse(c, domain.NewValidationError("MISSING_THEME", "Area theme is required", nil))
		return
	}
	if input.Name == nil || *input.Name == "" {
		SanitizedErrorResponse(c, domain.NewValidationError("MISSING_NAME", "Area name is required", nil))
		return
	}

	area, err := h.themes.CreateArea(c.Request.Context(), &input)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, area)
}

func (h *AdminCatalogHandler) UpdateArea(c *gin.Context) {
	var input domain.AreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		SanitizedErrorResponse(c, domain.NewValidationError("INVALID_PAYLOAD", err.Error(), nil))
		return
	}

	area, err := h.themes.UpdateArea(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "AREA_NOT_FOUND", "Area not found"))
		return
	}
	SuccessResponse(c, area)
}

func (h *AdminCatalogHandler) DeleteArea(c *gin.Context) {
	if err := h.themes.DeleteArea(c.Request.Context(), c.Param("id")); err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "AREA_NOT_FOUND", "Area not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
