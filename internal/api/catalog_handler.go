package api

import (
	"github.com/gin-gonic/gin"

	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// CatalogHandler handles the public product and taxonomy endpoints.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)
	router.GET("/themes", h.ListThemes)
	router.GET("/themes/:id/areas", h.ListAreas)
}

// ListProducts handles GET /api/products. Only published products are
// visible here; visitors never see drafts or hidden rows.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filters := repository.ProductFilters{
		Search:  c.Query("q"),
		Region:  c.Query("region"),
		ThemeID: c.Query("theme"),
	}

	products, err := h.catalog.ListPublished(c.Request.Context(), filters)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, products)
}

// GetProduct handles GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		SanitizedErrorResponse(c, notFoundOr(err, "PRODUCT_NOT_FOUND", "Product does not exist"))
		return
	}
	SuccessResponse(c, product)
}

// ListThemes handles GET /api/themes.
func (h *CatalogHandler) ListThemes(c *gin.Context) {
	themes, err := h.catalog.ListThemes(c.Request.Context())
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, themes)
}

// ListAreas handles GET /api/themes/:id/areas. The public site only sees
// active areas.
func (h *CatalogHandler) ListAreas(c *gin.Context) {
	areas, err := h.catalog.ListAreas(c.Request.Context(), repository.AreaFilters{
		ThemeID:    c.Param("id"),
		ActiveOnly: true,
	})
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, areas)
}
