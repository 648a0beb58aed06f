package api

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"tourvia/internal/api/middleware"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

// FavoriteHandler handles the signed-in user's favorites.
type FavoriteHandler struct {
	favorites repository.FavoriteRepository
	resolver  services.URLResolver
	logger    *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favorites repository.FavoriteRepository, resolver services.URLResolver, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, resolver: resolver, logger: logger}
}

// RegisterRoutes registers the favorite routes.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	favorites := router.Group("/me/favorites", authMiddleware.RequireAuth())
	{
		favorites.GET("", h.ListMine)
		favorites.GET("/:productId", h.Check)
		favorites.POST("/:productId", h.Add)
		favorites.DELETE("/:productId", h.Remove)
	}
}

// ListMine handles GET /api/me/favorites.
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	user := middleware.GetUser(c)

	favorites, err := h.favorites.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	h.resolveThumbnails(c.Request.Context(), favorites)
	SuccessResponse(c, favorites)
}

// Check handles GET /api/me/favorites/:productId.
func (h *FavoriteHandler) Check(c *gin.Context) {
	user := middleware.GetUser(c)

	favorited, err := h.favorites.IsFavorited(c.Request.Context(), user.ID, c.Param("productId"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{"favorited": favorited})
}

// Add handles POST /api/me/favorites/:productId.
func (h *FavoriteHandler) Add(c *gin.Context) {
	user := middleware.GetUser(c)

	favorite, err := h.favorites.Add(c.Request.Context(), user.ID, c.Param("productId"))
	if err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	CreatedResponse(c, favorite)
}

// Remove handles DELETE /api/me/favorites/:productId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.favorites.Remove(c.Request.Context(), user.ID, c.Param("productId")); err != nil {
		SanitizedErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{"removed": true})
}

func (h *FavoriteHandler) resolveThumbnails(ctx context.Context, favorites []*domain.Favorite) {
	for _, favorite := range favorites {
		if favorite.Product == nil || favorite.Product.ThumbnailURL == "" {
			continue
		}
		url, err := h.resolver.ResolveURL(ctx, favorite.Product.ThumbnailURL)
		if err != nil {
			h.logger.Warn("favorite thumbnail resolution failed",
				slog.String("favorite_id", favorite.ID),
				slog.String("error", err.Error()))
			continue
		}
		favorite.Product.ThumbnailURL = url
	}
}
