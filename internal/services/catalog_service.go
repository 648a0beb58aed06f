package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// thumbnailResolveConcurrency bounds the presign fan-out for one listing.
const thumbnailResolveConcurrency = 8

// URLResolver turns stored object references into render-ready URLs.
// Implemented by StorageService.
type URLResolver interface {
	ResolveURL(ctx context.Context, ref string) (string, error)
}

// CatalogService wraps product and taxonomy reads with thumbnail resolution,
// and routes admin writes through input validation.
type CatalogService struct {
	products repository.ProductRepository
	themes   repository.ThemeRepository
	resolver URLResolver
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	themes repository.ThemeRepository,
	resolver URLResolver,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		themes:   themes,
		resolver: resolver,
		logger:   logger,
	}
}

// ListPublished retrieves the public catalog page: PUBLISHED products only,
// thumbnails resolved concurrently. A row whose thumbnail fails to resolve is
// kept with an empty URL rather than failing the whole page.
func (s *CatalogService) ListPublished(ctx context.Context, filters repository.ProductFilters) ([]*domain.Product, error) {
	filters.Status = []domain.ProductStatus{domain.ProductPublished}
	return s.listResolved(ctx, filters)
}

// ListAdmin retrieves products for the admin console across all statuses.
func (s *CatalogService) ListAdmin(ctx context.Context, filters repository.ProductFilters) ([]*domain.Product, error) {
	return s.listResolved(ctx, filters)
}

func (s *CatalogService) listResolved(ctx context.Context, filters repository.ProductFilters) ([]*domain.Product, error) {
	products, err := s.products.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thumbnailResolveConcurrency)
	for _, product := range products {
		g.Go(func() error {
			s.resolveThumbnail(gctx, product)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product with its thumbnail resolved.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveThumbnail(ctx, product)
	return product, nil
}

// CreateProduct creates a product from admin input.
func (s *CatalogService) CreateProduct(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	product, err := s.products.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.resolveThumbnail(ctx, product)
	return product, nil
}

// UpdateProduct replaces all editable fields of a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	product, err := s.products.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.resolveThumbnail(ctx, product)
	return product, nil
}

// DeleteProduct hard-deletes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// ListThemes retrieves the theme list in display order.
func (s *CatalogService) ListThemes(ctx context.Context) ([]*domain.Theme, error) {
	return s.themes.ListThemes(ctx)
}

// ListAreas retrieves areas, restricted to active ones for the public site.
func (s *CatalogService) ListAreas(ctx context.Context, filters repository.AreaFilters) ([]*domain.Area, error) {
	return s.themes.ListAreas(ctx, filters)
}

// resolveThumbnail fills the product's display URL from its stored reference.
// Resolution failures degrade to an empty URL so one broken object cannot
// take down a listing.
func (s *CatalogService) resolveThumbnail(ctx context.Context, product *domain.Product) {
	if product == nil || product.ThumbnailRef == "" {
		return
	}
	url, err := s.resolver.ResolveURL(ctx, product.ThumbnailRef)
	if err != nil {
		s.logger.Warn("thumbnail resolution failed",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()))
		return
	}
	product.ThumbnailURL = url
}
