package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

func TestCatalogServiceListPublished(t *testing.T) {
	var gotFilters repository.ProductFilters
	products := &mockProductRepo{
		listFn: func(_ context.Context, filters repository.ProductFilters) ([]*domain.Product, error) {
			gotFilters = filters
			return []*domain.Product{
				{ID: "p1", ThumbnailRef: "images/a.jpg"},
				{ID: "p2", ThumbnailRef: "https://example.com/b.jpg"},
				{ID: "p3"},
			}, nil
		},
	}
	resolver := &mockResolver{
		resolveFn: func(_ context.Context, ref string) (string, error) {
			return "resolved:" + ref, nil
		},
	}
	svc := NewCatalogService(products, nil, resolver, testLogger())

	result, err := svc.ListPublished(context.Background(), repository.ProductFilters{Search: "jeju"})
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}

	if len(gotFilters.Status) != 1 || gotFilters.Status[0] != domain.ProductPublished {
		t.Errorf("public listing status filter = %v, want [PUBLISHED]", gotFilters.Status)
	}
	if result[0].ThumbnailURL != "resolved:images/a.jpg" {
		t.Errorf("p1 thumbnail = %q", result[0].ThumbnailURL)
	}
	if result[2].ThumbnailURL != "" {
		t.Errorf("p3 has no reference but thumbnail = %q", result[2].ThumbnailURL)
	}

	// Every product with a reference was resolved, in any order.
	sort.Strings(resolver.seen)
	if len(resolver.seen) != 2 {
		t.Fatalf("resolver saw %d refs, want 2: %v", len(resolver.seen), resolver.seen)
	}
}

func TestCatalogServiceResolutionFailureDegrades(t *testing.T) {
	products := &mockProductRepo{
		listFn: func(_ context.Context, _ repository.ProductFilters) ([]*domain.Product, error) {
			return []*domain.Product{
				{ID: "p1", ThumbnailRef: "images/broken.jpg"},
				{ID: "p2", ThumbnailRef: "images/ok.jpg"},
			}, nil
		},
	}
	resolver := &mockResolver{
		resolveFn: func(_ context.Context, ref string) (string, error) {
			if ref == "images/broken.jpg" {
				return "", errors.New("backend down")
			}
			return "resolved:" + ref, nil
		},
	}
	svc := NewCatalogService(products, nil, resolver, testLogger())

	result, err := svc.ListAdmin(context.Background(), repository.ProductFilters{})
	if err != nil {
		t.Fatalf("ListAdmin() error = %v, one broken thumbnail must not fail the page", err)
	}
	if result[0].ThumbnailURL != "" {
		t.Errorf("broken thumbnail resolved to %q, want empty", result[0].ThumbnailURL)
	}
	if result[1].ThumbnailURL != "resolved:images/ok.jpg" {
		t.Errorf("healthy thumbnail = %q", result[1].ThumbnailURL)
	}
}

func TestCatalogServiceGetProduct(t *testing.T) {
	products := &mockProductRepo{
		getByIDFn: func(_ context.Context, id string) (*domain.Product, error) {
			if id != "p1" {
				return nil, repository.ErrNotFound
			}
			return &domain.Product{ID: "p1", ThumbnailRef: "images/a.jpg"}, nil
		},
	}
	svc := NewCatalogService(products, nil, &mockResolver{}, testLogger())

	product, err := svc.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if product.ThumbnailURL == "" {
		t.Error("thumbnail was not resolved")
	}

	if _, err := svc.GetProduct(context.Background(), "missing"); !repository.IsNotFound(err) {
		t.Errorf("GetProduct(missing) error = %v, want not found", err)
	}
}
