package services

import (
	"context"
	"strings"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
)

// Catalog is the remote product source.
type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogService struct {
	Client Catalog
}

func NewCatalogService(c Catalog) *CatalogService { return &CatalogService{Client: c} }

// ListProducts fetches the catalog and filters it by title substring and
// exact category. Empty arguments match everything.
func (s *CatalogService) ListProducts(ctx context.Context, q, category string) ([]domain.Product, error) {
	ps, err := s.Client.Products(ctx)
	if err != nil {
		applog.Error(nil, "catalog.products.fail", err, nil)
		return nil, err
	}
	return FilterProducts(ps, q, category), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.Client.Categories(ctx)
	if err != nil {
		applog.Error(nil, "catalog.categories.fail", err, nil)
		return nil, err
	}
	return cats, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	ps, err := s.ListProducts(ctx, "", "")
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range ps {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func FilterProducts(ps []domain.Product, q, category string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
