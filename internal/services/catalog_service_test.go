package services_test

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/services"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s stubCatalog) Products(context.Context) ([]domain.Product, error) { return s.products, s.err }
func (s stubCatalog) Categories(context.Context) ([]string, error) {
	return []string{"electronics", "jewelery"}, s.err
}

func TestCatalog_Filter(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCatalogService(stubCatalog{products: []domain.Product{
		{ID: 1, Title: "Fjallraven Backpack", Category: "men's clothing"},
		{ID: 2, Title: "WD 2TB Elements", Category: "electronics"},
		{ID: 3, Title: "Solid Gold Petite", Category: "jewelery"},
		{ID: 4, Title: "SanDisk SSD", Category: "electronics"},
	}})

	got, err := svc.ListProducts(ctx, "  back ", "")
	if err != nil || len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("q filter: %+v %v", got, err)
	}
	got, _ = svc.ListProducts(ctx, "", "electronics")
	if len(got) != 2 {
		t.Fatalf("category filter: %+v", got)
	}
	got, _ = svc.ListProducts(ctx, "ssd", "electronics")
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("both: %+v", got)
	}
	if p, err := svc.GetProduct(ctx, 3); err != nil || p.Category != "jewelery" {
		t.Fatalf("get: %+v %v", p, err)
	}
	if _, err := svc.GetProduct(ctx, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalog_Error(t *testing.T) {
	boom := errors.New("offline")
	svc := services.NewCatalogService(stubCatalog{err: boom})
	if _, err := svc.ListProducts(context.Background(), "", ""); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestBadgeCounter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := services.NewBadgeCounter(f.bus, 0)
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "2"), 3)
	if b.Count() != 3 {
		t.Fatalf("count=%d", b.Count())
	}
	b.Close()
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "2"), 1)
	if b.Count() != 3 {
		t.Fatalf("closed counter updated: %d", b.Count())
	}
}
