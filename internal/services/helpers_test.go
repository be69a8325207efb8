package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/events"
	"shopfront/internal/kv"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
	"shopfront/internal/services"

	"github.com/shopspring/decimal"
)

func memstore(t *testing.T) kv.Store {
	t.Helper()
	st, err := kv.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// flakyStore fails every write while failing is set.
type flakyStore struct {
	kv.Store
	failing atomic.Bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) Set(ctx context.Context, key string, val []byte) error {
	if f.failing.Load() {
		return &domain.StorageError{Op: "set", Key: key, Err: errDiskFull}
	}
	return f.Store.Set(ctx, key, val)
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	if f.failing.Load() {
		return &domain.StorageError{Op: "remove", Key: key, Err: errDiskFull}
	}
	return f.Store.Remove(ctx, key)
}

func (f *flakyStore) Apply(ctx context.Context, b *kv.Batch) error {
	if f.failing.Load() {
		return &domain.StorageError{Op: "apply", Key: "batch", Err: errDiskFull}
	}
	return f.Store.Apply(ctx, b)
}

func product(id int64, price string) domain.Product {
	return domain.Product{ID: id, Title: "Item", Price: decimal.RequireFromString(price), Category: "electronics"}
}

type fixture struct {
	st       *flakyStore
	bus      *events.Bus
	cart     *services.CartService
	orders   *services.OrderService
	checkout *services.CheckoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := &flakyStore{Store: memstore(t)}
	bus := events.NewBus()
	m := metrics.NewRegistry()
	carts := repos.NewCartRepo(st)
	cart := services.NewCartService(carts, bus, m)
	orders := services.NewOrderService(repos.NewOrderRepo(st))
	co := services.NewCheckoutService(carts, repos.NewAddressRepo(st), orders, cart, m)
	return &fixture{st: st, bus: bus, cart: cart, orders: orders, checkout: co}
}

func (f *fixture) raw(t *testing.T, key string) ([]byte, bool) {
	t.Helper()
	b, ok, err := f.st.Get(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	return b, ok
}
