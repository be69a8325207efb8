package services_test

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

func seedOrders(t *testing.T, f *fixture, ids ...int64) {
	t.Helper()
	var history []domain.Order
	for _, id := range ids {
		history = append(history, domain.Order{ID: id, Status: domain.StatusProcessing, PaymentMethod: domain.PaymentCOD})
	}
	if err := repos.NewOrderRepo(f.st).Save(context.Background(), history); err != nil {
		t.Fatal(err)
	}
}

func TestOrders_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedOrders(t, f, 1, 2, 3)

	ok, err := f.orders.DeleteOrder(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("first delete: %v %v", ok, err)
	}
	ok, err = f.orders.DeleteOrder(ctx, 2)
	if err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	list, _ := f.orders.ListOrders(ctx)
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 3 {
		t.Fatalf("list=%+v", list)
	}
}

func TestOrders_GetAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedOrders(t, f, 10)

	if o, err := f.orders.GetOrder(ctx, 10); err != nil || o.ID != 10 {
		t.Fatalf("get: %+v %v", o, err)
	}
	if _, err := f.orders.GetOrder(ctx, 11); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := f.orders.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	list, err := f.orders.ListOrders(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("after clear: %+v %v", list, err)
	}
}
