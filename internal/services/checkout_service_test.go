package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/events"
	"shopfront/internal/repos"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

var addrA = domain.Address{Name: "A", Phone: "0123456789", Address: "X"}

func TestCheckout_ConfirmOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	f.checkout.Now = func() time.Time { return fixed }

	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "20"), 2)

	var badge = -1
	f.bus.Subscribe(events.CartBadgeChanged, func(p any) { badge = p.(int) })

	sess, err := f.checkout.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sess.State != services.StateEditing || sess.PaymentMethod != domain.PaymentCOD || sess.ID == "" {
		t.Fatalf("begin=%+v", sess)
	}
	if _, err := f.checkout.SaveAddress(ctx, domain.Address{Name: " A ", Phone: "0123456789", Address: "X"}); err != nil {
		t.Fatal(err)
	}

	o, err := f.checkout.ConfirmOrder(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if o.Total.String() != "40" || o.Status != domain.StatusProcessing || o.ID != fixed.UnixMilli() {
		t.Fatalf("order=%+v", o)
	}
	if o.Date != "2024-03-09 14:05:00" || o.Address != addrA {
		t.Fatalf("order date/address=%q %+v", o.Date, o.Address)
	}
	if _, ok := f.raw(t, repos.KeyCart); ok {
		t.Fatal("cart key still present")
	}
	if f.cart.CartCount() != 0 || badge != 0 {
		t.Fatalf("cart store not reset: count=%d badge=%d", f.cart.CartCount(), badge)
	}
	history, _ := f.orders.ListOrders(ctx)
	if len(history) != 1 || history[0].ID != o.ID {
		t.Fatalf("history=%+v", history)
	}
	saved, ok, _ := repos.NewAddressRepo(f.st).Get(ctx)
	if !ok || saved != addrA {
		t.Fatalf("address not persisted: %+v", saved)
	}

	sess, _ = f.checkout.Session()
	if sess.State != services.StateCompleted || sess.OrderID != o.ID {
		t.Fatalf("session=%+v", sess)
	}
	if _, err := f.checkout.ConfirmOrder(ctx); !domain.IsValidation(err) {
		t.Fatalf("second confirm should be rejected, got %v", err)
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.checkout.SaveAddress(ctx, addrA); err != nil {
		t.Fatal(err)
	}
	_, err := f.checkout.ConfirmOrder(ctx)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "cart" {
		t.Fatalf("want cart ValidationError, got %v", err)
	}
	if _, ok := f.raw(t, repos.KeyOrderHistory); ok {
		t.Fatal("history written for empty cart")
	}
	sess, _ := f.checkout.Session()
	if sess.State != services.StateEditing {
		t.Fatalf("state=%s", sess.State)
	}
}

func TestCheckout_IncompleteAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "20"), 1)

	_, err := f.checkout.SaveAddress(ctx, domain.Address{Name: "A", Phone: "  ", Address: "X"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "phone" {
		t.Fatalf("want phone ValidationError, got %v", err)
	}
	if _, ok := f.raw(t, repos.KeyAddress); ok {
		t.Fatal("invalid address persisted")
	}
	if _, err := f.checkout.ConfirmOrder(ctx); !domain.IsValidation(err) {
		t.Fatalf("confirm without address: %v", err)
	}
	if f.cart.CartCount() != 1 {
		t.Fatal("cart changed on rejected confirm")
	}
}

func TestCheckout_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "20"), 1)
	_, _ = f.cart.AddOrMergeLine(ctx, product(2, "3"), 2)
	if _, err := f.checkout.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	sess, err := f.checkout.UpdateQuantity(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Lines[1].Quantity != 3 || sess.Total.String() != "29" {
		t.Fatalf("session=%+v", sess)
	}
	if f.cart.CartCount() != 4 {
		t.Fatalf("cart store not reloaded: %d", f.cart.CartCount())
	}

	sess, err = f.checkout.UpdateQuantity(ctx, 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Lines) != 1 || sess.Lines[0].ID != 2 {
		t.Fatalf("line not removed: %+v", sess.Lines)
	}

	// out of range is a no-op
	if sess, err = f.checkout.UpdateQuantity(ctx, 5, 1); err != nil || len(sess.Lines) != 1 {
		t.Fatalf("out of range: %+v %v", sess, err)
	}
}

func TestCheckout_UpdateQuantityBounded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "20"), 1)

	_, err := f.checkout.UpdateQuantity(ctx, 0, math.MaxInt)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "delta" {
		t.Fatalf("want delta ValidationError, got %v", err)
	}
	if lines := f.cart.Lines(); len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("cart changed: %+v", lines)
	}

	sess, err := f.checkout.UpdateQuantity(ctx, 0, 99)
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Lines) != 1 || sess.Lines[0].Quantity != validate.MaxQty {
		t.Fatalf("large increment: %+v", sess.Lines)
	}
}

func TestCheckout_PaymentMethod(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	sess, err := f.checkout.SelectPaymentMethod(ctx, domain.PaymentMomo)
	if err != nil || sess.PaymentMethod != domain.PaymentMomo {
		t.Fatalf("select: %+v %v", sess, err)
	}
	if _, err := f.checkout.SelectPaymentMethod(ctx, "Bitcoin"); !domain.IsValidation(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestCheckout_FailedCommitLeavesState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.cart.AddOrMergeLine(ctx, product(1, "20"), 2)
	_, _ = f.checkout.SaveAddress(ctx, addrA)

	f.st.failing.Store(true)
	_, err := f.checkout.ConfirmOrder(ctx)
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("want StorageError, got %v", err)
	}
	f.st.failing.Store(false)

	if _, ok := f.raw(t, repos.KeyCart); !ok {
		t.Fatal("cart removed by failed commit")
	}
	if _, ok := f.raw(t, repos.KeyOrderHistory); ok {
		t.Fatal("history written by failed commit")
	}
	sess, _ := f.checkout.Session()
	if sess.State != services.StateEditing || f.cart.CartCount() != 2 {
		t.Fatalf("state=%s count=%d", sess.State, f.cart.CartCount())
	}
	if _, err := f.checkout.ConfirmOrder(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestCheckout_OrderIDsIncrease(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.UnixMilli(1700000000000)
	f.checkout.Now = func() time.Time { return fixed }

	var ids []int64
	for i := 0; i < 2; i++ {
		_, _ = f.cart.AddOrMergeLine(ctx, product(1, "1"), 1)
		if _, err := f.checkout.Begin(ctx); err != nil {
			t.Fatal(err)
		}
		_, _ = f.checkout.SaveAddress(ctx, addrA)
		o, err := f.checkout.ConfirmOrder(ctx)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, o.ID)
	}
	if ids[1] != ids[0]+1 {
		t.Fatalf("ids=%v", ids)
	}
}
