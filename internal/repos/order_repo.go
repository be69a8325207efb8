package repos

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type OrderRepo struct{ st kv.Store }

func NewOrderRepo(st kv.Store) *OrderRepo { return &OrderRepo{st: st} }

// List returns the history in insertion order.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if _, err := readDoc(ctx, r.st, KeyOrderHistory, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Order{}
	}
	return out, nil
}

func (r *OrderRepo) Save(ctx context.Context, history []domain.Order) error {
	if history == nil {
		history = []domain.Order{}
	}
	return writeDoc(ctx, r.st, KeyOrderHistory, history)
}

// CommitCheckout writes history and removes the cart key in one atomic batch.
func (r *OrderRepo) CommitCheckout(ctx context.Context, history []domain.Order) error {
	b, err := encodeDoc(KeyOrderHistory, history)
	if err != nil {
		return err
	}
	batch := kv.NewBatch().Set(KeyOrderHistory, b).Remove(KeyCart)
	return r.st.Apply(ctx, batch)
}

// Clear removes the whole history document.
func (r *OrderRepo) Clear(ctx context.Context) error {
	return r.st.Remove(ctx, KeyOrderHistory)
}
