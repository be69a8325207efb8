package services

import (
	"context"
	"sync"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

// OrderService owns the orderHistory key. Checkout appends through Place so
// both writers share one lock.
type OrderService struct {
	Orders *repos.OrderRepo

	mu sync.Mutex
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders.List(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	history, err := s.ListOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range history {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

// Place appends o to the history and removes the cart key in one batch.
// The id is bumped past the last order when the clock did not move forward.
func (s *OrderService) Place(ctx context.Context, o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, err := s.Orders.List(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if n := len(history); n > 0 && o.ID <= history[n-1].ID {
		o.ID = history[n-1].ID + 1
	}
	if err := s.Orders.CommitCheckout(ctx, append(history, o)); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// DeleteOrder reports whether an order was removed. An absent id writes nothing.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, err := s.Orders.List(ctx)
	if err != nil {
		return false, err
	}
	next := make([]domain.Order, 0, len(history))
	for _, o := range history {
		if o.ID != id {
			next = append(next, o)
		}
	}
	if len(next) == len(history) {
		return false, nil
	}
	if err := s.Orders.Save(ctx, next); err != nil {
		applog.Error(nil, "orders.delete.fail", err, map[string]any{"order": id})
		return false, err
	}
	applog.Audit(nil, "orders.delete", map[string]any{"order": id})
	return true, nil
}

func (s *OrderService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Orders.Clear(ctx); err != nil {
		applog.Error(nil, "orders.clear.fail", err, nil)
		return err
	}
	applog.Audit(nil, "orders.clear", nil)
	return nil
}
