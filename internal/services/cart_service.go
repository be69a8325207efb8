package services

import (
	"context"
	"sync"

	"shopfront/internal/domain"
	"shopfront/internal/events"
	applog "shopfront/internal/log"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
	"shopfront/internal/validate"

	"github.com/shopspring/decimal"
)

// CartStore is the cart as seen by handlers and the checkout pipeline.
type CartStore interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	AddOrMergeLine(ctx context.Context, p domain.Product, qty int) (domain.CartLine, error)
	UpdateCartQuantity(ctx context.Context, id int64, qty int) error
	RemoveFromCart(ctx context.Context, id int64) error
	TotalPrice() decimal.Decimal
	CartCount() int
	Lines() []domain.CartLine
	Reset()
}

// CartService holds the authoritative in-memory cart and writes it through to
// the cart key. Memory only changes after the write succeeded.
type CartService struct {
	Carts   *repos.CartRepo
	Bus     *events.Bus
	Metrics *metrics.Registry

	mu    sync.Mutex
	lines []domain.CartLine
}

func NewCartService(carts *repos.CartRepo, bus *events.Bus, m *metrics.Registry) *CartService {
	return &CartService{Carts: carts, Bus: bus, Metrics: m}
}

var _ CartStore = (*CartService)(nil)

// Load replaces memory with the persisted cart.
func (s *CartService) Load(ctx context.Context) error {
	lines, err := s.Carts.Load(ctx)
	if err != nil {
		applog.Error(nil, "cart.load.fail", err, nil)
		return err
	}
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

// Reload is Load followed by a badge update, for writers other than this store.
func (s *CartService) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.publish(s.CartCount())
	return nil
}

// AddOrMergeLine appends a line for p, or adds qty to the existing line with
// the same id. Product fields of an existing line are kept as first added.
// Line quantities never exceed validate.MaxQty.
func (s *CartService) AddOrMergeLine(ctx context.Context, p domain.Product, qty int) (domain.CartLine, error) {
	qty = validate.ClampQty(qty)
	s.mu.Lock()
	next := s.copyLines()
	idx := indexOf(next, p.ID)
	if idx >= 0 {
		next[idx].Quantity = min(next[idx].Quantity+qty, validate.MaxQty)
	} else {
		idx = len(next)
		next = append(next, domain.CartLine{Product: p, Quantity: qty})
	}
	line := next[idx]
	count, err := s.commit(ctx, "add", next)
	s.mu.Unlock()
	if err != nil {
		return domain.CartLine{}, err
	}
	applog.Audit(nil, "cart.add", map[string]any{"product": p.ID, "quantity": line.Quantity})
	s.publish(count)
	return line, nil
}

// UpdateCartQuantity sets the quantity of line id. A quantity of zero or less
// removes the line; an unknown id is ignored.
func (s *CartService) UpdateCartQuantity(ctx context.Context, id int64, qty int) error {
	s.mu.Lock()
	idx := indexOf(s.lines, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	next := s.copyLines()
	op := "update"
	if qty <= 0 {
		next = append(next[:idx], next[idx+1:]...)
		op = "remove"
	} else {
		next[idx].Quantity = min(qty, validate.MaxQty)
	}
	count, err := s.commit(ctx, op, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(count)
	return nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, id int64) error {
	s.mu.Lock()
	idx := indexOf(s.lines, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	next := s.copyLines()
	next = append(next[:idx], next[idx+1:]...)
	count, err := s.commit(ctx, "remove", next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(count)
	return nil
}

// TotalPrice is recomputed on every call.
func (s *CartService) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.LinesTotal(s.lines)
}

func (s *CartService) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.LinesCount(s.lines)
}

func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

// Reset empties memory without writing; used once the cart key is gone.
func (s *CartService) Reset() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	s.Metrics.CartMutated("reset", 0)
	s.publish(0)
}

// commit must be called with mu held.
func (s *CartService) commit(ctx context.Context, op string, next []domain.CartLine) (int, error) {
	if err := s.Carts.Save(ctx, next); err != nil {
		s.Metrics.StorageFailed("cart.save")
		applog.Error(nil, "cart."+op+".fail", err, nil)
		return 0, err
	}
	s.lines = next
	count := domain.LinesCount(next)
	s.Metrics.CartMutated(op, count)
	return count, nil
}

func (s *CartService) publish(count int) {
	if s.Bus != nil {
		s.Bus.Publish(events.CartBadgeChanged, count)
	}
}

func (s *CartService) copyLines() []domain.CartLine {
	return append([]domain.CartLine(nil), s.lines...)
}

func indexOf(lines []domain.CartLine, id int64) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
