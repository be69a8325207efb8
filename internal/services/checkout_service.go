package services

import (
	"context"
	"sync"
	"time"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
	"shopfront/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutState string

const (
	StateEditing    CheckoutState = "Editing"
	StateConfirming CheckoutState = "Confirming"
	StateCompleted  CheckoutState = "Completed"
)

// Session is a snapshot of the checkout draft.
type Session struct {
	ID            string               `json:"id"`
	State         CheckoutState        `json:"state"`
	Lines         []domain.CartLine    `json:"lines"`
	Address       domain.Address       `json:"address"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Total         decimal.Decimal      `json:"total"`
	OrderID       int64                `json:"orderId,omitempty"`
}

type CheckoutService struct {
	Carts     *repos.CartRepo
	Addresses *repos.AddressRepo
	History   *OrderService
	Cart      CartStore
	Metrics   *metrics.Registry
	Now       func() time.Time

	mu   sync.Mutex
	sess *Session
}

func NewCheckoutService(carts *repos.CartRepo, addrs *repos.AddressRepo, history *OrderService, cart CartStore, m *metrics.Registry) *CheckoutService {
	return &CheckoutService{Carts: carts, Addresses: addrs, History: history, Cart: cart, Metrics: m, Now: time.Now}
}

// Begin starts a fresh session from the persisted cart and saved address.
func (s *CheckoutService) Begin(ctx context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx); err != nil {
		return Session{}, err
	}
	return s.snapshot(), nil
}

func (s *CheckoutService) begin(ctx context.Context) error {
	lines, err := s.Carts.Load(ctx)
	if err != nil {
		applog.Error(nil, "checkout.begin.fail", err, nil)
		return err
	}
	addr, _, err := s.Addresses.Get(ctx)
	if err != nil {
		applog.Error(nil, "checkout.begin.fail", err, nil)
		return err
	}
	s.sess = &Session{
		ID:            uuid.NewString(),
		State:         StateEditing,
		Lines:         lines,
		Address:       addr,
		PaymentMethod: domain.PaymentCOD,
	}
	return nil
}

// Session reports false when Begin was never called.
func (s *CheckoutService) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return Session{}, false
	}
	return s.snapshot(), true
}

// SaveAddress persists a for later checkouts as well as this one.
func (s *CheckoutService) SaveAddress(ctx context.Context, a domain.Address) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(ctx); err != nil {
		return Session{}, err
	}
	clean, err := cleanAddress(a)
	if err != nil {
		return Session{}, err
	}
	if err := s.Addresses.Save(ctx, clean); err != nil {
		applog.Error(nil, "checkout.address.fail", err, nil)
		return Session{}, err
	}
	s.sess.Address = clean
	return s.snapshot(), nil
}

func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, m domain.PaymentMethod) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(ctx); err != nil {
		return Session{}, err
	}
	if !m.Valid() {
		return Session{}, domain.Invalid("paymentMethod", "unknown payment method")
	}
	s.sess.PaymentMethod = m
	return s.snapshot(), nil
}

// UpdateQuantity changes line index of the persisted cart by delta and writes
// the whole cart back. A result of zero or less drops the line; the result is
// capped at validate.MaxQty.
func (s *CheckoutService) UpdateQuantity(ctx context.Context, index, delta int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(ctx); err != nil {
		return Session{}, err
	}
	if delta > validate.MaxQty || delta < -validate.MaxQty {
		return Session{}, domain.Invalid("delta", "quantity change is out of range")
	}
	lines, err := s.Carts.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	if index < 0 || index >= len(lines) {
		s.sess.Lines = lines
		return s.snapshot(), nil
	}
	lines[index].Quantity = min(lines[index].Quantity+delta, validate.MaxQty)
	if lines[index].Quantity <= 0 {
		lines = append(lines[:index], lines[index+1:]...)
	}
	if err := s.Carts.Save(ctx, lines); err != nil {
		s.Metrics.StorageFailed("cart.save")
		applog.Error(nil, "checkout.quantity.fail", err, map[string]any{"index": index})
		return Session{}, err
	}
	s.sess.Lines = lines
	if s.Cart != nil {
		if err := s.Cart.Reload(ctx); err != nil {
			applog.Error(nil, "checkout.cart.reload.fail", err, nil)
		}
	}
	return s.snapshot(), nil
}

// ConfirmOrder turns the current cart into an order. History is appended and
// the cart key removed in one batch.
func (s *CheckoutService) ConfirmOrder(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(ctx); err != nil {
		return domain.Order{}, err
	}
	if _, err := cleanAddress(s.sess.Address); err != nil {
		s.Metrics.Rejected("address")
		return domain.Order{}, domain.Invalid("address", "delivery address is incomplete")
	}
	lines, err := s.Carts.Load(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	s.sess.Lines = lines
	if len(lines) == 0 {
		s.Metrics.Rejected("empty_cart")
		return domain.Order{}, domain.Invalid("cart", "cart is empty")
	}

	s.sess.State = StateConfirming
	now := s.Now()
	order, err := s.History.Place(ctx, domain.Order{
		ID:            now.UnixMilli(),
		Items:         append([]domain.CartLine(nil), lines...),
		Total:         domain.LinesTotal(lines),
		Address:       s.sess.Address,
		PaymentMethod: s.sess.PaymentMethod,
		Date:          now.Format(domain.OrderDateLayout),
		Status:        domain.StatusProcessing,
	})
	if err != nil {
		s.sess.State = StateEditing
		s.Metrics.StorageFailed("checkout.commit")
		s.Metrics.Rejected("storage")
		applog.Error(nil, "checkout.confirm.fail", err, nil)
		return domain.Order{}, err
	}

	s.sess.State = StateCompleted
	s.sess.OrderID = order.ID
	if s.Cart != nil {
		s.Cart.Reset()
	}
	s.Metrics.OrderPlaced()
	applog.Audit(nil, "checkout.confirm", map[string]any{
		"order": order.ID, "total": order.Total.StringFixed(2), "payment": string(order.PaymentMethod),
	})
	return order, nil
}

// editable starts a session on first use and rejects a completed one.
func (s *CheckoutService) editable(ctx context.Context) error {
	if s.sess == nil {
		if err := s.begin(ctx); err != nil {
			return err
		}
	}
	if s.sess.State == StateCompleted {
		return domain.Invalid("session", "checkout already completed, begin a new one")
	}
	return nil
}

func (s *CheckoutService) snapshot() Session {
	out := *s.sess
	out.Lines = append([]domain.CartLine{}, s.sess.Lines...)
	out.Total = domain.LinesTotal(out.Lines)
	return out
}

func cleanAddress(a domain.Address) (domain.Address, error) {
	var ok bool
	if a.Name, ok = validate.Required(a.Name); !ok {
		return a, domain.Invalid("name", "name is required")
	}
	if a.Phone, ok = validate.Required(a.Phone); !ok {
		return a, domain.Invalid("phone", "phone is required")
	}
	if a.Address, ok = validate.Required(a.Address); !ok {
		return a, domain.Invalid("address", "address is required")
	}
	return a, nil
}
