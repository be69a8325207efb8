package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as served by the remote catalog.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// CartLine is a product snapshot taken at add time plus a quantity.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal sums price*quantity over lines.
func LinesTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// LinesCount sums quantities over lines.
func LinesCount(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "Card"
	PaymentMomo PaymentMethod = "Momo"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentMomo:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !PaymentMethod(s).Valid() {
		return fmt.Errorf("unknown payment method %q", s)
	}
	*m = PaymentMethod(s)
	return nil
}

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch OrderStatus(v) {
	case StatusProcessing, StatusDelivered, StatusCancelled:
		*s = OrderStatus(v)
		return nil
	}
	return fmt.Errorf("unknown order status %q", v)
}

// Order is immutable once created; only whole-record deletion is supported.
type Order struct {
	ID            int64           `json:"id"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Address       Address         `json:"address"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          string          `json:"date"`
	Status        OrderStatus     `json:"status"`
}

// OrderDateLayout formats Order.Date.
const OrderDateLayout = "2006-01-02 15:04:05"
