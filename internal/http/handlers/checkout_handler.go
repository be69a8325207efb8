package handlers

import (
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

func (h *CheckoutHandler) Begin(c *fiber.Ctx) error {
	sess, err := h.Checkout.Begin(c.UserContext())
	if err != nil {
		return fail(c, "checkout.begin", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

// View returns the current draft, starting one if none exists.
func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	if sess, ok := h.Checkout.Session(); ok {
		return c.JSON(sess)
	}
	return h.Begin(c)
}

func (h *CheckoutHandler) SaveAddress(c *fiber.Ctx) error {
	var a domain.Address
	if err := c.BodyParser(&a); err != nil {
		return badRequest(c, "address", "invalid request body")
	}
	sess, err := h.Checkout.SaveAddress(c.UserContext(), a)
	if err != nil {
		return fail(c, "checkout.address", err)
	}
	return c.JSON(sess)
}

func (h *CheckoutHandler) SelectPayment(c *fiber.Ctx) error {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "paymentMethod", "invalid request body")
	}
	sess, err := h.Checkout.SelectPaymentMethod(c.UserContext(), domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return fail(c, "checkout.payment", err)
	}
	return c.JSON(sess)
}

// UpdateLine handles POST /checkout/lines/:index with a {delta} body.
func (h *CheckoutHandler) UpdateLine(c *fiber.Ctx) error {
	idx, ok := validate.Index(c.Params("index"))
	if !ok {
		return badRequest(c, "index", "invalid line index")
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil || req.Delta == 0 {
		return badRequest(c, "delta", "delta must be a non-zero number")
	}
	if req.Delta > validate.MaxQty || req.Delta < -validate.MaxQty {
		return badRequest(c, "delta", "delta is out of range")
	}
	sess, err := h.Checkout.UpdateQuantity(c.UserContext(), idx, req.Delta)
	if err != nil {
		return fail(c, "checkout.quantity", err)
	}
	return c.JSON(sess)
}

func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	o, err := h.Checkout.ConfirmOrder(c.UserContext())
	if err != nil {
		return fail(c, "checkout.confirm", err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total.StringFixed(2)})
	return c.Status(fiber.StatusCreated).JSON(o)
}
