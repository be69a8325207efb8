package handlers

import (
	"shopfront/internal/domain"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    services.CartStore
	Counter *services.BadgeCounter
}

type cartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total string            `json:"total"`
	Count int               `json:"count"`
}

func (h *CartHandler) view() cartView {
	lines := h.Cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartView{Lines: lines, Total: h.Cart.TotalPrice().StringFixed(2), Count: h.Cart.CartCount()}
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.view())
}

func (h *CartHandler) Badge(c *fiber.Ctx) error {
	n := h.Cart.CartCount()
	if h.Counter != nil {
		n = h.Counter.Count()
	}
	return c.JSON(fiber.Map{"count": n})
}

type addLineReq struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Add handles POST /cart/lines.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "product", "invalid request body")
	}
	if req.Product.ID <= 0 {
		return badRequest(c, "product", "missing product id")
	}
	if _, err := h.Cart.AddOrMergeLine(c.UserContext(), req.Product, validate.ClampQty(req.Quantity)); err != nil {
		return fail(c, "cart.add", err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.view())
}

// Update handles PUT /cart/lines/:id. A quantity of zero removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "quantity", "invalid request body")
	}
	qty := req.Quantity
	if qty > 0 {
		qty = validate.ClampQty(qty)
	}
	if err := h.Cart.UpdateCartQuantity(c.UserContext(), id, qty); err != nil {
		return fail(c, "cart.update", err)
	}
	return c.JSON(h.view())
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	if err := h.Cart.RemoveFromCart(c.UserContext(), id); err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(h.view())
}
