package handlers

import (
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.ListOrders(c.UserContext())
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid order id")
	}
	deleted, err := h.Orders.DeleteOrder(c.UserContext(), id)
	if err != nil {
		return fail(c, "orders.delete", err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (h *OrderHandler) Clear(c *fiber.Ctx) error {
	if err := h.Orders.ClearAll(c.UserContext()); err != nil {
		return fail(c, "orders.clear", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type receiptRow struct {
	Title    string
	Quantity int
	Price    string
	Subtotal string
}

// Receipt renders GET /orders/:id/receipt.
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, err := h.Orders.GetOrder(c.UserContext(), id)
	if err != nil {
		applog.Security(c, "orders.receipt.miss", map[string]any{"order_id": id})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	rows := make([]receiptRow, 0, len(o.Items))
	for _, it := range o.Items {
		rows = append(rows, receiptRow{
			Title:    it.Title,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
			Subtotal: it.Subtotal().StringFixed(2),
		})
	}
	return render(c, "receipt", fiber.Map{"Order": o, "Rows": rows, "Total": o.Total.StringFixed(2)})
}
