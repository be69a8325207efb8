package handlers

import (
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List handles GET /products?q=&category=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	if q != "" {
		var ok bool
		if q, ok = validate.Q(q); !ok {
			return badRequest(c, "q", "search may only contain letters, numbers and basic punctuation")
		}
	}
	category, _ := validate.Required(c.Query("category"))
	ps, err := h.Catalog.ListProducts(c.UserContext(), q, category)
	if err != nil {
		return catalogFail(c, "catalog.products", err)
	}
	return c.JSON(ps)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return catalogFail(c, "catalog.categories", err)
	}
	return c.JSON(cats)
}

func catalogFail(c *fiber.Ctx, action string, err error) error {
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "The catalog is unavailable right now."})
}
