package handlers

import (
	"shopfront/internal/domain"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoritesHandler struct {
	Favs *services.FavoritesService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	items, err := h.Favs.List(c.UserContext())
	if err != nil {
		return fail(c, "favorites.list", err)
	}
	return c.JSON(items)
}

func (h *FavoritesHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	on, err := h.Favs.IsFavorite(c.UserContext(), id)
	if err != nil {
		return fail(c, "favorites.check", err)
	}
	return c.JSON(fiber.Map{"favorite": on})
}

func parseProduct(c *fiber.Ctx) (domain.Product, bool) {
	var req struct {
		Product domain.Product `json:"product"`
	}
	if err := c.BodyParser(&req); err != nil || req.Product.ID <= 0 {
		return domain.Product{}, false
	}
	return req.Product, true
}

func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	p, ok := parseProduct(c)
	if !ok {
		return badRequest(c, "product", "missing product")
	}
	added, err := h.Favs.AddFavorite(c.UserContext(), p)
	if err != nil {
		return fail(c, "favorites.add", err)
	}
	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"favorite": true, "added": added})
}

func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	p, ok := parseProduct(c)
	if !ok {
		return badRequest(c, "product", "missing product")
	}
	on, err := h.Favs.ToggleFavorite(c.UserContext(), p)
	if err != nil {
		return fail(c, "favorites.toggle", err)
	}
	return c.JSON(fiber.Map{"favorite": on})
}

func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	removed, err := h.Favs.RemoveFavorite(c.UserContext(), id)
	if err != nil {
		return fail(c, "favorites.remove", err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}
