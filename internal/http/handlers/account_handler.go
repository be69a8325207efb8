package handlers

import (
	"shopfront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	Accounts *services.AccountService
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Remember bool   `json:"remember"`
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "email", "invalid request body")
	}
	if err := h.Accounts.Register(c.UserContext(), req.Email, req.Password, req.Confirm); err != nil {
		return fail(c, "account.register", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"email": req.Email})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "email", "invalid request body")
	}
	acc, err := h.Accounts.Login(c.UserContext(), req.Email, req.Password, req.Remember)
	if err != nil {
		return fail(c, "account.login", err)
	}
	return c.JSON(fiber.Map{"email": acc.Email, "remember": req.Remember})
}

func (h *AccountHandler) Reset(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "email", "invalid request body")
	}
	if err := h.Accounts.ResetPassword(c.UserContext(), req.Email, req.Password, req.Confirm); err != nil {
		return fail(c, "account.reset", err)
	}
	return c.JSON(fiber.Map{"reset": true})
}

// Remembered prefills the login form.
func (h *AccountHandler) Remembered(c *fiber.Ctx) error {
	email, ok, err := h.Accounts.Remembered(c.UserContext())
	if err != nil {
		return fail(c, "account.remembered", err)
	}
	return c.JSON(fiber.Map{"email": email, "remembered": ok})
}
