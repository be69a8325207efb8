package handlers

import (
	"errors"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const friendly = "Something went wrong. Please try again."

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, _ := c.Locals("requestid").(string); rid != "" {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

// fail maps service errors onto JSON responses. Storage and decode errors
// are logged and never shown to the client.
func fail(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": ve.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrBadCreds):
		applog.Security(c, action+".fail", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendly})
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	return fail(c, "request", domain.Invalid(field, msg))
}

// ErrorHandler is the app-wide fallback for errors returned by handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendly})
}
