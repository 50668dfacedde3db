package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinels onto HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return apiError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, services.ErrDateOutOfRange), errors.Is(err, calendar.ErrMonthOutOfRange):
		return apiError(c, fiber.StatusUnprocessableEntity, "date outside calendar range")
	case errors.Is(err, services.ErrDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrMonthInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	default:
		log.Printf("request %s %s failed: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
