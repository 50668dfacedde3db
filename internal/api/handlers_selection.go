package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepick/internal/selection"
	"github.com/terraincognita07/rangepick/internal/services"
)

func (handler *Handler) ActivateDay(c *fiber.Ctx) error {
	return handler.applyDayEvent(c, selection.Activated)
}

func (handler *Handler) DeactivateDay(c *fiber.Ctx) error {
	return handler.applyDayEvent(c, selection.Deactivated)
}

func (handler *Handler) DisplayDay(c *fiber.Ctx) error {
	return handler.applyDayEvent(c, selection.Displaying)
}

func (handler *Handler) applyDayEvent(c *fiber.Ctx, newEvent func(selection.Date) selection.Event) error {
	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := services.ParseDayParam(c.Params("date"))
	if err != nil {
		return serviceError(c, err)
	}

	instruction, err := handler.selection.Apply(sessionID, newEvent(day))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(instruction)
}
