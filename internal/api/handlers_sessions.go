package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	if !handler.sessionLimiter.allow(requestLimiterKey(c), handler.now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many sessions")
	}

	session, err := handler.selection.CreateSession()
	if err != nil {
		return serviceError(c, err)
	}

	token, expiresAt, err := handler.buildSessionToken(session.PublicID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	if err := handler.setSessionCookie(c, token, expiresAt); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": session.PublicID,
		"token":      token,
		"expires_at": expiresAt.UTC(),
	})
}

func (handler *Handler) GetSelection(c *fiber.Ctx) error {
	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	snapshot, err := handler.selection.Snapshot(sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(snapshot)
}

func (handler *Handler) GetRanges(c *fiber.Ctx) error {
	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ranges, err := handler.selection.Ranges(sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ranges": ranges})
}

func (handler *Handler) ClearRanges(c *fiber.Ctx) error {
	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.selection.ClearRanges(sessionID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
