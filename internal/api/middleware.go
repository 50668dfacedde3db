package api

import "github.com/gofiber/fiber/v2"

const (
	sessionCookieName  = "rangepick_session"
	contextSessionKey  = "current_session"
	contextLanguageKey = "current_language"
)

func currentSessionID(c *fiber.Ctx) (string, bool) {
	sessionID, ok := c.Locals(contextSessionKey).(string)
	return sessionID, ok && sessionID != ""
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
