package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the label language from ?lang= or Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if queryLanguage := strings.TrimSpace(c.Query("lang")); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}
