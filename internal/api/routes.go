package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api", handler.LanguageMiddleware)
	api.Post("/sessions", handler.CreateSession)

	selection := api.Group("/selection", handler.SessionRequired)
	selection.Get("", handler.GetSelection)
	selection.Get("/:date", handler.DisplayDay)
	selection.Post("/:date/activate", handler.ActivateDay)
	selection.Post("/:date/deactivate", handler.DeactivateDay)

	api.Get("/calendar", handler.SessionRequired, handler.GetCalendar)
	api.Get("/ranges", handler.SessionRequired, handler.GetRanges)
	api.Delete("/ranges", handler.SessionRequired, handler.ClearRanges)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
