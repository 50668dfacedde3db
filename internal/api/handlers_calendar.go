package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/services"
)

type calendarResponse struct {
	Month    string            `json:"month"`
	Label    string            `json:"label"`
	Year     int               `json:"year"`
	Weekdays []string          `json:"weekdays"`
	Weeks    [][]calendar.Cell `json:"weeks"`
	Previous string            `json:"previous,omitempty"`
	Next     string            `json:"next,omitempty"`
	Months   []string          `json:"months"`
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	sessionID, ok := currentSessionID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	monthStart, err := services.ParseMonthParam(c.Query("month"), handler.now(), handler.location)
	if err != nil {
		return serviceError(c, err)
	}

	month, err := handler.selection.Month(sessionID, monthStart)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(handler.buildCalendarResponse(month, currentLanguage(c)))
}

func (handler *Handler) buildCalendarResponse(month calendar.Month, language string) calendarResponse {
	weekdays := make([]string, 0, len(month.Weekdays))
	for _, weekday := range month.Weekdays {
		weekdays = append(weekdays, handler.i18n.WeekdayShort(language, weekday))
	}

	response := calendarResponse{
		Month:    month.Start.Time(nil).Format("2006-01"),
		Label:    handler.i18n.MonthShort(language, month.Start.Month),
		Year:     month.Start.Year,
		Weekdays: weekdays,
		Weeks:    month.Weeks(),
	}

	cfg := handler.selection.Config()
	for _, pageable := range cfg.Months() {
		response.Months = append(response.Months, pageable.Time(nil).Format("2006-01"))
	}
	previous := month.Start.AddDays(-1)
	if !previous.Before(cfg.RangeStart) {
		response.Previous = previous.Time(nil).Format("2006-01")
	}
	next := calendar.MonthStart(month.Start.AddDays(32))
	if !next.After(cfg.RangeEnd) {
		response.Next = next.Time(nil).Format("2006-01")
	}
	return response
}
