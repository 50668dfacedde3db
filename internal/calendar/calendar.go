package calendar

import (
	"errors"
	"time"

	"github.com/terraincognita07/rangepick/internal/selection"
)

const (
	DefaultRows = 6
	daysPerWeek = 7
)

var (
	ErrInvalidConfig   = errors.New("invalid calendar config")
	ErrMonthOutOfRange = errors.New("month outside calendar range")
	ErrDateOutOfRange  = errors.New("date outside calendar range")
)

// Config bounds the pageable months and shapes the grid.
type Config struct {
	RangeStart   selection.Date
	RangeEnd     selection.Date
	Rows         int
	FirstWeekday time.Weekday
}

func DefaultConfig() Config {
	return Config{
		RangeStart:   selection.NewDate(2018, time.January, 1),
		RangeEnd:     selection.NewDate(2018, time.December, 31),
		Rows:         DefaultRows,
		FirstWeekday: time.Sunday,
	}
}

func (cfg Config) Validate() error {
	if cfg.RangeStart.IsZero() || cfg.RangeEnd.IsZero() || cfg.RangeEnd.Before(cfg.RangeStart) {
		return ErrInvalidConfig
	}
	if cfg.Rows < 0 || cfg.Rows > DefaultRows {
		return ErrInvalidConfig
	}
	if cfg.FirstWeekday < time.Sunday || cfg.FirstWeekday > time.Saturday {
		return ErrInvalidConfig
	}
	return nil
}

func (cfg Config) Contains(date selection.Date) bool {
	return !date.Before(cfg.RangeStart) && !date.After(cfg.RangeEnd)
}

// Months lists the first day of every month the calendar can page through.
func (cfg Config) Months() []selection.Date {
	months := make([]selection.Date, 0, 12)
	for month := MonthStart(cfg.RangeStart); !month.After(cfg.RangeEnd); month = selection.NewDate(month.Year, month.Month+1, 1) {
		months = append(months, month)
	}
	return months
}

type Cell struct {
	Date     selection.Date       `json:"date"`
	Day      int                  `json:"day"`
	InMonth  bool                 `json:"in_month"`
	InRange  bool                 `json:"in_range"`
	Selected bool                 `json:"selected"`
	Position selection.Position   `json:"position"`
	Corners  selection.CornerMask `json:"corners"`
}

type Month struct {
	Start    selection.Date `json:"start"`
	Weekdays []time.Weekday `json:"weekdays"`
	Cells    []Cell         `json:"cells"`
}

func MonthStart(date selection.Date) selection.Date {
	return selection.NewDate(date.Year, date.Month, 1)
}

// BuildMonth lays out the month containing month as whole weeks, padded
// with trailing days of the previous month and leading days of the next.
func BuildMonth(cfg Config, month selection.Date, selected selection.Set) (Month, error) {
	if err := cfg.Validate(); err != nil {
		return Month{}, err
	}

	monthStart := MonthStart(month)
	monthEnd := selection.NewDate(monthStart.Year, monthStart.Month+1, 0)
	if monthEnd.Before(cfg.RangeStart) || monthStart.After(cfg.RangeEnd) {
		return Month{}, ErrMonthOutOfRange
	}

	leading := (int(monthStart.Weekday()) - int(cfg.FirstWeekday) + daysPerWeek) % daysPerWeek
	gridStart := monthStart.AddDays(-leading)

	rows := cfg.Rows
	if rows == 0 {
		rows = DefaultRows
	}
	needed := (leading + monthEnd.Day + daysPerWeek - 1) / daysPerWeek
	if rows < needed {
		rows = needed
	}

	weekdays := make([]time.Weekday, 0, daysPerWeek)
	for offset := 0; offset < daysPerWeek; offset++ {
		weekdays = append(weekdays, time.Weekday((int(cfg.FirstWeekday)+offset)%daysPerWeek))
	}

	cells := make([]Cell, 0, rows*daysPerWeek)
	for offset := 0; offset < rows*daysPerWeek; offset++ {
		day := gridStart.AddDays(offset)
		position := selection.ClassifyPosition(day, selection.BlockAt(selected, day))
		cells = append(cells, Cell{
			Date:     day,
			Day:      day.Day,
			InMonth:  day.Month == monthStart.Month && day.Year == monthStart.Year,
			InRange:  cfg.Contains(day),
			Selected: selected.Has(day),
			Position: position,
			Corners:  selection.Corners(position),
		})
	}

	return Month{Start: monthStart, Weekdays: weekdays, Cells: cells}, nil
}

func (month Month) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(month.Cells)/daysPerWeek)
	for index := 0; index+daysPerWeek <= len(month.Cells); index += daysPerWeek {
		weeks = append(weeks, month.Cells[index:index+daysPerWeek])
	}
	return weeks
}
