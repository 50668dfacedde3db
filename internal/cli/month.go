package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/i18n"
	"github.com/terraincognita07/rangepick/internal/selection"
)

// MonthReport is the outcome of replaying taps before printing a month.
type MonthReport struct {
	Month     calendar.Month
	Committed []selection.Range
	State     selection.State
}

// ReplayTaps feeds every tap through a fresh controller, in order, and
// builds the month containing month from the resulting selection.
func ReplayTaps(cfg calendar.Config, month selection.Date, taps []selection.Event) (MonthReport, error) {
	controller := selection.NewController()
	report := MonthReport{}
	for _, tap := range taps {
		if tap.Kind != selection.EventDisplaying && !cfg.Contains(tap.Date) {
			return MonthReport{}, fmt.Errorf("tap %s: %w", tap.Date, calendar.ErrDateOutOfRange)
		}
		instruction := controller.Handle(tap)
		if instruction.Committed != nil {
			report.Committed = append(report.Committed, *instruction.Committed)
		}
	}

	built, err := calendar.BuildMonth(cfg, month, controller.Selected())
	if err != nil {
		return MonthReport{}, err
	}
	report.Month = built
	report.State = controller.Snapshot()
	return report, nil
}

var (
	outMonthColor = color.New(color.FgHiBlack)
	selectedColor = color.New(color.FgBlack, color.BgHiCyan)
	headerColor   = color.New(color.Bold)
)

// RenderMonth prints the grid with range caps drawn as ( and ) and
// single days as [ ].
func RenderMonth(out io.Writer, report MonthReport, labels *i18n.Manager, language string) {
	month := report.Month
	headerColor.Fprintf(out, "%s %d\n", labels.MonthShort(language, month.Start.Month), month.Start.Year)

	weekdays := make([]string, 0, len(month.Weekdays))
	for _, weekday := range month.Weekdays {
		weekdays = append(weekdays, fmt.Sprintf(" %-3s", labels.WeekdayShort(language, weekday)))
	}
	fmt.Fprintln(out, strings.Join(weekdays, ""))

	for _, week := range month.Weeks() {
		for _, cell := range week {
			fmt.Fprint(out, renderCell(cell))
		}
		fmt.Fprintln(out)
	}

	for _, committed := range report.Committed {
		fmt.Fprintf(out, "committed %s .. %s (%d days)\n", committed.Start, committed.End, committed.Len())
	}
	if report.State.Start != nil {
		fmt.Fprintf(out, "pending start %s\n", report.State.Start)
	}
}

func renderCell(cell calendar.Cell) string {
	left, right := cellCaps(cell.Corners)
	text := fmt.Sprintf("%s%2d%s", left, cell.Day, right)

	switch {
	case cell.Selected:
		return " " + selectedColor.Sprint(text)
	case !cell.InMonth:
		return " " + outMonthColor.Sprint(text)
	default:
		return " " + text
	}
}

func cellCaps(corners selection.CornerMask) (string, string) {
	left, right := " ", " "
	if corners.Has(selection.CornersLeft) {
		left = "("
	}
	if corners.Has(selection.CornersRight) {
		right = ")"
	}
	if corners == selection.CornersAll {
		left, right = "[", "]"
	}
	return left, right
}
