package selection

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without time-of-day. The zero value is not a
// valid day; use NewDate, DateOf or ParseDate.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes overflowing values the same way time.Date does,
// so NewDate(2018, 2, 31) is 2018-03-03.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DateOf returns the calendar day of value as observed in location.
func DateOf(value time.Time, location *time.Location) Date {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(raw string) (Date, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(parsed, time.UTC), nil
}

func MustParseDate(raw string) Date {
	date, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return date
}

func (date Date) IsZero() bool {
	return date == Date{}
}

// Time returns midnight of the day in location.
func (date Date) Time(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, location)
}

func (date Date) String() string {
	return date.Time(time.UTC).Format(DateLayout)
}

func (date Date) Weekday() time.Weekday {
	return date.Time(time.UTC).Weekday()
}

func (date Date) AddDays(days int) Date {
	return NewDate(date.Year, date.Month, date.Day+days)
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the signed number of days from date to other. UTC
// midnights are whole multiples of a day in Unix time, so the division is exact.
func (date Date) DaysUntil(other Date) int {
	return int(other.dayNumber() - date.dayNumber())
}

func (date Date) dayNumber() int64 {
	return date.Time(time.UTC).Unix() / secondsPerDay
}

func (date Date) Compare(other Date) int {
	switch {
	case date.Year != other.Year:
		return compareInts(date.Year, other.Year)
	case date.Month != other.Month:
		return compareInts(int(date.Month), int(other.Month))
	default:
		return compareInts(date.Day, other.Day)
	}
}

func (date Date) Before(other Date) bool { return date.Compare(other) < 0 }
func (date Date) After(other Date) bool  { return date.Compare(other) > 0 }
func (date Date) Equal(other Date) bool  { return date == other }

func (date Date) MarshalText() ([]byte, error) {
	return []byte(date.String()), nil
}

func (date *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*date = parsed
	return nil
}

func compareInts(left int, right int) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}
