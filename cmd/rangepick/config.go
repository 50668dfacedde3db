package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/selection"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32
)

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == insecureSecretPlaceholder:
		return "", errors.New("SECRET_KEY must not use the placeholder value")
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolveCookieSecure() bool {
	secure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		log.Printf("invalid COOKIE_SECURE, falling back to false")
		return false
	}
	return secure
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveCalendarConfig reads CALENDAR_START, CALENDAR_END and
// CALENDAR_FIRST_WEEKDAY on top of the default 2018 calendar.
func resolveCalendarConfig() (calendar.Config, error) {
	cfg := calendar.DefaultConfig()

	if raw := strings.TrimSpace(os.Getenv("CALENDAR_START")); raw != "" {
		start, err := selection.ParseDate(raw)
		if err != nil {
			return calendar.Config{}, fmt.Errorf("CALENDAR_START: %w", err)
		}
		cfg.RangeStart = start
	}
	if raw := strings.TrimSpace(os.Getenv("CALENDAR_END")); raw != "" {
		end, err := selection.ParseDate(raw)
		if err != nil {
			return calendar.Config{}, fmt.Errorf("CALENDAR_END: %w", err)
		}
		cfg.RangeEnd = end
	}
	if raw := strings.TrimSpace(os.Getenv("CALENDAR_FIRST_WEEKDAY")); raw != "" {
		weekday, ok := weekdayNames[strings.ToLower(raw)]
		if !ok {
			return calendar.Config{}, fmt.Errorf("CALENDAR_FIRST_WEEKDAY: unknown weekday %q", raw)
		}
		cfg.FirstWeekday = weekday
	}

	if err := cfg.Validate(); err != nil {
		return calendar.Config{}, err
	}
	return cfg, nil
}
