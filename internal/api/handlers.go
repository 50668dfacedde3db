package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepick/internal/i18n"
	"github.com/terraincognita07/rangepick/internal/services"
)

const defaultSessionTokenTTL = 30 * 24 * time.Hour

type Handler struct {
	selection    *services.SelectionService
	secretKey    []byte
	cookies      *secureCookieCodec
	location     *time.Location
	cookieSecure bool
	tokenTTL     time.Duration
	i18n         *i18n.Manager
	now          func() time.Time

	sessionLimiter *sessionLimiter
}

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	TokenTTL     time.Duration
}

func NewHandler(selectionService *services.SelectionService, i18nManager *i18n.Manager, options Options) (*Handler, error) {
	if selectionService == nil {
		return nil, errors.New("selection service is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	cookies, err := newSecureCookieCodec([]byte(options.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("init cookie codec: %w", err)
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	tokenTTL := options.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultSessionTokenTTL
	}

	return &Handler{
		selection:    selectionService,
		secretKey:    []byte(options.SecretKey),
		cookies:      cookies,
		location:     location,
		cookieSecure: options.CookieSecure,
		tokenTTL:     tokenTTL,
		i18n:         i18nManager,
		now:          time.Now,

		sessionLimiter: newSessionLimiter(sessionCreateLimit, sessionCreateWindow),
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
