package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionCookiePurpose = "session"

var (
	errMissingSessionToken = errors.New("missing session token")
	errInvalidSessionToken = errors.New("invalid session token")
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildSessionToken(sessionID string) (string, time.Time, error) {
	now := handler.now()
	expiresAt := now.Add(handler.tokenTTL)

	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(handler.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (handler *Handler) parseSessionToken(tokenValue string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errInvalidSessionToken
	}
	if strings.TrimSpace(claims.SessionID) == "" || claims.SessionID != claims.Subject {
		return "", errInvalidSessionToken
	}
	return claims.SessionID, nil
}

// setSessionCookie stores the signed token sealed so the session id is
// not readable from the browser.
func (handler *Handler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) error {
	sealed, err := handler.cookies.seal(sessionCookiePurpose, []byte(token))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
	return nil
}

// authenticateRequest reads a bearer token first, then the sealed cookie.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (string, error) {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if scheme, value, found := strings.Cut(authorization, " "); found && strings.EqualFold(scheme, "Bearer") {
		return handler.parseSessionToken(strings.TrimSpace(value))
	}

	rawCookie := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawCookie == "" {
		return "", errMissingSessionToken
	}
	token, err := handler.cookies.open(sessionCookiePurpose, rawCookie)
	if err != nil {
		return "", errInvalidSessionToken
	}
	return handler.parseSessionToken(string(token))
}

func (handler *Handler) SessionRequired(c *fiber.Ctx) error {
	sessionID, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextSessionKey, sessionID)
	return c.Next()
}
