package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/db"
	"github.com/terraincognita07/rangepick/internal/i18n"
	"github.com/terraincognita07/rangepick/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "rangepick-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	repos := db.NewRepositories(database)
	service := services.NewSelectionService(repos.Sessions, repos.Ranges, calendar.DefaultConfig())
	handler, err := NewHandler(service, i18nManager, Options{SecretKey: testSecretKey, Location: time.UTC})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time {
		return time.Date(2018, time.March, 15, 9, 0, 0, 0, time.UTC)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

type testSession struct {
	ID     string
	Token  string
	Cookie string
}

func createTestSession(t *testing.T, app *fiber.App) testSession {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/sessions", "", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected session status 201, got %d", response.StatusCode)
	}

	payload := struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
	}{}
	decodeJSON(t, response.Body, &payload)
	if payload.SessionID == "" || payload.Token == "" {
		t.Fatalf("expected session id and token, got %+v", payload)
	}

	cookie := responseCookie(response.Cookies(), sessionCookieName)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}

	return testSession{
		ID:     payload.SessionID,
		Token:  payload.Token,
		Cookie: cookie.Name + "=" + cookie.Value,
	}
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, bearer string, headers map[string]string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, body io.Reader, target any) {
	t.Helper()

	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(bytes), err)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["error"]
}
