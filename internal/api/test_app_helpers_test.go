package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "finora-test-secret-key-0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithCookieSecure(t, false)
}

func newTestAppWithCookieSecure(t *testing.T, cookieSecure bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "finora-api-test.db")
	database, err := db.OpenSQLite(databasePath)
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

	handler, err := NewHandler(database, HandlerConfig{
		SecretKey:    testSecretKey,
		Location:     time.UTC,
		CookieSecure: cookieSecure,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, authCookie string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode %s %s payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response, raw
}

func expectStatus(t *testing.T, response *http.Response, body []byte, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, body []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode json %q: %v", string(body), err)
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

// registerTestUser signs up a user through the API and returns the auth
// cookie header value.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "StrongPass1",
	})
	expectStatus(t, response, body, http.StatusCreated)

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in register response")
	}
	return cookie.Name + "=" + cookie.Value
}

type testFixture struct {
	AccountID       string
	ExpenseCategory string
	IncomeCategory  string
}

func createTestFixture(t *testing.T, app *fiber.App, authCookie string) testFixture {
	t.Helper()

	response, body := doJSON(t, app, http.MethodPost, "/api/accounts", authCookie, fiber.Map{
		"name":            "Checking",
		"type":            "bank",
		"initial_balance": "1000.00",
	})
	expectStatus(t, response, body, http.StatusCreated)
	var account struct {
		ID string `json:"id"`
	}
	decodeJSON(t, body, &account)

	response, body = doJSON(t, app, http.MethodGet, "/api/categories", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)
	var categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}
	decodeJSON(t, body, &categories)

	fixture := testFixture{AccountID: account.ID}
	for _, category := range categories {
		if category.Name == "Housing" {
			fixture.ExpenseCategory = category.ID
		}
		if category.Name == "Salary" {
			fixture.IncomeCategory = category.ID
		}
	}
	if fixture.ExpenseCategory == "" || fixture.IncomeCategory == "" {
		t.Fatalf("expected seeded Housing and Salary categories, got %+v", categories)
	}
	return fixture
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
