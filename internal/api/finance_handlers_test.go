package api

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/services"
	"github.com/xuri/excelize/v2"
)

func createTestTransaction(t *testing.T, app *fiber.App, authCookie string, fixture testFixture, amount string, description string) {
	t.Helper()

	response, body := doJSON(t, app, http.MethodPost, "/api/transactions", authCookie, fiber.Map{
		"account_id":  fixture.AccountID,
		"category_id": fixture.ExpenseCategory,
		"amount":      amount,
		"description": description,
	})
	expectStatus(t, response, body, http.StatusCreated)
}

func TestAccountBalancesIncludeTransactions(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "balances@example.com")
	fixture := createTestFixture(t, app, authCookie)
	createTestTransaction(t, app, authCookie, fixture, "12.34", "Coffee beans")

	response, body := doJSON(t, app, http.MethodGet, "/api/accounts", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)

	var payload struct {
		Accounts []struct {
			ID      string          `json:"id"`
			Balance decimal.Decimal `json:"balance"`
		} `json:"accounts"`
		TotalBalance decimal.Decimal `json:"total_balance"`
	}
	decodeJSON(t, body, &payload)
	if len(payload.Accounts) != 1 || payload.Accounts[0].ID != fixture.AccountID {
		t.Fatalf("expected the fixture account, got %+v", payload.Accounts)
	}
	expected := decimal.RequireFromString("987.66")
	if !payload.Accounts[0].Balance.Equal(expected) || !payload.TotalBalance.Equal(expected) {
		t.Fatalf("expected balance %s, got account=%s total=%s", expected, payload.Accounts[0].Balance, payload.TotalBalance)
	}

	response, body = doJSON(t, app, http.MethodDelete, "/api/categories/"+fixture.ExpenseCategory, authCookie, nil)
	expectStatus(t, response, body, http.StatusConflict)
}

func TestTransactionListRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "range@example.com")

	response, body := doJSON(t, app, http.MethodGet, "/api/transactions?from=2026-02-01&to=2026-01-01", authCookie, nil)
	expectStatus(t, response, body, http.StatusBadRequest)
}

func TestBudgetStatusTracksPeriodSpending(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "budget@example.com")
	fixture := createTestFixture(t, app, authCookie)

	response, body := doJSON(t, app, http.MethodPost, "/api/budgets", authCookie, fiber.Map{
		"category_id":  fixture.ExpenseCategory,
		"amount_limit": "100",
	})
	expectStatus(t, response, body, http.StatusOK)

	response, body = doJSON(t, app, http.MethodPost, "/api/budgets", authCookie, fiber.Map{
		"category_id":  fixture.IncomeCategory,
		"amount_limit": "100",
	})
	expectStatus(t, response, body, http.StatusBadRequest)

	createTestTransaction(t, app, authCookie, fixture, "40", "Rent share")

	response, body = doJSON(t, app, http.MethodGet, "/api/budgets", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)

	var payload struct {
		Budgets []struct {
			Spent    decimal.Decimal `json:"spent"`
			Exceeded bool            `json:"exceeded"`
		} `json:"budgets"`
	}
	decodeJSON(t, body, &payload)
	if len(payload.Budgets) != 1 {
		t.Fatalf("expected one budget, got %d", len(payload.Budgets))
	}
	if !payload.Budgets[0].Spent.Equal(decimal.NewFromInt(40)) || payload.Budgets[0].Exceeded {
		t.Fatalf("expected 40 spent within limit, got %+v", payload.Budgets[0])
	}
}

func TestSettingsUpdateValidatesInput(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "settings@example.com")

	response, body := doJSON(t, app, http.MethodPut, "/api/settings", authCookie, fiber.Map{
		"currency":           "usd",
		"start_day_of_month": 10,
	})
	expectStatus(t, response, body, http.StatusOK)

	var settings struct {
		Currency        string `json:"currency"`
		StartDayOfMonth int    `json:"start_day_of_month"`
	}
	decodeJSON(t, body, &settings)
	if settings.Currency != "USD" || settings.StartDayOfMonth != 10 {
		t.Fatalf("unexpected saved settings %+v", settings)
	}

	response, body = doJSON(t, app, http.MethodPut, "/api/settings", authCookie, fiber.Map{
		"currency":           "USD",
		"start_day_of_month": 0,
	})
	expectStatus(t, response, body, http.StatusBadRequest)
}

func TestExportTransactionsCSVAndXLSX(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "export@example.com")
	fixture := createTestFixture(t, app, authCookie)
	createTestTransaction(t, app, authCookie, fixture, "12.34", "Coffee")

	response, body := doJSON(t, app, http.MethodGet, "/api/export/transactions?format=csv", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)
	if !strings.HasPrefix(response.Header.Get("Content-Type"), "text/csv") {
		t.Fatalf("expected csv content type, got %q", response.Header.Get("Content-Type"))
	}
	if !strings.Contains(response.Header.Get("Content-Disposition"), "finora-transactions-") {
		t.Fatalf("unexpected content disposition %q", response.Header.Get("Content-Disposition"))
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if strings.TrimSpace(lines[0]) != strings.Join(services.ExportHeaders, ",") {
		t.Fatalf("unexpected csv header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Coffee") {
		t.Fatalf("expected exported row to contain description, got %q", lines[1])
	}

	response, body = doJSON(t, app, http.MethodGet, "/api/export/transactions?format=xlsx", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)
	if response.Header.Get("Content-Type") != xlsxContentType {
		t.Fatalf("expected xlsx content type, got %q", response.Header.Get("Content-Type"))
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer workbook.Close()
	rows, err := workbook.GetRows("Transactions")
	if err != nil {
		t.Fatalf("read exported rows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != services.ExportHeaders[0] {
		t.Fatalf("unexpected workbook rows %v", rows)
	}

	response, body = doJSON(t, app, http.MethodGet, "/api/export/transactions?format=pdf", authCookie, nil)
	expectStatus(t, response, body, http.StatusBadRequest)
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response, body := doJSON(t, app, http.MethodGet, "/nope", "", nil)
	expectStatus(t, response, body, http.StatusNotFound)

	response, body = doJSON(t, app, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, response, body, http.StatusOK)
}
