package api

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type dashboardResponse struct {
	TotalBalance       decimal.Decimal `json:"total_balance"`
	RecentTransactions []struct {
		Amount          decimal.Decimal `json:"amount"`
		IsRecurring     bool            `json:"is_recurring"`
		RecurringRuleID *string         `json:"recurring_rule_id"`
	} `json:"recent_transactions"`
	Reconcile struct {
		Processed int `json:"processed"`
		Failed    int `json:"failed"`
	} `json:"reconcile"`
}

func insertBacklogRule(t *testing.T, database *gorm.DB, email string, fixture testFixture, daysBehind int) models.RecurringRule {
	t.Helper()

	var user models.User
	if err := database.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	start := todayUTC().AddDate(0, 0, -daysBehind)
	rule := models.RecurringRule{
		UserID:      user.ID,
		AccountID:   fixture.AccountID,
		CategoryID:  fixture.ExpenseCategory,
		Amount:      decimal.NewFromInt(-50),
		Description: "Parking",
		Frequency:   "daily",
		StartDate:   start,
		NextDueDate: start,
		Active:      true,
	}
	if err := database.Create(&rule).Error; err != nil {
		t.Fatalf("create rule: %v", err)
	}
	return rule
}

func TestDashboardMaterializesBacklogBeforeSummary(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	authCookie := registerTestUser(t, app, "backlog@example.com")
	fixture := createTestFixture(t, app, authCookie)
	rule := insertBacklogRule(t, database, "backlog@example.com", fixture, 3)

	response, body := doJSON(t, app, http.MethodGet, "/api/dashboard", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)

	var summary dashboardResponse
	decodeJSON(t, body, &summary)
	if summary.Reconcile.Processed != 1 || summary.Reconcile.Failed != 0 {
		t.Fatalf("expected one processed rule, got %+v", summary.Reconcile)
	}
	if len(summary.RecentTransactions) != 4 {
		t.Fatalf("expected 4 materialized occurrences in summary, got %d", len(summary.RecentTransactions))
	}
	for _, transaction := range summary.RecentTransactions {
		if !transaction.IsRecurring || transaction.RecurringRuleID == nil || *transaction.RecurringRuleID != rule.ID {
			t.Fatalf("expected recurring occurrence of rule %s, got %+v", rule.ID, transaction)
		}
	}
	if !summary.TotalBalance.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected total balance 800 after backlog, got %s", summary.TotalBalance)
	}

	var stored models.RecurringRule
	if err := database.First(&stored, "id = ?", rule.ID).Error; err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	if !stored.NextDueDate.Equal(todayUTC().AddDate(0, 0, 1)) {
		t.Fatalf("expected cursor at tomorrow, got %s", stored.NextDueDate)
	}
}

func TestDashboardReloadDoesNotDuplicateOccurrences(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	authCookie := registerTestUser(t, app, "idempotent@example.com")
	fixture := createTestFixture(t, app, authCookie)
	rule := insertBacklogRule(t, database, "idempotent@example.com", fixture, 1)

	for attempt := 0; attempt < 2; attempt++ {
		response, body := doJSON(t, app, http.MethodGet, "/api/dashboard", authCookie, nil)
		expectStatus(t, response, body, http.StatusOK)
	}

	var count int64
	if err := database.Model(&models.Transaction{}).Where("recurring_rule_id = ?", rule.ID).Count(&count).Error; err != nil {
		t.Fatalf("count occurrences: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 occurrences after repeated loads, got %d", count)
	}
}

func TestDashboardSkipsPausedRules(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	authCookie := registerTestUser(t, app, "paused@example.com")
	fixture := createTestFixture(t, app, authCookie)
	rule := insertBacklogRule(t, database, "paused@example.com", fixture, 2)
	if err := database.Model(&models.RecurringRule{}).Where("id = ?", rule.ID).Update("active", false).Error; err != nil {
		t.Fatalf("pause rule: %v", err)
	}

	response, body := doJSON(t, app, http.MethodGet, "/api/dashboard", authCookie, nil)
	expectStatus(t, response, body, http.StatusOK)

	var summary dashboardResponse
	decodeJSON(t, body, &summary)
	if summary.Reconcile.Processed != 0 || len(summary.RecentTransactions) != 0 {
		t.Fatalf("expected paused rule to stay untouched, got %+v", summary)
	}
}
