package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

const (
	DefaultUpcomingDays = 30
	MaxUpcomingDays     = 366
)

type RecurringRuleRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.RecurringRule, error)
	FindByID(ctx context.Context, userID uint, ruleID string) (models.RecurringRule, bool, error)
	Create(ctx context.Context, rule *models.RecurringRule) error
	UpdateByID(ctx context.Context, userID uint, ruleID string, updates map[string]any) (bool, error)
	Delete(ctx context.Context, userID uint, ruleID string) (bool, error)
}

type RecurringRuleInput struct {
	AccountID   string `json:"account_id"`
	CategoryID  string `json:"category_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"start_date"`
}

type RecurringRuleUpdate struct {
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
}

type UpcomingPayment struct {
	RuleID      string          `json:"rule_id"`
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	Date        time.Time       `json:"date"`
}

type RecurringService struct {
	rules      RecurringRuleRepository
	accounts   AccountFinder
	categories CategoryFinder
	location   *time.Location
	now        func() time.Time
}

func NewRecurringService(rules RecurringRuleRepository, accounts AccountFinder, categories CategoryFinder, location *time.Location) *RecurringService {
	if location == nil {
		location = time.Local
	}
	return &RecurringService{
		rules:      rules,
		accounts:   accounts,
		categories: categories,
		location:   location,
		now:        time.Now,
	}
}

func (service *RecurringService) List(ctx context.Context, userID uint) ([]models.RecurringRule, error) {
	return service.rules.ListByUser(ctx, userID)
}

// Create registers a rule whose cursor starts at its start date. An explicit
// income/expense type decides the stored sign; otherwise the category does.
func (service *RecurringService) Create(ctx context.Context, userID uint, input RecurringRuleInput) (models.RecurringRule, error) {
	account, category, err := resolveAccountAndCategory(ctx, service.accounts, service.categories, userID, input.AccountID, input.CategoryID)
	if err != nil {
		return models.RecurringRule{}, err
	}

	frequency, err := ParseFrequency(input.Frequency)
	if err != nil {
		return models.RecurringRule{}, err
	}
	magnitude, err := ParsePositiveAmount(input.Amount)
	if err != nil {
		return models.RecurringRule{}, err
	}

	amountType := category.Type
	if strings.TrimSpace(input.Type) != "" {
		normalized, ok := normalizeCategoryType(input.Type)
		if !ok {
			return models.RecurringRule{}, ErrCategoryTypeInvalid
		}
		amountType = normalized
	}

	startDate := CalendarDate(service.now(), service.location)
	if strings.TrimSpace(input.StartDate) != "" {
		startDate, err = ParseCalendarDate(input.StartDate)
		if err != nil {
			return models.RecurringRule{}, err
		}
	}

	rule := models.RecurringRule{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Amount:      SignedAmount(magnitude, amountType),
		Description: strings.TrimSpace(input.Description),
		Frequency:   string(frequency),
		StartDate:   startDate,
		NextDueDate: startDate,
		Active:      true,
	}
	if err := service.rules.Create(ctx, &rule); err != nil {
		return models.RecurringRule{}, err
	}
	return rule, nil
}

// Update edits amount and description. A new amount keeps the sign of the
// stored one.
func (service *RecurringService) Update(ctx context.Context, userID uint, ruleID string, input RecurringRuleUpdate) (models.RecurringRule, error) {
	rule, err := service.find(ctx, userID, ruleID)
	if err != nil {
		return models.RecurringRule{}, err
	}

	updates := map[string]any{}
	if input.Amount != nil {
		magnitude, err := ParsePositiveAmount(*input.Amount)
		if err != nil {
			return models.RecurringRule{}, err
		}
		if rule.Amount.IsNegative() {
			rule.Amount = magnitude.Neg()
		} else {
			rule.Amount = magnitude
		}
		updates["amount"] = rule.Amount
	}
	if input.Description != nil {
		rule.Description = strings.TrimSpace(*input.Description)
		updates["description"] = rule.Description
	}
	if len(updates) == 0 {
		return rule, nil
	}

	if _, err := service.rules.UpdateByID(ctx, userID, rule.ID, updates); err != nil {
		return models.RecurringRule{}, err
	}
	return rule, nil
}

// Toggle pauses an active rule or resumes a paused one. Resuming keeps the
// cursor, so the next reconciliation catches up on the paused period.
func (service *RecurringService) Toggle(ctx context.Context, userID uint, ruleID string) (models.RecurringRule, error) {
	rule, err := service.find(ctx, userID, ruleID)
	if err != nil {
		return models.RecurringRule{}, err
	}

	rule.Active = !rule.Active
	if _, err := service.rules.UpdateByID(ctx, userID, rule.ID, map[string]any{"active": rule.Active}); err != nil {
		return models.RecurringRule{}, err
	}
	return rule, nil
}

func (service *RecurringService) Delete(ctx context.Context, userID uint, ruleID string) error {
	deleted, err := service.rules.Delete(ctx, userID, ruleID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecurringRuleNotFound
	}
	return nil
}

// Upcoming lists the occurrences of active rules falling within the next days
// calendar days, today included, ordered by date.
func (service *RecurringService) Upcoming(ctx context.Context, userID uint, days int) ([]UpcomingPayment, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	if days > MaxUpcomingDays {
		days = MaxUpcomingDays
	}

	rules, err := service.rules.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := CalendarDate(service.now(), service.location)
	horizon := today.AddDate(0, 0, days)
	upcoming := make([]UpcomingPayment, 0)
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		frequency := Frequency(rule.Frequency)
		for date := CalendarDate(rule.NextDueDate, time.UTC); !date.After(horizon); date = Advance(date, frequency) {
			if date.Before(today) {
				continue
			}
			upcoming = append(upcoming, UpcomingPayment{
				RuleID:      rule.ID,
				AccountID:   rule.AccountID,
				CategoryID:  rule.CategoryID,
				Description: occurrenceFromRule(rule, date).Description,
				Amount:      rule.Amount,
				Frequency:   rule.Frequency,
				Date:        date,
			})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming, nil
}

func (service *RecurringService) find(ctx context.Context, userID uint, ruleID string) (models.RecurringRule, error) {
	rule, found, err := service.rules.FindByID(ctx, userID, strings.TrimSpace(ruleID))
	if err != nil {
		return models.RecurringRule{}, err
	}
	if !found {
		return models.RecurringRule{}, ErrRecurringRuleNotFound
	}
	return rule, nil
}
