package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

type GoalRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Goal, error)
	FindByID(ctx context.Context, userID uint, goalID string) (models.Goal, bool, error)
	Create(ctx context.Context, goal *models.Goal) error
	Save(ctx context.Context, goal *models.Goal) error
	AdjustCurrentAmount(ctx context.Context, userID uint, goalID string, adjust func(decimal.Decimal) (decimal.Decimal, error)) (models.Goal, bool, error)
	SetPinned(ctx context.Context, userID uint, goalID string, pinned bool) (bool, error)
	Delete(ctx context.Context, userID uint, goalID string) (bool, error)
}

var minimumGoalTarget = decimal.NewFromInt(1)

type GoalInput struct {
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	TargetAmount string `json:"target_amount"`
	Deadline     string `json:"deadline"`
}

type GoalAmountInput struct {
	Amount string `json:"amount"`
}

// GoalProgress is a goal with its derived figures. DaysRemaining is negative
// once the deadline has passed and absent when the goal has none.
type GoalProgress struct {
	models.Goal
	Percent       decimal.Decimal `json:"percent"`
	Remaining     decimal.Decimal `json:"remaining"`
	Completed     bool            `json:"completed"`
	DaysRemaining *int            `json:"days_remaining,omitempty"`
}

type GoalService struct {
	goals    GoalRepository
	location *time.Location
	now      func() time.Time
}

func NewGoalService(goals GoalRepository, location *time.Location) *GoalService {
	if location == nil {
		location = time.Local
	}
	return &GoalService{goals: goals, location: location, now: time.Now}
}

func (service *GoalService) List(ctx context.Context, userID uint) ([]GoalProgress, error) {
	goals, err := service.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := CalendarDate(service.now(), service.location)
	result := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		result = append(result, goalProgress(goal, today))
	}
	return result, nil
}

func (service *GoalService) Create(ctx context.Context, userID uint, input GoalInput) (GoalProgress, error) {
	name, icon, target, deadline, err := normalizeGoalInput(input)
	if err != nil {
		return GoalProgress{}, err
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          name,
		Icon:          icon,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
	}
	if err := service.goals.Create(ctx, &goal); err != nil {
		return GoalProgress{}, err
	}
	return service.progress(goal), nil
}

// Update edits the descriptive fields and target. The saved amount is left
// alone; it changes only through Contribute and Withdraw.
func (service *GoalService) Update(ctx context.Context, userID uint, goalID string, input GoalInput) (GoalProgress, error) {
	goal, found, err := service.goals.FindByID(ctx, userID, goalID)
	if err != nil {
		return GoalProgress{}, err
	}
	if !found {
		return GoalProgress{}, ErrGoalNotFound
	}

	name, icon, target, deadline, err := normalizeGoalInput(input)
	if err != nil {
		return GoalProgress{}, err
	}
	goal.Name = name
	goal.Icon = icon
	goal.TargetAmount = target
	goal.Deadline = deadline
	if err := service.goals.Save(ctx, &goal); err != nil {
		return GoalProgress{}, err
	}
	return service.progress(goal), nil
}

func (service *GoalService) Contribute(ctx context.Context, userID uint, goalID string, input GoalAmountInput) (GoalProgress, error) {
	amount, err := ParsePositiveAmount(input.Amount)
	if err != nil {
		return GoalProgress{}, err
	}
	return service.adjust(ctx, userID, goalID, func(current decimal.Decimal) (decimal.Decimal, error) {
		return current.Add(amount), nil
	})
}

// Withdraw takes money out of a goal. It refuses to leave the saved amount
// negative.
func (service *GoalService) Withdraw(ctx context.Context, userID uint, goalID string, input GoalAmountInput) (GoalProgress, error) {
	amount, err := ParsePositiveAmount(input.Amount)
	if err != nil {
		return GoalProgress{}, err
	}
	return service.adjust(ctx, userID, goalID, func(current decimal.Decimal) (decimal.Decimal, error) {
		if amount.GreaterThan(current) {
			return decimal.Zero, ErrGoalInsufficientFunds
		}
		return current.Sub(amount), nil
	})
}

func (service *GoalService) adjust(ctx context.Context, userID uint, goalID string, apply func(decimal.Decimal) (decimal.Decimal, error)) (GoalProgress, error) {
	goal, found, err := service.goals.AdjustCurrentAmount(ctx, userID, goalID, apply)
	if err != nil {
		return GoalProgress{}, err
	}
	if !found {
		return GoalProgress{}, ErrGoalNotFound
	}
	return service.progress(goal), nil
}

// SetPinned marks the goal shown on the dashboard. Pinning a goal unpins any
// other goal of the same user.
func (service *GoalService) SetPinned(ctx context.Context, userID uint, goalID string, pinned bool) error {
	found, err := service.goals.SetPinned(ctx, userID, goalID, pinned)
	if err != nil {
		return err
	}
	if !found {
		return ErrGoalNotFound
	}
	return nil
}

func (service *GoalService) Delete(ctx context.Context, userID uint, goalID string) error {
	deleted, err := service.goals.Delete(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

// Featured picks the goal for the dashboard: the pinned goal, else the
// unfinished goal closest to completion, else the first goal. It returns nil
// when the user has no goals.
func (service *GoalService) Featured(ctx context.Context, userID uint) (*GoalProgress, error) {
	goals, err := service.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return featuredGoal(goals), nil
}

func featuredGoal(goals []GoalProgress) *GoalProgress {
	if len(goals) == 0 {
		return nil
	}
	for index := range goals {
		if goals[index].IsPinned {
			return &goals[index]
		}
	}

	best := -1
	for index := range goals {
		if goals[index].Completed {
			continue
		}
		if best < 0 || goals[index].Percent.GreaterThan(goals[best].Percent) {
			best = index
		}
	}
	if best >= 0 {
		return &goals[best]
	}
	return &goals[0]
}

func (service *GoalService) progress(goal models.Goal) GoalProgress {
	return goalProgress(goal, CalendarDate(service.now(), service.location))
}

func goalProgress(goal models.Goal, today time.Time) GoalProgress {
	hundred := decimal.NewFromInt(100)
	percent := decimal.Zero
	if goal.TargetAmount.IsPositive() {
		percent = decimal.Min(goal.CurrentAmount.Div(goal.TargetAmount).Mul(hundred), hundred).Round(1)
	}
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progress := GoalProgress{
		Goal:      goal,
		Percent:   percent,
		Remaining: remaining,
		Completed: !goal.CurrentAmount.LessThan(goal.TargetAmount),
	}
	if goal.Deadline != nil {
		days := int(goal.Deadline.Sub(today).Hours() / 24)
		progress.DaysRemaining = &days
	}
	return progress
}

func normalizeGoalInput(input GoalInput) (string, string, decimal.Decimal, *time.Time, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", decimal.Zero, nil, ErrGoalNameRequired
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = models.DefaultGoalIcon
	}

	target, err := ParseAmount(input.TargetAmount)
	if err != nil {
		return "", "", decimal.Zero, nil, err
	}
	if target.LessThan(minimumGoalTarget) {
		return "", "", decimal.Zero, nil, ErrGoalTargetInvalid
	}

	var deadline *time.Time
	if raw := strings.TrimSpace(input.Deadline); raw != "" {
		parsed, err := ParseCalendarDate(raw)
		if err != nil {
			return "", "", decimal.Zero, nil, err
		}
		deadline = &parsed
	}
	return name, icon, target, deadline, nil
}
