package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/lock"
	"github.com/terraincognita07/finora/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	cookieSecure    bool
	defaultCurrency string
	locker          lock.Locker
	cookies         *secureCookieCodec
	loginLimiter    *attemptLimiter
	now             func() time.Time

	repositories       *db.Repositories
	authService        *services.AuthService
	accountService     *services.AccountService
	categoryService    *services.CategoryService
	transactionService *services.TransactionService
	recurringService   *services.RecurringService
	budgetService      *services.BudgetService
	goalService        *services.GoalService
	investmentService  *services.InvestmentService
	settingsService    *services.SettingsService
	dashboardService   *services.DashboardService
	exportService      *services.ExportService
	processor          *services.RecurringProcessor
}

type HandlerConfig struct {
	SecretKey       string
	Location        *time.Location
	CookieSecure    bool
	DefaultCurrency string
	Locker          lock.Locker
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
