package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)
	settings.Post("/change-password", handler.ChangePassword)

	accounts := api.Group("/accounts", handler.AuthRequired)
	accounts.Get("", handler.GetAccounts)
	accounts.Post("", handler.CreateAccount)
	accounts.Put("/:id", handler.UpdateAccount)
	accounts.Delete("/:id", handler.DeleteAccount)

	categories := api.Group("/categories", handler.AuthRequired)
	categories.Get("", handler.GetCategories)
	categories.Post("", handler.CreateCategory)
	categories.Delete("/:id", handler.DeleteCategory)

	transactions := api.Group("/transactions", handler.AuthRequired)
	transactions.Get("", handler.GetTransactions)
	transactions.Post("", handler.CreateTransaction)
	transactions.Delete("/:id", handler.DeleteTransaction)

	recurring := api.Group("/recurring", handler.AuthRequired)
	recurring.Get("", handler.GetRecurringRules)
	recurring.Post("", handler.CreateRecurringRule)
	recurring.Get("/upcoming", handler.GetUpcomingPayments)
	recurring.Post("/reconcile", handler.ReconcileRecurring)
	recurring.Patch("/:id", handler.UpdateRecurringRule)
	recurring.Post("/:id/toggle", handler.ToggleRecurringRule)
	recurring.Delete("/:id", handler.DeleteRecurringRule)

	budgets := api.Group("/budgets", handler.AuthRequired)
	budgets.Get("", handler.GetBudgets)
	budgets.Post("", handler.SetBudget)
	budgets.Delete("/:id", handler.DeleteBudget)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.GetGoals)
	goals.Post("", handler.CreateGoal)
	goals.Put("/:id", handler.UpdateGoal)
	goals.Post("/:id/contribute", handler.ContributeToGoal)
	goals.Post("/:id/withdraw", handler.WithdrawFromGoal)
	goals.Post("/:id/pin", handler.PinGoal)
	goals.Delete("/:id/pin", handler.UnpinGoal)
	goals.Delete("/:id", handler.DeleteGoal)

	investments := api.Group("/investments", handler.AuthRequired)
	investments.Get("", handler.GetInvestments)
	investments.Post("", handler.CreateInvestment)
	investments.Put("/:id", handler.UpdateInvestment)
	investments.Put("/:id/price", handler.UpdateInvestmentPrice)
	investments.Delete("/:id", handler.DeleteInvestment)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/transactions", handler.ExportTransactions)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
