package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-crm-service/internal/api/http/handlers"
	"github.com/spec-kit/bank-crm-service/internal/auth"
	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Clients        *handlers.ClientsHandler
	Accounts       *handlers.AccountsHandler
	Transactions   *handlers.TransactionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Staff administration is restricted to the
// admin roles; the portfolio routes are agent territory and rely on ownership
// checks inside the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	users := api.Group("/users", auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleSuperAdmin))
	users.Post("/", cfg.Staff.CreateStaff)
	users.Get("/", cfg.Staff.ListStaff)
	users.Patch("/:id", cfg.Staff.UpdateStaff)
	users.Delete("/:id", cfg.Staff.DeactivateStaff)

	clients := api.Group("/clients", auth.RequireStaffRole(domain.StaffRoleAgent))
	clients.Get("/", cfg.Clients.ListClients)
	clients.Post("/", cfg.Clients.CreateClient)
	clients.Get("/:id", cfg.Clients.GetClient)
	clients.Patch("/:id", cfg.Clients.UpdateClient)
	clients.Delete("/:id", cfg.Clients.DeleteClient)
	clients.Post("/:id/verify", cfg.Clients.VerifyClient)

	accounts := api.Group("/accounts", auth.RequireStaffRole(domain.StaffRoleAgent))
	accounts.Get("/", cfg.Accounts.ListAccounts)
	accounts.Post("/", cfg.Accounts.CreateAccount)
	accounts.Get("/:id", cfg.Accounts.GetAccount)
	accounts.Patch("/:id", cfg.Accounts.UpdateAccount)
	accounts.Delete("/:id", cfg.Accounts.DeleteAccount)
	accounts.Get("/:accountId/transactions", cfg.Transactions.ListTransactions)
	accounts.Get("/:accountId/transactions/:id", cfg.Transactions.GetTransaction)
}
