package api

import (
	"pennywise/internal/api/handlers"
	"pennywise/pkg/auth"
	"pennywise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RouterDeps bundles everything SetupRouter wires together.
type RouterDeps struct {
	Auth         *handlers.AuthHandler
	Transactions *handlers.TransactionHandler
	Budgets      *handlers.BudgetHandler
	Stats        *handlers.StatsHandler
	Advice       *handlers.AdviceHandler
	Settings     *handlers.SettingsHandler
	JWTManager   *auth.JWTManager
	Logger       *zap.Logger

	// UploadsDir, when set, is served under /uploads for the local
	// receipt backend.
	UploadsDir string
}

func SetupRouter(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	if deps.UploadsDir != "" {
		deps.Logger.Info("Serving receipt uploads", zap.String("path", deps.UploadsDir))
		app.Static("/uploads", deps.UploadsDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Post("/refresh", deps.Auth.RefreshToken)
	authGroup.Post("/password-reset", deps.Auth.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", deps.Auth.ConfirmPasswordReset)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(deps.JWTManager, deps.Logger))

	protected.Put("/profile", deps.Auth.UpdateProfile)

	transactions := protected.Group("/transactions")
	transactions.Post("", deps.Transactions.Create)
	transactions.Get("", deps.Transactions.List)
	transactions.Get("/:id", deps.Transactions.Get)
	transactions.Put("/:id", deps.Transactions.Update)
	transactions.Delete("/:id", deps.Transactions.Delete)
	transactions.Post("/:id/receipt", deps.Transactions.UploadReceipt)

	budgets := protected.Group("/budgets")
	budgets.Post("", deps.Budgets.Create)
	budgets.Get("", deps.Budgets.List)
	budgets.Get("/:id", deps.Budgets.Get)
	budgets.Put("/:id", deps.Budgets.Update)
	budgets.Delete("/:id", deps.Budgets.Delete)

	protected.Get("/stats/summary", deps.Stats.Summary)

	protected.Post("/advice", deps.Advice.GetAdvice)
	protected.Post("/advice/suggest-category", deps.Advice.SuggestCategory)

	protected.Get("/settings/currency", deps.Settings.GetCurrency)
	protected.Put("/settings/currency", deps.Settings.SetCurrency)

	return app
}
