package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pennywise/internal/api"
	"pennywise/internal/api/handlers"
	"pennywise/internal/repository"
	"pennywise/internal/service"
	"pennywise/internal/storage"
	"pennywise/pkg/auth"
	"pennywise/pkg/config"
	"pennywise/pkg/logger"
	"pennywise/pkg/postgres"

	"go.uber.org/zap"
)

// @title Pennywise API
// @version 1.0
// @description Personal finance tracker: transactions, budgets, spending stats and AI advice

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Pennywise service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp, cfg.JWT.ResetExp)

	// Initialize receipt storage
	receipts, err := storage.New(ctx, &cfg.Storage, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize receipt storage", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	settingsService := service.NewSettingsService(userRepo, appLogger)
	txService := service.NewTransactionService(txRepo, receipts, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, txService, appLogger)
	statsService := service.NewStatsService(txService, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	adviceService := service.NewAdviceService(llmService, appLogger)

	// Setup router
	deps := api.RouterDeps{
		Auth:         handlers.NewAuthHandler(authService, appLogger),
		Transactions: handlers.NewTransactionHandler(txService, appLogger),
		Budgets:      handlers.NewBudgetHandler(budgetService, appLogger),
		Stats:        handlers.NewStatsHandler(statsService, appLogger),
		Advice:       handlers.NewAdviceHandler(adviceService, appLogger),
		Settings:     handlers.NewSettingsHandler(settingsService, appLogger),
		JWTManager:   jwtManager,
		Logger:       appLogger,
	}
	if local, ok := receipts.(*storage.LocalStore); ok {
		deps.UploadsDir = local.Dir()
	}
	app := api.SetupRouter(deps)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
