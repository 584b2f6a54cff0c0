// Command seed loads a demo user with a month of transactions and a
// few budgets, for local development and manual testing.
package main

import (
	"context"
	"log"
	"time"

	"pennywise/internal/models"
	"pennywise/internal/repository"
	"pennywise/pkg/auth"
	"pennywise/pkg/config"
	"pennywise/pkg/logger"
	"pennywise/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@pennywise.local"
	demoPassword = "demo1234"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	user, err := seedUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	if err := seedTransactions(ctx, txRepo, user.ID); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}
	if err := seedBudgets(ctx, budgetRepo, user.ID); err != nil {
		appLogger.Fatal("Failed to seed budgets", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", demoEmail),
		zap.String("password", demoPassword),
	)
}

func seedUser(ctx context.Context, repo *repository.UserRepository) (*models.User, error) {
	if existing, err := repo.GetByEmail(ctx, demoEmail); err == nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        demoEmail,
		Password:     hashed,
		DisplayName:  "Demo User",
		CurrencyCode: "INR",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedTransactions(ctx context.Context, repo *repository.TransactionRepository, userID uuid.UUID) error {
	now := time.Now()
	rows := []struct {
		kind     models.TransactionType
		amount   float64
		category string
		name     string
		daysAgo  int
	}{
		{models.TypeIncome, 52000, "salary", "Monthly salary", 25},
		{models.TypeExpense, 1250.50, "food", "Groceries", 24},
		{models.TypeExpense, 349, "entertainment", "Streaming subscription", 20},
		{models.TypeExpense, 2100, "bills", "Electricity bill", 18},
		{models.TypeExpense, 640, "transport", "Fuel", 15},
		{models.TypeExpense, 3450, "shopping", "New headphones", 12},
		{models.TypeExpense, 980.25, "food", "Dinner out", 8},
		{models.TypeIncome, 4000, "other", "Freelance work", 6},
		{models.TypeExpense, 420, "transport", "Cab ride", 3},
		{models.TypeExpense, 1575, "food", "Groceries", 1},
	}

	for _, row := range rows {
		date := now.AddDate(0, 0, -row.daysAgo)
		tx := &models.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      row.kind,
			Amount:    row.amount,
			Category:  row.category,
			Name:      row.name,
			Date:      date,
			CreatedAt: date,
			UpdatedAt: date,
		}
		if err := repo.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func seedBudgets(ctx context.Context, repo *repository.BudgetRepository, userID uuid.UUID) error {
	now := time.Now()
	rows := []struct {
		name     string
		category string
		amount   float64
	}{
		{"Groceries", "food", 6000},
		{"Getting around", "transport", 2000},
		{"Fun money", "entertainment", 1500},
	}

	for _, row := range rows {
		b := &models.Budget{
			ID:             uuid.New(),
			UserID:         userID,
			Name:           row.name,
			Category:       row.category,
			Amount:         row.amount,
			LastCalculated: now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
