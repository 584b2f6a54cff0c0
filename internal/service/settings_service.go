package service

import (
	"context"
	"errors"
	"fmt"

	"pennywise/internal/currency"
	"pennywise/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// SettingsService manages per-user preferences, currently the display
// currency.
type SettingsService struct {
	users  UserStore
	logger *zap.Logger
}

func NewSettingsService(users UserStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		users:  users,
		logger: logger,
	}
}

func (s *SettingsService) GetCurrency(ctx context.Context, userID uuid.UUID) (*dto.CurrencySettingsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	selected, ok := currency.ByCode(user.CurrencyCode)
	if !ok {
		selected = currency.Default()
	}

	return &dto.CurrencySettingsResponse{
		Selected:  selected,
		Available: currency.Available(),
	}, nil
}

func (s *SettingsService) SetCurrency(ctx context.Context, userID uuid.UUID, code string) (*dto.CurrencySettingsResponse, error) {
	selected, ok := currency.ByCode(code)
	if !ok {
		return nil, ErrUnknownCurrency
	}

	if err := s.users.UpdateCurrency(ctx, userID, selected.Code); err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	s.logger.Info("currency updated",
		zap.String("user_id", userID.String()),
		zap.String("code", selected.Code),
	)

	return &dto.CurrencySettingsResponse{
		Selected:  selected,
		Available: currency.Available(),
	}, nil
}
