package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pennywise/internal/advice"
	"pennywise/internal/cache"
	"pennywise/internal/models"

	"go.uber.org/zap"
)

var ErrEmptyQuery = errors.New("query must not be empty")

// TextGenerator produces a completion for a prompt. Satisfied by
// LLMService.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AdviceService turns user questions into structured financial tips
// and suggests categories for transaction names. Responses are cached
// per normalized query so repeated questions skip the model call.
type AdviceService struct {
	llm    TextGenerator
	cache  *cache.LRU[advice.Tip]
	logger *zap.Logger
}

func NewAdviceService(llm TextGenerator, logger *zap.Logger) *AdviceService {
	return &AdviceService{
		llm:    llm,
		cache:  cache.New[advice.Tip](128, 30*time.Minute),
		logger: logger,
	}
}

func (s *AdviceService) GetAdvice(ctx context.Context, query string) (*advice.Tip, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := strings.ToLower(query)
	if tip, ok := s.cache.Get(key); ok {
		s.logger.Debug("advice cache hit", zap.String("query", key))
		return &tip, nil
	}

	prompt := buildAdvicePrompt(query)
	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate advice: %w", err)
	}

	tip := advice.Parse(text, query)
	s.cache.Set(key, tip)
	return &tip, nil
}

// SuggestCategory asks the model to pick a category for a transaction
// name. An answer outside the known category list returns "".
func (s *AdviceService) SuggestCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyQuery
	}

	categories := models.SuggestedCategories()
	prompt := fmt.Sprintf(
		"Categorize this transaction into exactly one of these categories: %s.\n"+
			"Transaction: %q\n"+
			"Respond with only the category name, nothing else.",
		strings.Join(categories, ", "), name,
	)

	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to suggest category: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(text))
	for _, c := range categories {
		if answer == c {
			return c, nil
		}
	}

	s.logger.Debug("category suggestion outside known list", zap.String("answer", answer))
	return "", nil
}

func buildAdvicePrompt(query string) string {
	return fmt.Sprintf(`Give practical financial advice for this question: %q

Format your response exactly as:
TITLE: a short title for the advice
ADVICE: the advice itself, two to four sentences, specific and actionable
CATEGORY: one word, e.g. budgeting, saving, spending, debt
DIFFICULTY: beginner, intermediate or advanced`, query)
}
