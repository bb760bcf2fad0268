// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finbits/tips-service/internal/domain"
	"github.com/finbits/tips-service/internal/ports"
)

// TipService orchestrates tip-related use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type TipService struct {
	repo   ports.TipRepository
	logger *slog.Logger
}

// TipServiceConfig contains configuration for the tip service.
type TipServiceConfig struct {
	Repository ports.TipRepository
	Logger     *slog.Logger
}

// NewTipService creates a new tip service with the provided dependencies.
func NewTipService(cfg TipServiceConfig) *TipService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TipService{
		repo:   cfg.Repository,
		logger: logger,
	}
}

// AddTip validates the tip text and durably persists a new tip.
// The returned tip carries the store-assigned id. The text must be
// non-empty; the store is not touched when validation fails.
func (s *TipService) AddTip(ctx context.Context, text string) (*domain.Tip, error) {
	if text == "" {
		s.logger.WarnContext(ctx, "rejected tip without text")
		return nil, fmt.Errorf("validating tip: %w", domain.NewValidationError("tip", "must not be empty"))
	}

	tip := &domain.Tip{Text: text}

	if err := s.repo.Create(ctx, tip); err != nil {
		s.logger.ErrorContext(ctx, "failed to add tip",
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("adding tip: %w", err)
	}

	s.logger.InfoContext(ctx, "added new tip",
		slog.Int64("tip_id", tip.ID),
	)

	return tip, nil
}

// ListTips returns all stored tips in ascending creation order.
// An empty store yields an empty slice, not an error.
func (s *TipService) ListTips(ctx context.Context) ([]domain.Tip, error) {
	tips, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch tips",
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("listing tips: %w", err)
	}

	s.logger.InfoContext(ctx, "fetched all tips",
		slog.Int("count", len(tips)),
	)

	return tips, nil
}
