package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// PortfolioService loads an owner's positions and aggregates them
type PortfolioService struct {
	PositionRepo domain.PositionRepository
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(positionRepo domain.PositionRepository) *PortfolioService {
	return &PortfolioService{PositionRepo: positionRepo}
}

// GetSummary aggregates every position the owner holds
func (s *PortfolioService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*Summary, error) {
	positions, err := s.PositionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	snapshot := make([]domain.InvestmentPosition, 0, len(positions))
	for _, p := range positions {
		snapshot = append(snapshot, *p)
	}

	return Aggregate(snapshot)
}
