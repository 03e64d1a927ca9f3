package investment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// RefreshReport summarises one price refresh run
type RefreshReport struct {
	Updated int
	Failed  map[string]error // Symbol -> quote error
}

// InvestmentService handles market price updates on positions
type InvestmentService struct {
	PositionRepo domain.PositionRepository
	PriceFeed    domain.PriceFeed
	Now          func() time.Time
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(positionRepo domain.PositionRepository, priceFeed domain.PriceFeed) *InvestmentService {
	return &InvestmentService{
		PositionRepo: positionRepo,
		PriceFeed:    priceFeed,
		Now:          time.Now,
	}
}

// UpdatePrice records a new market price on a position
// Returns the updated position
func (s *InvestmentService) UpdatePrice(ctx context.Context, positionID uuid.UUID, price decimal.Decimal) (*domain.InvestmentPosition, error) {
	// Validate price is positive
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("market price must be positive")
	}

	position, err := s.PositionRepo.GetByID(ctx, positionID)
	if err != nil {
		return nil, err
	}

	updated := position.WithLastPrice(price, s.Now())
	if err := s.PositionRepo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// RefreshPrices asks the price feed for every symbol the owner holds and stores the quotes
// A symbol whose quote fails keeps its previous price; the failure is logged and reported
func (s *InvestmentService) RefreshPrices(ctx context.Context, ownerID uuid.UUID) (*RefreshReport, error) {
	if s.PriceFeed == nil {
		return nil, errors.New("no price feed configured")
	}

	positions, err := s.PositionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	report := &RefreshReport{Failed: make(map[string]error)}
	quotes := make(map[string]decimal.Decimal)

	for _, position := range positions {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		price, seen := quotes[position.Symbol]
		if !seen {
			if _, failed := report.Failed[position.Symbol]; failed {
				continue
			}

			price, err = s.PriceFeed.LatestPrice(ctx, position.Symbol)
			if err == nil && !price.IsPositive() {
				err = fmt.Errorf("non-positive quote %s", price)
			}
			if err != nil {
				log.Printf("[WARN] price refresh for %s failed: %v", position.Symbol, err)
				report.Failed[position.Symbol] = err
				continue
			}
			quotes[position.Symbol] = price
		}

		updated := position.WithLastPrice(price, s.Now())
		if err := s.PositionRepo.Save(ctx, &updated); err != nil {
			return report, fmt.Errorf("failed to save price for %s: %w", position.Symbol, err)
		}
		report.Updated++
	}

	return report, nil
}
