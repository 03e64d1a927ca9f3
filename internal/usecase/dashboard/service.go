package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/portfolio"
)

// goalProgressLimit is how many goals the dashboard lists
const goalProgressLimit = 10

// SummaryResult represents the dashboard landing view
type SummaryResult struct {
	Portfolio        *portfolio.Summary
	ActiveGoalsCount int
	Goals            []domain.Goal
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	PortfolioService *portfolio.PortfolioService
	GoalRepo         domain.GoalRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(portfolioService *portfolio.PortfolioService, goalRepo domain.GoalRepository) *DashboardService {
	return &DashboardService{
		PortfolioService: portfolioService,
		GoalRepo:         goalRepo,
	}
}

// GetSummary builds the dashboard for an owner
// Logic:
//   - Portfolio: aggregate of every held position
//   - ActiveGoalsCount: number of goals in the active status
//   - Goals: the first goalProgressLimit goals, for progress widgets
func (s *DashboardService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*SummaryResult, error) {
	summary, err := s.PortfolioService.GetSummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.GoalRepo.CountByStatus(ctx, ownerID, domain.GoalStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active goals: %w", err)
	}

	goals, err := s.GoalRepo.ListByOwner(ctx, ownerID, goalProgressLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	progress := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, *g)
	}

	return &SummaryResult{
		Portfolio:        summary,
		ActiveGoalsCount: activeCount,
		Goals:            progress,
	}, nil
}
