package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/projection"
)

// SimulateGoalInput selects a stored goal and optionally overrides its parameters
// Nil overrides keep the value seeded from the goal
type SimulateGoalInput struct {
	GoalID              uuid.UUID
	TargetAmount        *decimal.Decimal
	CurrentAmount       *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	AnnualReturnPercent *decimal.Decimal
	TimeHorizonYears    *int
	SampleEveryMonths   int
}

// SimulationOutput couples the projection with the parameters it ran with
type SimulationOutput struct {
	Goal   *domain.Goal
	Params projection.Params
	Result *projection.Result
}

// SavingsSource reports how much an owner has put aside
// *ledger.LedgerService satisfies it
type SavingsSource interface {
	SavedAmount(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
}

// GoalService runs what-if projections for stored goals
type GoalService struct {
	GoalRepo            domain.GoalRepository
	Savings             SavingsSource
	DefaultAnnualReturn decimal.Decimal
	SampleEveryMonths   int // Used when the input leaves the interval at 0
	Now                 func() time.Time
}

// NewGoalService creates a new GoalService instance
func NewGoalService(goalRepo domain.GoalRepository, savings SavingsSource, defaultAnnualReturn decimal.Decimal) *GoalService {
	return &GoalService{
		GoalRepo:            goalRepo,
		Savings:             savings,
		DefaultAnnualReturn: defaultAnnualReturn,
		Now:                 time.Now,
	}
}

// SimulateGoal projects a stored goal
// Logic:
//  1. Fetch the goal
//  2. Seed currentAmount from the owner's net contributions unless overridden
//  3. Seed target, contribution and horizon from the goal, then apply overrides
//  4. Run projection.Simulate with the current time
func (s *GoalService) SimulateGoal(ctx context.Context, input SimulateGoalInput) (*SimulationOutput, error) {
	g, err := s.GoalRepo.GetByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}

	var current decimal.Decimal
	if input.CurrentAmount != nil {
		current = *input.CurrentAmount
	} else {
		current, err = s.savedAmount(ctx, g.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	annualReturn := s.DefaultAnnualReturn
	if input.AnnualReturnPercent != nil {
		annualReturn = *input.AnnualReturnPercent
	}

	now := s.Now()
	params := projection.ParamsFromGoal(*g, current, annualReturn, now)
	if input.TargetAmount != nil {
		params.TargetAmount = *input.TargetAmount
	}
	if input.MonthlyContribution != nil {
		params.MonthlyContribution = *input.MonthlyContribution
	}
	if input.TimeHorizonYears != nil {
		params.TimeHorizonYears = *input.TimeHorizonYears
	}
	params.SampleEveryMonths = input.SampleEveryMonths
	if params.SampleEveryMonths == 0 {
		params.SampleEveryMonths = s.SampleEveryMonths
	}

	result, err := projection.Simulate(params, now)
	if err != nil {
		return nil, err
	}

	return &SimulationOutput{Goal: g, Params: params, Result: result}, nil
}

func (s *GoalService) savedAmount(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	if s.Savings == nil {
		return decimal.Zero, nil
	}
	return s.Savings.SavedAmount(ctx, ownerID)
}
