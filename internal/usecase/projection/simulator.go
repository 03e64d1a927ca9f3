package projection

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

const (
	monthsPerYear = 12

	// MaxHorizonYears bounds the simulation loop
	MaxHorizonYears = 100

	// balancePlaces is the precision the running balance is carried with between months
	balancePlaces = 10

	// pointPlaces is the precision of recorded projection points
	pointPlaces = 2
)

var monthlyDivisor = decimal.NewFromInt(100 * monthsPerYear)

// Params are the inputs of one simulation run
// A new value is built for every re-simulation; nothing carries between calls
type Params struct {
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal // Already saved toward the goal
	MonthlyContribution decimal.Decimal
	AnnualReturnPercent decimal.Decimal // Nominal, e.g. 7 for 7%
	TimeHorizonYears    int
	SampleEveryMonths   int // Interval between recorded points, 0 means yearly
}

// Point is one sample of the projected balance
type Point struct {
	PeriodIndex    int // Years when sampling yearly, otherwise intervals since start
	ProjectedValue decimal.Decimal
	TargetValue    decimal.Decimal
}

// Completion is the estimate of when the target is first met
// Reached is false when the target is unreachable within the horizon
type Completion struct {
	Reached bool
	Month   int // Months from now; 0 means the goal is already met
	Date    time.Time
}

// String returns the completion date (YYYY-MM-DD) or the unreachable marker
func (c Completion) String() string {
	if !c.Reached {
		return "unreachable within horizon"
	}
	return c.Date.Format("2006-01-02")
}

// Result is the outcome of a simulation run
type Result struct {
	Series     []Point
	Achievable bool
	FinalValue decimal.Decimal
	Completion Completion
}

// Validate checks the parameters can be simulated
// Returns an *domain.InvalidGoalParametersError naming the first offending field
func (p Params) Validate() error {
	if p.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidGoalParametersError{Field: "targetAmount", Reason: "must be positive"}
	}
	if p.CurrentAmount.IsNegative() {
		return &domain.InvalidGoalParametersError{Field: "currentAmount", Reason: "must not be negative"}
	}
	if p.MonthlyContribution.IsNegative() {
		return &domain.InvalidGoalParametersError{Field: "monthlyContribution", Reason: "must not be negative"}
	}
	if p.AnnualReturnPercent.LessThan(decimal.NewFromInt(-100)) {
		return &domain.InvalidGoalParametersError{Field: "annualReturnPercent", Reason: "must not be below -100"}
	}
	if p.TimeHorizonYears < 1 {
		return &domain.InvalidGoalParametersError{Field: "timeHorizonYears", Reason: "must be at least 1"}
	}
	if p.TimeHorizonYears > MaxHorizonYears {
		return &domain.InvalidGoalParametersError{Field: "timeHorizonYears", Reason: "must not exceed 100"}
	}
	if p.SampleEveryMonths < 0 {
		return &domain.InvalidGoalParametersError{Field: "sampleEveryMonths", Reason: "must not be negative"}
	}
	return nil
}

// Simulate projects a savings goal under monthly compounding with a fixed contribution
// Logic (for m = 0..totalMonths inclusive):
//  1. On every sampling boundary record round(balance, 2) against the target
//  2. The first month whose starting balance meets the target is the completion month
//  3. balance = balance * (1 + annual/100/12) + contribution
//
// FinalValue is the balance after the step following the last month, so it includes
// one more period of growth and contribution than the last recorded point
// now is only used to date the completion estimate; the series depends on params alone
func Simulate(params Params, now time.Time) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	interval := params.SampleEveryMonths
	if interval == 0 {
		interval = monthsPerYear
	}

	growth := decimal.NewFromInt(1).Add(params.AnnualReturnPercent.Div(monthlyDivisor))
	totalMonths := params.TimeHorizonYears * monthsPerYear

	series := make([]Point, 0, totalMonths/interval+1)
	current := params.CurrentAmount
	achievedMonth := -1

	for m := 0; m <= totalMonths; m++ {
		if m%interval == 0 {
			series = append(series, Point{
				PeriodIndex:    m / interval,
				ProjectedValue: current.Round(pointPlaces),
				TargetValue:    params.TargetAmount,
			})
		}

		// Checked before this month's growth so a goal met up front reports month 0
		if achievedMonth < 0 && current.GreaterThanOrEqual(params.TargetAmount) {
			achievedMonth = m
		}

		current = current.Mul(growth).Add(params.MonthlyContribution).Round(balancePlaces)
	}

	result := &Result{
		Series:     series,
		Achievable: current.GreaterThanOrEqual(params.TargetAmount),
		FinalValue: current,
	}

	if achievedMonth >= 0 {
		result.Completion = Completion{
			Reached: true,
			Month:   achievedMonth,
			Date:    now.AddDate(0, achievedMonth, 0),
		}
	}

	return result, nil
}
