package projection

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// HorizonYears returns the number of whole years to simulate until targetDate
// Only calendar months are counted (days are ignored) and the result is never below 1,
// so a target date in the past or less than a year away still gets a one-year horizon
func HorizonYears(now, targetDate time.Time) int {
	months := (targetDate.Year()-now.Year())*monthsPerYear + int(targetDate.Month()) - int(now.Month())
	if months <= 0 {
		return 1
	}

	return (months + monthsPerYear - 1) / monthsPerYear
}

// ParamsFromGoal seeds simulation parameters from a stored goal
// The caller supplies how much has been saved so far and the return assumption
func ParamsFromGoal(goal domain.Goal, currentAmount, annualReturnPercent decimal.Decimal, now time.Time) Params {
	return Params{
		TargetAmount:        goal.TargetAmount,
		CurrentAmount:       currentAmount,
		MonthlyContribution: goal.MonthlyContribution,
		AnnualReturnPercent: annualReturnPercent,
		TimeHorizonYears:    HorizonYears(now, goal.TargetDate),
	}
}
