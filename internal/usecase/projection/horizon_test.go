package projection

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorizonYears(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{name: "Exactly ten years", target: time.Date(2036, 10, 1, 0, 0, 0, 0, time.UTC), want: 10},
		{name: "Partial year rounds up", target: time.Date(2031, 11, 1, 0, 0, 0, 0, time.UTC), want: 6},
		{name: "One month away", target: time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "Same month", target: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "Target in the past", target: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "Thirteen months", target: time.Date(2027, 11, 1, 0, 0, 0, 0, time.UTC), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HorizonYears(now, tt.target))
		})
	}
}

func TestParamsFromGoal(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	goal := domain.Goal{
		GoalType:            "house",
		TargetAmount:        decimal.NewFromInt(60000),
		TargetDate:          time.Date(2031, 10, 1, 0, 0, 0, 0, time.UTC),
		MonthlyContribution: decimal.NewFromInt(800),
		Status:              domain.GoalStatusActive,
	}

	params := ParamsFromGoal(goal, decimal.NewFromInt(4200), decimal.NewFromInt(7), now)

	assert.True(t, goal.TargetAmount.Equal(params.TargetAmount))
	assert.True(t, decimal.NewFromInt(4200).Equal(params.CurrentAmount))
	assert.True(t, goal.MonthlyContribution.Equal(params.MonthlyContribution))
	assert.True(t, decimal.NewFromInt(7).Equal(params.AnnualReturnPercent))
	assert.Equal(t, 5, params.TimeHorizonYears)

	result, err := Simulate(params, now)
	require.NoError(t, err)
	assert.Len(t, result.Series, 6)
}
