package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoal_Validate(t *testing.T) {
	valid := Goal{
		GoalType:            "retirement",
		TargetAmount:        decimal.NewFromInt(120000),
		TargetDate:          time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyContribution: decimal.NewFromInt(500),
		Status:              GoalStatusActive,
	}

	tests := []struct {
		name      string
		mutate    func(g *Goal)
		wantField string
	}{
		{name: "Valid goal should pass", mutate: func(g *Goal) {}},
		{name: "Zero contribution is allowed", mutate: func(g *Goal) { g.MonthlyContribution = decimal.Zero }},
		{name: "Empty goal type should fail", mutate: func(g *Goal) { g.GoalType = "" }, wantField: "goalType"},
		{name: "Zero target should fail", mutate: func(g *Goal) { g.TargetAmount = decimal.Zero }, wantField: "targetAmount"},
		{name: "Negative target should fail", mutate: func(g *Goal) { g.TargetAmount = decimal.NewFromInt(-1) }, wantField: "targetAmount"},
		{name: "Negative contribution should fail", mutate: func(g *Goal) { g.MonthlyContribution = decimal.NewFromInt(-1) }, wantField: "monthlyContribution"},
		{name: "Unknown status should fail", mutate: func(g *Goal) { g.Status = "archived" }, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid
			tt.mutate(&g)

			err := g.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var goalErr *InvalidGoalParametersError
			assert.True(t, errors.As(err, &goalErr))
			assert.Equal(t, tt.wantField, goalErr.Field)
		})
	}
}
