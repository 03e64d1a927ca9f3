package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

// Goal represents a savings target
type Goal struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	GoalType            string // Free-form label (e.g. "retirement", "house")
	TargetAmount        decimal.Decimal
	TargetDate          time.Time
	MonthlyContribution decimal.Decimal
	Status              GoalStatus
	CreatedAt           time.Time
}

// Validate ensures the goal adheres to domain rules
// Returns an *InvalidGoalParametersError if validation fails
func (g Goal) Validate() error {
	if g.GoalType == "" {
		return &InvalidGoalParametersError{Field: "goalType", Reason: "cannot be empty"}
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return &InvalidGoalParametersError{Field: "targetAmount", Reason: "must be positive"}
	}
	if g.MonthlyContribution.IsNegative() {
		return &InvalidGoalParametersError{Field: "monthlyContribution", Reason: "must not be negative"}
	}
	switch g.Status {
	case GoalStatusActive, GoalStatusPaused, GoalStatusCompleted:
	default:
		return &InvalidGoalParametersError{Field: "status", Reason: "must be active, paused or completed"}
	}
	return nil
}
