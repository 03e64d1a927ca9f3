package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

const goalColumns = `id, owner_id, goal_type, target_amount, target_date, monthly_contribution, status, created_at`

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var status string
	var targetStr, contributionStr string

	if err := row.Scan(
		&goal.ID,
		&goal.OwnerID,
		&goal.GoalType,
		&targetStr,
		&goal.TargetDate,
		&contributionStr,
		&status,
		&goal.CreatedAt,
	); err != nil {
		return nil, err
	}
	goal.Status = domain.GoalStatus(status)

	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	goal.TargetAmount = target

	contribution, err := decimal.NewFromString(contributionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse monthly_contribution: %w", err)
	}
	goal.MonthlyContribution = contribution

	return &goal, nil
}

// GetByID retrieves a goal by its ID
func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal by ID: %w", err)
	}
	return goal, nil
}

// ListByOwner retrieves up to limit goals of an owner, oldest first
func (r *goalRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_id = $1 ORDER BY created_at, id`
	args := []interface{}{ownerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// CountByStatus returns how many of the owner's goals are in the given status
func (r *goalRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID, status domain.GoalStatus) (int, error) {
	query := `SELECT COUNT(*) FROM goals WHERE owner_id = $1 AND status = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, ownerID, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return count, nil
}
