package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PositionRepository defines the interface for investment position persistence operations
type PositionRepository interface {
	// GetByID retrieves a position by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*InvestmentPosition, error)

	// GetBySymbol retrieves the owner's position for a symbol
	// Returns an error wrapping ErrNotFound if the owner does not hold it
	GetBySymbol(ctx context.Context, ownerID uuid.UUID, symbol string) (*InvestmentPosition, error)

	// ListByOwner retrieves all positions held by an owner
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*InvestmentPosition, error)

	// Save inserts the position or updates it if its ID already exists
	Save(ctx context.Context, position *InvestmentPosition) error

	// Delete removes a position
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Record stores a transaction together with the position change it causes
	// Nothing is persisted unless both writes succeed
	Record(ctx context.Context, tx *Transaction, change PositionChange) error

	// ListByOwner retrieves an owner's transactions, newest first
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error)
}

// PositionChange is the position write that accompanies a recorded transaction
// The zero value leaves positions untouched
type PositionChange struct {
	Save     *InvestmentPosition // Upserted when set
	DeleteID uuid.UUID           // Deleted when not uuid.Nil
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// GetByID retrieves a goal by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// ListByOwner retrieves up to limit goals of an owner
	// A limit of 0 means no limit
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Goal, error)

	// CountByStatus returns how many of the owner's goals are in the given status
	CountByStatus(ctx context.Context, ownerID uuid.UUID, status GoalStatus) (int, error)
}

// PriceFeed is the external market-quote collaborator
type PriceFeed interface {
	// LatestPrice returns the most recent quote for a symbol
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
