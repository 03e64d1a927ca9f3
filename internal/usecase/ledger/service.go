package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// RecordTransactionInput represents the input for recording a transaction
type RecordTransactionInput struct {
	OwnerID    uuid.UUID
	Type       domain.TransactionType
	Symbol     string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Fees       decimal.Decimal
	AssetType  domain.AssetType // Used when the transaction opens a new position
	ExecutedAt time.Time        // Zero means now
}

// RecordTransactionResult is the stored transaction and the position it left behind
type RecordTransactionResult struct {
	Transaction *domain.Transaction
	Outcome     Outcome
}

// LedgerService records transactions and keeps positions in step with them
type LedgerService struct {
	PositionRepo    domain.PositionRepository
	TransactionRepo domain.TransactionRepository
	Now             func() time.Time
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(positionRepo domain.PositionRepository, transactionRepo domain.TransactionRepository) *LedgerService {
	return &LedgerService{
		PositionRepo:    positionRepo,
		TransactionRepo: transactionRepo,
		Now:             time.Now,
	}
}

// RecordTransaction stores a transaction and applies it to the owner's position
// Logic:
//  1. Validate the transaction
//  2. Fetch the existing position for the symbol (missing is fine)
//  3. ApplyTransaction to get the new position state
//  4. Persist the transaction and the position change together
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*RecordTransactionResult, error) {
	executedAt := input.ExecutedAt
	if executedAt.IsZero() {
		executedAt = s.Now()
	}

	tx := &domain.Transaction{
		ID:         uuid.New(),
		OwnerID:    input.OwnerID,
		Type:       input.Type,
		Symbol:     domain.NormalizeSymbol(input.Symbol),
		Quantity:   input.Quantity,
		Price:      input.Price,
		Fees:       input.Fees,
		ExecutedAt: executedAt,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	var existing *domain.InvestmentPosition
	if tx.Symbol != "" {
		position, err := s.PositionRepo.GetBySymbol(ctx, tx.OwnerID, tx.Symbol)
		switch {
		case err == nil:
			existing = position
		case errors.Is(err, domain.ErrNotFound):
			// First lot of this symbol
		default:
			return nil, fmt.Errorf("failed to get position for %s: %w", tx.Symbol, err)
		}
	}

	outcome, err := ApplyTransaction(existing, *tx, input.AssetType)
	if err != nil {
		return nil, err
	}

	var change domain.PositionChange
	switch {
	case outcome.Removed:
		change.DeleteID = existing.ID
	case outcome.Changed:
		change.Save = outcome.Position
	}

	if err := s.TransactionRepo.Record(ctx, tx, change); err != nil {
		return nil, fmt.Errorf("failed to record %s transaction: %w", tx.Type, err)
	}

	return &RecordTransactionResult{Transaction: tx, Outcome: outcome}, nil
}

// SavedAmount returns the owner's accumulated net contributions
func (s *LedgerService) SavedAmount(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	transactions, err := s.TransactionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions: %w", err)
	}

	snapshot := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		snapshot = append(snapshot, *tx)
	}

	return SavedAmount(snapshot), nil
}
