package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Record inserts the transaction and applies its position change in one database transaction
func (r *transactionRepository) Record(ctx context.Context, tx *domain.Transaction, change domain.PositionChange) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (id, owner_id, type, symbol, quantity, price, fees, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = dbTx.ExecContext(ctx, query,
		tx.ID,
		tx.OwnerID,
		string(tx.Type),
		domain.NormalizeSymbol(tx.Symbol),
		tx.Quantity.String(),
		tx.Price.String(),
		tx.Fees.String(),
		tx.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if change.DeleteID != uuid.Nil {
		if err := deletePosition(ctx, dbTx, change.DeleteID); err != nil {
			return err
		}
	}
	if change.Save != nil {
		if err := savePosition(ctx, dbTx, change.Save); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByOwner retrieves an owner's transactions, newest first
func (r *transactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, owner_id, type, symbol, quantity, price, fees, executed_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY executed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var txType string
		var quantityStr, priceStr, feesStr string

		if err := rows.Scan(
			&tx.ID,
			&tx.OwnerID,
			&txType,
			&tx.Symbol,
			&quantityStr,
			&priceStr,
			&feesStr,
			&tx.ExecutedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Type = domain.TransactionType(txType)

		if tx.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		if tx.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		if tx.Fees, err = decimal.NewFromString(feesStr); err != nil {
			return nil, fmt.Errorf("failed to parse fees: %w", err)
		}

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
