package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of executed cash/asset event
type TransactionType string

const (
	TransactionTypeBuy          TransactionType = "buy"
	TransactionTypeSell         TransactionType = "sell"
	TransactionTypeDividend     TransactionType = "dividend"
	TransactionTypeContribution TransactionType = "contribution"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"
)

// Transaction represents an executed cash or asset event
type Transaction struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Type       TransactionType
	Symbol     string // Empty for cash-only events
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Fees       decimal.Decimal
	ExecutedAt time.Time
}

// Total returns quantity * price + fees
func (t Transaction) Total() decimal.Decimal {
	return t.Quantity.Mul(t.Price).Add(t.Fees)
}

// IsInflow reports whether the event adds units or cash (buy, contribution)
func (t Transaction) IsInflow() bool {
	return t.Type == TransactionTypeBuy || t.Type == TransactionTypeContribution
}

// IsOutflow reports whether the event removes units or cash (sell, withdrawal)
func (t Transaction) IsOutflow() bool {
	return t.Type == TransactionTypeSell || t.Type == TransactionTypeWithdrawal
}

// Validate ensures the transaction adheres to domain rules
// Returns an *InvalidTransactionError if validation fails
func (t Transaction) Validate() error {
	switch t.Type {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend,
		TransactionTypeContribution, TransactionTypeWithdrawal:
	default:
		return &InvalidTransactionError{Field: "type", Reason: "must be buy, sell, dividend, contribution or withdrawal"}
	}

	// Buying or selling an asset always names it
	if (t.Type == TransactionTypeBuy || t.Type == TransactionTypeSell) && t.Symbol == "" {
		return &InvalidTransactionError{Field: "symbol", Reason: "is required for " + string(t.Type)}
	}

	if t.Quantity.IsNegative() {
		return &InvalidTransactionError{Field: "quantity", Reason: "must not be negative"}
	}
	if t.Price.IsNegative() {
		return &InvalidTransactionError{Field: "price", Reason: "must not be negative"}
	}
	if t.Fees.IsNegative() {
		return &InvalidTransactionError{Field: "fees", Reason: "must not be negative"}
	}

	return nil
}
