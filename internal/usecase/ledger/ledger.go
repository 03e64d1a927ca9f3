package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// Outcome describes how a transaction changed the position it touched
type Outcome struct {
	Position *domain.InvestmentPosition // New position state, nil when nothing is held afterwards
	Removed  bool                       // True when an existing position was sold out
	Changed  bool                       // False when the transaction does not move units
}

// ApplyTransaction computes the position that results from executing tx on existing
// existing may be nil when the owner does not hold tx.Symbol yet; it is never modified
// assetType is used only when a new position is opened (defaults to stock)
// Logic:
//   - buy/contribution: add units at tx.Price; avgBuyPrice becomes the weighted average
//   - sell/withdrawal: remove units; the cost basis shrinks in proportion to the units sold
//     and the position is removed once no units remain
//   - dividend and cash-only events leave positions untouched
func ApplyTransaction(existing *domain.InvestmentPosition, tx domain.Transaction, assetType domain.AssetType) (Outcome, error) {
	if err := tx.Validate(); err != nil {
		return Outcome{}, err
	}

	if tx.Symbol == "" || tx.Type == domain.TransactionTypeDividend {
		return Outcome{Position: existing}, nil
	}

	switch {
	case tx.IsInflow():
		if existing == nil {
			return Outcome{Position: openPosition(tx, assetType), Changed: true}, nil
		}
		merged := MergeLot(*existing, tx.Quantity, tx.Price)
		at := tx.ExecutedAt
		merged.LastPriceAt = &at
		return Outcome{Position: &merged, Changed: true}, nil

	case tx.IsOutflow():
		if existing == nil {
			// Nothing held, nothing to reduce
			return Outcome{}, nil
		}
		return reduce(*existing, tx), nil
	}

	return Outcome{Position: existing}, nil
}

// MergeLot adds units bought at price to a position
// avgBuyPrice = (oldCost + units*price) / (oldUnits + units), 0 when no units are held
// The last price is set to the purchase price and its quote time is cleared
func MergeLot(p domain.InvestmentPosition, units, price decimal.Decimal) domain.InvestmentPosition {
	totalUnits := p.Units.Add(units)
	totalCost := p.CostBasis().Add(units.Mul(price))

	p.Units = totalUnits
	if totalUnits.IsPositive() {
		p.AvgBuyPrice = totalCost.Div(totalUnits)
	} else {
		p.AvgBuyPrice = decimal.Zero
	}

	last := price
	p.LastPrice = &last
	p.LastPriceAt = nil
	return p
}

func openPosition(tx domain.Transaction, assetType domain.AssetType) *domain.InvestmentPosition {
	if assetType == "" {
		assetType = domain.AssetTypeStock
	}

	last := tx.Price
	at := tx.ExecutedAt
	return &domain.InvestmentPosition{
		ID:          uuid.New(),
		OwnerID:     tx.OwnerID,
		Symbol:      domain.NormalizeSymbol(tx.Symbol),
		AssetType:   assetType,
		Units:       tx.Quantity,
		AvgBuyPrice: tx.Price,
		LastPrice:   &last,
		LastPriceAt: &at,
	}
}

// reduce removes sold units from a position
// Selling a fraction of the units keeps avgBuyPrice, so the cost basis drops pro rata
func reduce(p domain.InvestmentPosition, tx domain.Transaction) Outcome {
	remaining := p.Units.Sub(tx.Quantity)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return Outcome{Removed: true, Changed: true}
	}

	p.Units = remaining
	last := tx.Price
	at := tx.ExecutedAt
	p.LastPrice = &last
	p.LastPriceAt = &at
	return Outcome{Position: &p, Changed: true}
}

// SavedAmount returns how much cash has been put aside through contributions
// Sum(contribution totals) - Sum(withdrawal totals), never below zero
func SavedAmount(transactions []domain.Transaction) decimal.Decimal {
	saved := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeContribution:
			saved = saved.Add(tx.Total())
		case domain.TransactionTypeWithdrawal:
			saved = saved.Sub(tx.Total())
		}
	}

	if saved.IsNegative() {
		return decimal.Zero
	}
	return saved
}
