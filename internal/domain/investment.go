package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the asset class of a position
// Known classes are listed below; the data store may hold others and they are kept as-is
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeBond   AssetType = "bond"
)

// KnownAssetTypes lists the asset classes the dashboard ships with
var KnownAssetTypes = []AssetType{AssetTypeStock, AssetTypeCrypto, AssetTypeBond}

// IsKnown reports whether the asset type is one of KnownAssetTypes
func (a AssetType) IsKnown() bool {
	for _, known := range KnownAssetTypes {
		if a == known {
			return true
		}
	}
	return false
}

// InvestmentPosition represents one held asset lot
// This struct tracks what was paid (cost basis) against what it is worth now (current value)
type InvestmentPosition struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Symbol      string
	AssetType   AssetType
	Units       decimal.Decimal
	AvgBuyPrice decimal.Decimal  // Cost per unit at acquisition
	LastPrice   *decimal.Decimal // NULL until a quote has been recorded
	LastPriceAt *time.Time
}

// NormalizeSymbol trims and uppercases a ticker or asset code
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// CostBasis returns units * avgBuyPrice
func (p InvestmentPosition) CostBasis() decimal.Decimal {
	return p.Units.Mul(p.AvgBuyPrice)
}

// Price returns the last known market price, falling back to the average buy price
func (p InvestmentPosition) Price() decimal.Decimal {
	if p.LastPrice != nil {
		return *p.LastPrice
	}
	return p.AvgBuyPrice
}

// CurrentValue returns units * price
func (p InvestmentPosition) CurrentValue() decimal.Decimal {
	return p.Units.Mul(p.Price())
}

// UnrealizedProfitLoss returns CurrentValue - CostBasis
func (p InvestmentPosition) UnrealizedProfitLoss() decimal.Decimal {
	return p.CurrentValue().Sub(p.CostBasis())
}

// Validate ensures the position's numeric fields are non-negative
// Returns an *InvalidPositionError naming the first offending field
func (p InvestmentPosition) Validate() error {
	if p.Units.IsNegative() {
		return &InvalidPositionError{Symbol: p.Symbol, Field: "units", Reason: "must not be negative"}
	}
	if p.AvgBuyPrice.IsNegative() {
		return &InvalidPositionError{Symbol: p.Symbol, Field: "avgBuyPrice", Reason: "must not be negative"}
	}
	if p.LastPrice != nil && p.LastPrice.IsNegative() {
		return &InvalidPositionError{Symbol: p.Symbol, Field: "lastPrice", Reason: "must not be negative"}
	}
	return nil
}

// WithLastPrice returns a copy of the position carrying a new market price
func (p InvestmentPosition) WithLastPrice(price decimal.Decimal, at time.Time) InvestmentPosition {
	p.LastPrice = &price
	p.LastPriceAt = &at
	return p
}
