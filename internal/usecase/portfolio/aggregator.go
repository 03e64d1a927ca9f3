package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// percentPlaces is the precision allocation percentages are reported with
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// AllocationItem is the share of current value held in one asset class
type AllocationItem struct {
	AssetClass string
	TotalValue decimal.Decimal
	Percentage decimal.Decimal // 0-100, rounded to 2 places
}

// Summary represents the portfolio-level aggregates
type Summary struct {
	TotalInvested     decimal.Decimal
	TotalCurrentValue decimal.Decimal
	TotalProfitLoss   decimal.Decimal
	TotalValue        decimal.Decimal // Same as TotalCurrentValue, kept for allocation views
	Allocation        []AllocationItem
}

// Classifier maps a position to the allocation group it belongs to
type Classifier func(p domain.InvestmentPosition) string

// ByAssetType groups positions by their asset type
func ByAssetType(p domain.InvestmentPosition) string {
	return string(p.AssetType)
}

// Aggregate calculates the portfolio summary grouped by asset type
func Aggregate(positions []domain.InvestmentPosition) (*Summary, error) {
	return AggregateBy(positions, ByAssetType)
}

// AggregateBy calculates the portfolio summary using a caller-supplied grouping
// Logic:
//  1. Validate every position; one bad position rejects the whole call
//  2. TotalInvested = Sum(cost basis), TotalCurrentValue = Sum(current value)
//  3. TotalProfitLoss = TotalCurrentValue - TotalInvested
//  4. Percentage(group) = groupValue / TotalCurrentValue * 100, or 0 when the total is 0
//
// The input slice is never modified
func AggregateBy(positions []domain.InvestmentPosition, classify Classifier) (*Summary, error) {
	if classify == nil {
		classify = ByAssetType
	}

	for _, p := range positions {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	totalInvested := decimal.Zero
	totalCurrent := decimal.Zero
	groups := make(map[string]decimal.Decimal)

	for _, p := range positions {
		value := p.CurrentValue()
		totalInvested = totalInvested.Add(p.CostBasis())
		totalCurrent = totalCurrent.Add(value)

		class := classify(p)
		groups[class] = groups[class].Add(value)
	}

	allocation := make([]AllocationItem, 0, len(groups))
	for class, value := range groups {
		allocation = append(allocation, AllocationItem{
			AssetClass: class,
			TotalValue: value,
			Percentage: percentage(value, totalCurrent),
		})
	}

	// Largest holdings first, class name breaks ties so output is stable
	sort.Slice(allocation, func(i, j int) bool {
		if cmp := allocation[i].TotalValue.Cmp(allocation[j].TotalValue); cmp != 0 {
			return cmp > 0
		}
		return allocation[i].AssetClass < allocation[j].AssetClass
	})

	return &Summary{
		TotalInvested:     totalInvested,
		TotalCurrentValue: totalCurrent,
		TotalProfitLoss:   totalCurrent.Sub(totalInvested),
		TotalValue:        totalCurrent,
		Allocation:        allocation,
	}, nil
}

// percentage returns part/total*100, defined as 0 when total is not positive
func percentage(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(percentPlaces)
}
