package postgres

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSchema_AvgBuyPriceScale(t *testing.T) {
	column := fmt.Sprintf("avg_buy_price NUMERIC(30, %d)", decimal.DivisionPrecision)

	assert.Contains(t, schema[0], column)
	assert.Contains(t, schema[1], fmt.Sprintf("NUMERIC(30, %d)", decimal.DivisionPrecision))
}
