package main

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney renders amount with the currency's symbol, grouping and minor units
func formatMoney(amount decimal.Decimal, code string) (string, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return "", fmt.Errorf("unknown currency %q", code)
	}

	fraction := int32(cur.Fraction)
	minor := amount.Round(fraction).Shift(fraction).IntPart()
	return money.New(minor, cur.Code).Display(), nil
}

// moneyFormatter binds a validated currency so callers can format without error checks
type moneyFormatter string

func newMoneyFormatter(code string) (moneyFormatter, error) {
	if _, err := formatMoney(decimal.Zero, code); err != nil {
		return "", err
	}
	return moneyFormatter(code), nil
}

func (f moneyFormatter) format(amount decimal.Decimal) string {
	s, _ := formatMoney(amount, string(f))
	return s
}
