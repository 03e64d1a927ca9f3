package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		code     string
		expected string
	}{
		{amount: "6167.78", code: "USD", expected: "$6,167.78"},
		{amount: "0.005", code: "USD", expected: "$0.01"},
		{amount: "1000", code: "JPY", expected: "¥1,000"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.amount, func(t *testing.T) {
			got, err := formatMoney(decimal.RequireFromString(tt.amount), tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := formatMoney(decimal.Zero, "ZZZ")
	assert.Error(t, err)
}

func TestAggregateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
positions:
  - symbol: voo
    asset_type: stock
    units: "2"
    avg_buy_price: "400"
  - symbol: BND
    asset_type: bond
    units: "10"
    avg_buy_price: "20"
    last_price: "25"
`), 0o600))

	out, err := run(t, "aggregate", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Current value: $1,050.00")
	assert.Contains(t, out, "Profit/loss:   $50.00")
	assert.Contains(t, out, "76.19%")
	assert.Contains(t, out, "23.81%")
}

func TestAggregateCommand_RejectsNegativeUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
positions:
  - symbol: X
    units: "-1"
    avg_buy_price: "1"
`), 0o600))

	_, err := run(t, "aggregate", "--file", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "units must not be negative")
}

func TestParsePositions_BadDecimal(t *testing.T) {
	_, err := parsePositions([]byte("positions:\n  - symbol: X\n    units: ten\n    avg_buy_price: \"1\"\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positions[0].units")
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--target", "120000", "--monthly", "500", "--return", "6", "--years", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "Year")
	assert.Contains(t, out, "$6,167.78")
	assert.Contains(t, out, "$120,000.00")
	assert.Contains(t, out, "Goal unreachable within horizon (10 years)")
}

func TestSimulateCommand_AlreadyReached(t *testing.T) {
	out, err := run(t, "simulate", "--target", "1000", "--current", "2000", "--years", "1", "--currency", "EUR")
	require.NoError(t, err)

	assert.Contains(t, out, "Goal reached after 0 months")
}

func TestSimulateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "No Horizon", args: []string{"simulate", "--target", "100"}},
		{name: "Both Horizons", args: []string{"simulate", "--target", "100", "--years", "2", "--target-date", "2030-01-01"}},
		{name: "Missing Target", args: []string{"simulate", "--years", "2"}},
		{name: "Zero Target", args: []string{"simulate", "--target", "0", "--years", "2"}},
		{name: "Unknown Currency", args: []string{"simulate", "--target", "100", "--years", "2", "--currency", "ZZZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
