package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/portfolio"
)

// positionsFile is the YAML snapshot read by the aggregate command
type positionsFile struct {
	Positions []struct {
		Symbol      string `yaml:"symbol"`
		AssetType   string `yaml:"asset_type"`
		Units       string `yaml:"units"`
		AvgBuyPrice string `yaml:"avg_buy_price"`
		LastPrice   string `yaml:"last_price"`
	} `yaml:"positions"`
}

func aggregateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Summarise a positions snapshot by asset class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newMoneyFormatter(currency)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read positions: %w", err)
			}
			positions, err := parsePositions(data)
			if err != nil {
				return err
			}

			summary, err := portfolio.Aggregate(positions)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary, f)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "positions.yaml", "YAML file listing the held positions")
	return cmd
}

func parsePositions(data []byte) ([]domain.InvestmentPosition, error) {
	var snapshot positionsFile
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse positions: %w", err)
	}

	positions := make([]domain.InvestmentPosition, 0, len(snapshot.Positions))
	for i, row := range snapshot.Positions {
		p := domain.InvestmentPosition{
			Symbol:    domain.NormalizeSymbol(row.Symbol),
			AssetType: domain.AssetType(row.AssetType),
		}
		if p.AssetType == "" {
			p.AssetType = domain.AssetTypeStock
		}

		var err error
		if p.Units, err = decimal.NewFromString(row.Units); err != nil {
			return nil, fmt.Errorf("positions[%d].units: %w", i, err)
		}
		if p.AvgBuyPrice, err = decimal.NewFromString(row.AvgBuyPrice); err != nil {
			return nil, fmt.Errorf("positions[%d].avg_buy_price: %w", i, err)
		}
		if row.LastPrice != "" {
			last, err := decimal.NewFromString(row.LastPrice)
			if err != nil {
				return nil, fmt.Errorf("positions[%d].last_price: %w", i, err)
			}
			p.LastPrice = &last
		}

		positions = append(positions, p)
	}

	return positions, nil
}

func printSummary(out io.Writer, s *portfolio.Summary, f moneyFormatter) {
	fmt.Fprintf(out, "Invested:      %s\n", f.format(s.TotalInvested))
	fmt.Fprintf(out, "Current value: %s\n", f.format(s.TotalCurrentValue))
	fmt.Fprintf(out, "Profit/loss:   %s\n", f.format(s.TotalProfitLoss))

	if len(s.Allocation) == 0 {
		fmt.Fprintln(out, "\nNo positions held")
		return
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Asset class\tValue\tShare\t")
	for _, item := range s.Allocation {
		fmt.Fprintf(w, "%s\t%s\t%s%%\t\n", item.AssetClass, f.format(item.TotalValue), item.Percentage.StringFixed(2))
	}
	w.Flush()
}
