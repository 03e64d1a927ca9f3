package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/wealthtrack-backend/internal/usecase/projection"
)

type simulateFlags struct {
	target     string
	current    string
	monthly    string
	annual     string
	years      int
	targetDate string
	interval   int
}

func simulateCmd() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a savings goal month by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newMoneyFormatter(currency)
			if err != nil {
				return err
			}

			now := time.Now()
			params, err := flags.params(now)
			if err != nil {
				return err
			}

			result, err := projection.Simulate(params, now)
			if err != nil {
				return err
			}

			printProjection(cmd.OutOrStdout(), params, result, f)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.target, "target", "", "target amount (required)")
	cmd.Flags().StringVar(&flags.current, "current", "0", "amount already saved")
	cmd.Flags().StringVar(&flags.monthly, "monthly", "0", "monthly contribution")
	cmd.Flags().StringVar(&flags.annual, "return", "7", "expected annual return in percent")
	cmd.Flags().IntVar(&flags.years, "years", 0, "time horizon in years")
	cmd.Flags().StringVar(&flags.targetDate, "target-date", "", "target date (YYYY-MM-DD), alternative to --years")
	cmd.Flags().IntVar(&flags.interval, "interval", 12, "months between projection points")
	_ = cmd.MarkFlagRequired("target")
	cmd.MarkFlagsMutuallyExclusive("years", "target-date")

	return cmd
}

func (f simulateFlags) params(now time.Time) (projection.Params, error) {
	var params projection.Params
	var err error

	if params.TargetAmount, err = decimal.NewFromString(f.target); err != nil {
		return params, fmt.Errorf("--target: %w", err)
	}
	if params.CurrentAmount, err = decimal.NewFromString(f.current); err != nil {
		return params, fmt.Errorf("--current: %w", err)
	}
	if params.MonthlyContribution, err = decimal.NewFromString(f.monthly); err != nil {
		return params, fmt.Errorf("--monthly: %w", err)
	}
	if params.AnnualReturnPercent, err = decimal.NewFromString(f.annual); err != nil {
		return params, fmt.Errorf("--return: %w", err)
	}

	switch {
	case f.targetDate != "":
		date, err := time.Parse("2006-01-02", f.targetDate)
		if err != nil {
			return params, fmt.Errorf("--target-date: %w", err)
		}
		params.TimeHorizonYears = projection.HorizonYears(now, date)
	case f.years != 0:
		params.TimeHorizonYears = f.years
	default:
		return params, errors.New("one of --years or --target-date is required")
	}

	params.SampleEveryMonths = f.interval
	return params, nil
}

func printProjection(out io.Writer, params projection.Params, r *projection.Result, f moneyFormatter) {
	label := "Period"
	if params.SampleEveryMonths == 0 || params.SampleEveryMonths == 12 {
		label = "Year"
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\tProjected\tTarget\t\n", label)
	for _, point := range r.Series {
		fmt.Fprintf(w, "%d\t%s\t%s\t\n", point.PeriodIndex, f.format(point.ProjectedValue), f.format(point.TargetValue))
	}
	w.Flush()

	fmt.Fprintf(out, "\nFinal value: %s\n", f.format(r.FinalValue))
	if r.Completion.Reached {
		fmt.Fprintf(out, "Goal reached after %d months, on %s\n", r.Completion.Month, r.Completion)
		return
	}
	fmt.Fprintf(out, "Goal %s (%d years)\n", r.Completion, params.TimeHorizonYears)
}
