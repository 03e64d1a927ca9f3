// wealthctl - offline portfolio aggregation and goal projection
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var currency string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wealthctl",
		Short: "Aggregate positions and project savings goals",
		Long: `wealthctl runs the portfolio aggregator and the goal projection
simulator against local input, without a database or server.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&currency, "currency", "c", "USD", "ISO 4217 currency used to format amounts")

	cmd.AddCommand(aggregateCmd())
	cmd.AddCommand(simulateCmd())
	return cmd
}
