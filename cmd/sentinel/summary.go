package main

import (
	"fmt"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/holding"
	"PortfolioSentinel/internal/notifier"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var sortBy string
	var desc bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print portfolio metrics and holdings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			field, err := holding.ParseSortField(sortBy)
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			cur := s.cfg.Portfolio.Currency
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, notifier.FormatSummary(s.tracker.Metrics(), cur))
			sorted := holding.Sort(s.tracker.Holdings(), field, desc)
			fmt.Fprintln(out, notifier.FormatHoldings(calculator.PerHolding(sorted), cur))
			fmt.Fprint(out, notifier.FormatAlerts(s.tracker.Alerts(), cur))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "symbol", "sort holdings by symbol|shares|purchase_price|current_price|gain_loss|gain_loss_percent")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}
