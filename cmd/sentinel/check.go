package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"PortfolioSentinel/internal/notifier"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var prices []string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one evaluation tick against the seeded portfolio",
		Long: "Run one evaluation tick against the seeded portfolio, optionally\n" +
			"overriding current prices first, and print the resulting notifications.",
		Example: "  sentinel check --price AAPL=180 --price TSLA=190.5",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			if err := applyPrices(s, prices); err != nil {
				return err
			}
			now := time.Now()
			cur := s.cfg.Portfolio.Currency
			out := cmd.OutOrStdout()
			for _, evt := range s.tracker.Tick(now) {
				fmt.Fprintln(out, notifier.FormatToast(evt, cur))
			}
			fmt.Fprint(out, notifier.FormatNotifications(s.tracker.Notifications(), s.tracker.UnreadCount(), now, cur))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&prices, "price", nil, "override a current price as SYMBOL=PRICE (repeatable)")
	return cmd
}

func applyPrices(s *session, overrides []string) error {
	for _, o := range overrides {
		sym, val, ok := strings.Cut(o, "=")
		if !ok {
			return fmt.Errorf("invalid --price %q, want SYMBOL=PRICE", o)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("invalid --price %q: %w", o, err)
		}
		sym = strings.ToUpper(strings.TrimSpace(sym))
		found := false
		for _, h := range s.tracker.Holdings() {
			if h.Symbol != sym {
				continue
			}
			if _, err := s.tracker.SetCurrentPrice(h.ID, price); err != nil {
				return err
			}
			found = true
		}
		if !found {
			return fmt.Errorf("no holding with symbol %s", sym)
		}
	}
	return nil
}
