package main

import (
	"fmt"
	"os"

	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/logging"
	"PortfolioSentinel/internal/seed"
	"PortfolioSentinel/internal/tracker"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:           "sentinel",
		Short:         "Portfolio tracker with price-threshold alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "config file")

	root.AddCommand(newRunCmd(), newSummaryCmd(), newCheckCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session is what every command starts from.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	tracker *tracker.Tracker
}

func openSession() (*session, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	log := logging.New(cfg.Log)

	p, err := seed.Load(cfg.Portfolio.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	tr := tracker.New(tracker.WithLogger(log))
	if err := p.Apply(tr); err != nil {
		return nil, fmt.Errorf("apply portfolio: %w", err)
	}
	log.Info().Int("holdings", len(p.Holdings)).Int("alerts", len(p.Alerts)).Msg("portfolio loaded")
	return &session{cfg: cfg, log: log, tracker: tr}, nil
}
