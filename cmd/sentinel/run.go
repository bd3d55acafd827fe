package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/notifier"
	"PortfolioSentinel/internal/recorder"
	"PortfolioSentinel/internal/scheduler"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate alerts on a schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			return run(s, runOnStart || os.Getenv("RUN_ON_START") == "true")
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "evaluate alerts once before the first scheduled tick")
	return cmd
}

func run(s *session, runOnStart bool) error {
	cfg, log, tr := s.cfg, s.log, s.tracker
	log.Info().Msg("PortfolioSentinel starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Toast sinks
	tr.Subscribe(notifier.ConsoleToast(log))

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}
	defer rec.Close()
	tr.Subscribe(recorder.Journal(rec, log))

	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		tr.Subscribe(tn.Toast(ctx, cfg.Portfolio.Currency))
		cmds := notifier.NewCommands(tr, cfg.Portfolio.Currency)
		go tn.StartPolling(ctx, cmds.Handle)
		log.Info().Msg("telegram polling started")
	}

	var col *collector.Collector
	if cfg.Simulation.Enabled {
		fetcher := collector.NewRandomWalkFetcher(cfg.Simulation.Volatility, cfg.Simulation.Seed)
		col = collector.NewCollector(fetcher, tr, log)
		log.Info().Str("source", fetcher.Name()).Float64("volatility", cfg.Simulation.Volatility).Msg("price simulation enabled")
	}

	snapshotCron := ""
	if cfg.Database.SQLitePath != "" {
		snapshotCron = cfg.Database.SnapshotCron
	}
	sched := scheduler.NewScheduler(tr, col, rec, log)
	if err := sched.RegisterAll(cfg.Evaluation.Cron, cfg.Simulation.Cron, snapshotCron); err != nil {
		return err
	}
	if runOnStart {
		log.Info().Int("fired", sched.RunTickNow()).Msg("initial evaluation done")
	}
	sched.Start()

	log.Info().Msg("PortfolioSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err != nil {
		log.Warn().Err(err).Msg("scheduler did not stop cleanly")
	}
	if tn != nil {
		if err := tn.Wait(stopCtx); err != nil {
			log.Warn().Err(err).Msg("pending toasts dropped")
		}
	}
	cancel()
	log.Info().Int("unread", tr.UnreadCount()).Msg("PortfolioSentinel stopped")
	return nil
}
