package scheduler

import (
	"context"
	"fmt"
	"time"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/logging"
	"PortfolioSentinel/internal/recorder"
	"PortfolioSentinel/internal/tracker"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages the periodic jobs of a session.
type Scheduler struct {
	Cron      *cron.Cron
	Tracker   *tracker.Tracker
	Collector *collector.Collector // nil disables price simulation
	Recorder  recorder.Recorder
	Now       func() time.Time
	log       zerolog.Logger
}

// NewScheduler creates a new Scheduler. Every job is wrapped so that a run
// still in progress makes the next one skip rather than overlap.
func NewScheduler(tr *tracker.Tracker, col *collector.Collector, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	log = logging.Component(log, "scheduler")
	return &Scheduler{
		Cron: cron.New(
			cron.WithParser(config.CronParser),
			cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
		),
		Tracker:   tr,
		Collector: col,
		Recorder:  rec,
		Now:       time.Now,
		log:       log,
	}
}

// RegisterAll registers the evaluation tick, the price simulation (when a
// collector is set) and the metrics snapshot (when snapshotCron is set).
func (s *Scheduler) RegisterAll(evalCron, simCron, snapshotCron string) error {
	if _, err := s.Cron.AddFunc(evalCron, s.tick); err != nil {
		return fmt.Errorf("register evaluation tick: %w", err)
	}
	if s.Collector != nil {
		if _, err := s.Cron.AddFunc(simCron, s.refreshPrices); err != nil {
			return fmt.Errorf("register price simulation: %w", err)
		}
	}
	if snapshotCron != "" {
		if _, err := s.Cron.AddFunc(snapshotCron, s.snapshot); err != nil {
			return fmt.Errorf("register metrics snapshot: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops scheduling new runs and waits for a running job to finish,
// or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.Cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}

// RunTickNow runs one evaluation tick immediately.
func (s *Scheduler) RunTickNow() int {
	return len(s.Tracker.Tick(s.Now()))
}

func (s *Scheduler) tick() {
	fired := s.Tracker.Tick(s.Now())
	s.log.Debug().Int("fired", len(fired)).Msg("evaluation tick")
}

func (s *Scheduler) refreshPrices() {
	s.Collector.Refresh()
}

func (s *Scheduler) snapshot() {
	holdings := s.Tracker.Holdings()
	snap := &recorder.Snapshot{
		TakenAt:  s.Now(),
		Metrics:  calculator.Summarize(holdings),
		Holdings: calculator.PerHolding(holdings),
	}
	if err := s.Recorder.RecordSnapshot(snap); err != nil {
		s.log.Error().Err(err).Msg("record snapshot")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
