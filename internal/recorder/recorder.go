package recorder

import (
	"time"

	"PortfolioSentinel/internal/model"
)

// TriggerEvent is one alert firing as written to the journal.
type TriggerEvent struct {
	NotificationID string
	AlertID        string
	Symbol         string
	Kind           model.AlertKind
	CurrentPrice   float64
	Threshold      float64
	FiredAt        time.Time
}

// Snapshot captures the portfolio metrics at a point in time.
type Snapshot struct {
	TakenAt  time.Time
	Metrics  model.PortfolioMetrics
	Holdings []model.HoldingMetrics
}

// Recorder keeps a write-only history of triggers and metric snapshots.
// The stores are never rebuilt from it.
type Recorder interface {
	RecordTrigger(evt *TriggerEvent) error
	RecordSnapshot(snap *Snapshot) error
	Close() error
}
