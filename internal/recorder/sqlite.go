package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"PortfolioSentinel/internal/logging"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the trigger journal and snapshots to SQLite.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: logging.Component(log, "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alert_triggers (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			notification_id TEXT NOT NULL,
			alert_id        TEXT NOT NULL,
			symbol          TEXT NOT NULL,
			kind            TEXT NOT NULL,
			current_price   REAL,
			threshold       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_ts ON alert_triggers(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_triggers_symbol ON alert_triggers(symbol)`,

		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			total_invested    REAL,
			current_value     REAL,
			total_gain_loss   REAL,
			gain_loss_percent REAL,
			holdings          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON portfolio_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS holding_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id       INTEGER NOT NULL REFERENCES portfolio_snapshots(id),
			holding_id        TEXT NOT NULL,
			symbol            TEXT NOT NULL,
			shares            REAL,
			purchase_price    REAL,
			current_price     REAL,
			gain_loss         REAL,
			gain_loss_percent REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_holding_snapshots_sid ON holding_snapshots(snapshot_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTrigger(evt *TriggerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_triggers
		(timestamp, notification_id, alert_id, symbol, kind, current_price, threshold)
		VALUES (?,?,?,?,?,?,?)`,
		evt.FiredAt.Unix(), evt.NotificationID, evt.AlertID, evt.Symbol,
		string(evt.Kind), evt.CurrentPrice, evt.Threshold,
	)
	return err
}

// RecordSnapshot writes the aggregate row and one row per holding in a
// single transaction.
func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.TakenAt
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	m := snap.Metrics
	res, err := tx.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, total_invested, current_value, total_gain_loss, gain_loss_percent, holdings)
		VALUES (?,?,?,?,?,?)`,
		ts.Unix(), m.TotalInvested, m.CurrentValue, m.TotalGainLoss, m.TotalGainLossPercent, len(snap.Holdings),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	sid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for _, hm := range snap.Holdings {
		h := hm.Holding
		if _, err := tx.Exec(`INSERT INTO holding_snapshots
			(snapshot_id, holding_id, symbol, shares, purchase_price, current_price, gain_loss, gain_loss_percent)
			VALUES (?,?,?,?,?,?,?,?)`,
			sid, h.ID, h.Symbol, h.Shares, h.PurchasePrice, h.CurrentPrice, hm.GainLoss, hm.GainLossPercent,
		); err != nil {
			return fmt.Errorf("insert holding snapshot: %w", err)
		}
	}
	return tx.Commit()
}

// TriggerCount returns the number of journalled triggers for symbol, or for
// every symbol when symbol is empty.
func (r *SQLiteRecorder) TriggerCount(symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	var err error
	if symbol == "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM alert_triggers`).Scan(&n)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM alert_triggers WHERE symbol = ?`, symbol).Scan(&n)
	}
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
