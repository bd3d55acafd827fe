// Package tracker owns the stores of one portfolio session and serialises
// every operation on them, including the periodic alert evaluation.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"PortfolioSentinel/internal/alert"
	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/evaluator"
	"PortfolioSentinel/internal/events"
	"PortfolioSentinel/internal/holding"
	"PortfolioSentinel/internal/logging"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/notification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Tracker is the single entry point to the holding, alert and notification
// stores. One mutex stands in for the single logical thread: ticks and user
// operations never interleave.
type Tracker struct {
	mu            sync.Mutex
	holdings      *holding.Store
	alerts        *alert.Store
	notifications *notification.Store
	bus           *events.Bus
	log           zerolog.Logger
	now           func() time.Time
	newID         func() string
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for alert creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = logging.Component(l, "tracker") }
}

// New creates a Tracker with empty stores.
func New(opts ...Option) *Tracker {
	hs := holding.NewStore()
	t := &Tracker{
		holdings:      hs,
		alerts:        alert.NewStore(hs),
		notifications: notification.NewStore(),
		bus:           events.NewBus(),
		log:           zerolog.Nop(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Subscribe registers fn for AlertFired events. Handlers run on the ticking
// goroutine after the tick has released the stores, so they may call back
// into the Tracker.
func (t *Tracker) Subscribe(fn events.Handler) (unsubscribe func()) {
	return t.bus.Subscribe(fn)
}

// Tick evaluates every eligible alert against the current holdings, latches
// and records the ones that fire, then publishes one event per firing.
func (t *Tracker) Tick(now time.Time) []events.AlertFired {
	fired := t.evaluate(now)
	for _, evt := range fired {
		t.log.Info().
			Str("symbol", evt.Symbol).
			Str("kind", string(evt.Kind)).
			Float64("price", evt.CurrentPrice).
			Float64("threshold", evt.Threshold).
			Msg("alert triggered")
		t.bus.Publish(evt)
	}
	return fired
}

func (t *Tracker) evaluate(now time.Time) []events.AlertFired {
	t.mu.Lock()
	defer t.mu.Unlock()

	firings := evaluator.Evaluate(t.holdings.List(), t.alerts.List())
	if len(firings) == 0 {
		return nil
	}

	fired := make([]events.AlertFired, 0, len(firings))
	for _, f := range firings {
		if _, err := t.alerts.MarkTriggered(f.Alert.ID, now); err != nil {
			t.log.Warn().Err(err).Msg("mark triggered")
			continue
		}
		n := model.Notification{
			ID:           t.newID(),
			AlertID:      f.Alert.ID,
			Symbol:       f.Holding.Symbol,
			Kind:         f.Alert.Kind,
			Message:      model.AlertMessage(f.Holding.Symbol, f.Alert.Kind),
			CurrentPrice: f.Holding.CurrentPrice,
			Threshold:    f.Alert.Threshold,
			Timestamp:    now,
		}
		t.notifications.Append(n)
		fired = append(fired, events.AlertFired{
			NotificationID: n.ID,
			AlertID:        n.AlertID,
			Symbol:         n.Symbol,
			Kind:           n.Kind,
			CurrentPrice:   n.CurrentPrice,
			Threshold:      n.Threshold,
			Timestamp:      n.Timestamp,
		})
	}
	return fired
}

// AddHolding stores a new holding. Input validation is the caller's job.
func (t *Tracker) AddHolding(in model.HoldingInput) model.Holding {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.holdings.Add(in)
	t.log.Debug().Str("id", h.ID).Str("symbol", h.Symbol).Msg("holding added")
	return h
}

// UpdateHolding replaces a holding's fields. Existing alerts are not
// re-validated against the new current price.
func (t *Tracker) UpdateHolding(id string, in model.HoldingInput) (model.Holding, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holdings.Update(id, in)
}

// SetCurrentPrice updates only the current price of a holding.
func (t *Tracker) SetCurrentPrice(id string, price float64) (model.Holding, error) {
	if !model.Positive(price) {
		return model.Holding{}, model.NewValidationError("current_price", "current price must be greater than 0")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holdings.SetCurrentPrice(id, price)
}

// RemoveHolding deletes a holding together with all of its alerts.
// Notifications already raised by those alerts are kept.
func (t *Tracker) RemoveHolding(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.holdings.Get(id); err != nil {
		return err
	}
	n := t.alerts.RemoveByHolding(id)
	if err := t.holdings.Remove(id); err != nil {
		return fmt.Errorf("remove holding: %w", err)
	}
	t.log.Debug().Str("id", id).Int("alerts_removed", n).Msg("holding removed")
	return nil
}

// Holding returns one holding.
func (t *Tracker) Holding(id string) (model.Holding, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holdings.Get(id)
}

// Holdings returns every holding in insertion order.
func (t *Tracker) Holdings() []model.Holding {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.holdings.List()
}

// AddAlert creates an alert on a holding, validating the threshold against
// the holding's current price.
func (t *Tracker) AddAlert(holdingID string, kind model.AlertKind, threshold float64) (model.Alert, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, err := t.alerts.Add(holdingID, kind, threshold, t.now())
	if err != nil {
		return model.Alert{}, err
	}
	t.log.Debug().Str("id", a.ID).Str("symbol", a.Symbol).Str("kind", string(kind)).Float64("threshold", threshold).Msg("alert added")
	return a, nil
}

// ToggleAlert flips an alert's active flag.
func (t *Tracker) ToggleAlert(id string) (model.Alert, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alerts.ToggleActive(id)
}

// RemoveAlert deletes an alert. Its notifications are kept.
func (t *Tracker) RemoveAlert(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alerts.Remove(id)
}

// Alerts returns every alert in insertion order.
func (t *Tracker) Alerts() []model.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alerts.List()
}

// ActiveAlerts returns the active alerts, triggered or not.
func (t *Tracker) ActiveAlerts() []model.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alerts.ListActive()
}

// AlertsFor returns the alerts of one holding.
func (t *Tracker) AlertsFor(holdingID string) []model.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alerts.ListByHolding(holdingID)
}

// Notifications returns the inbox newest first.
func (t *Tracker) Notifications() []model.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications.List()
}

// MarkRead marks one notification as read.
func (t *Tracker) MarkRead(id string) (model.Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications.MarkRead(id)
}

// MarkAllRead marks every notification as read.
func (t *Tracker) MarkAllRead() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications.MarkAllRead()
}

// RemoveNotification deletes one notification.
func (t *Tracker) RemoveNotification(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications.Remove(id)
}

// UnreadCount counts unread notifications.
func (t *Tracker) UnreadCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications.UnreadCount()
}

// Metrics summarises the current holdings.
func (t *Tracker) Metrics() model.PortfolioMetrics {
	return calculator.Summarize(t.Holdings())
}

// HoldingMetrics returns per-holding gain/loss in insertion order.
func (t *Tracker) HoldingMetrics() []model.HoldingMetrics {
	return calculator.PerHolding(t.Holdings())
}
