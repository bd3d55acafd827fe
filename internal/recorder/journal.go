package recorder

import (
	"PortfolioSentinel/internal/events"

	"github.com/rs/zerolog"
)

// Journal returns a fired-alert handler that records each event.
func Journal(rec Recorder, log zerolog.Logger) events.Handler {
	return func(evt events.AlertFired) {
		if err := rec.RecordTrigger(&TriggerEvent{
			NotificationID: evt.NotificationID,
			AlertID:        evt.AlertID,
			Symbol:         evt.Symbol,
			Kind:           evt.Kind,
			CurrentPrice:   evt.CurrentPrice,
			Threshold:      evt.Threshold,
			FiredAt:        evt.Timestamp,
		}); err != nil {
			log.Error().Err(err).Str("symbol", evt.Symbol).Msg("record trigger")
		}
	}
}
