package notifier

import (
	"PortfolioSentinel/internal/events"
	"PortfolioSentinel/internal/logging"

	"github.com/rs/zerolog"
)

// ConsoleToast logs fired alerts as toast lines.
func ConsoleToast(log zerolog.Logger) events.Handler {
	log = logging.Component(log, "toast")
	return func(evt events.AlertFired) {
		log.Info().
			Str("symbol", evt.Symbol).
			Str("kind", string(evt.Kind)).
			Float64("price", evt.CurrentPrice).
			Float64("threshold", evt.Threshold).
			Msg("Price Alert Triggered!")
	}
}
