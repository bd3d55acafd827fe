package evaluator

import "PortfolioSentinel/internal/model"

// Firing is an alert whose condition held during a tick, together with the
// holding snapshot it was evaluated against.
type Firing struct {
	Alert   model.Alert
	Holding model.Holding
}

// ConditionMet reports whether price has reached threshold on the alert's side.
func ConditionMet(kind model.AlertKind, price, threshold float64) bool {
	switch kind {
	case model.AlertUpper:
		return price >= threshold
	case model.AlertLower:
		return price <= threshold
	}
	return false
}

// Evaluate decides which alerts fire against a snapshot of holdings.
// Only active, untriggered alerts are considered; alerts whose holding is
// missing are skipped. Firings come back in alert order.
func Evaluate(holdings []model.Holding, alerts []model.Alert) []Firing {
	byID := make(map[string]model.Holding, len(holdings))
	for _, h := range holdings {
		byID[h.ID] = h
	}

	var firings []Firing
	for _, a := range alerts {
		if !a.Eligible() {
			continue
		}
		h, ok := byID[a.HoldingID]
		if !ok {
			continue
		}
		if ConditionMet(a.Kind, h.CurrentPrice, a.Threshold) {
			firings = append(firings, Firing{Alert: a, Holding: h})
		}
	}
	return firings
}
