package model

import (
	"fmt"
	"strings"
	"time"
)

// AlertKind is the side of the threshold an alert watches.
type AlertKind string

const (
	AlertUpper AlertKind = "upper"
	AlertLower AlertKind = "lower"
)

// ParseAlertKind accepts "upper"/"lower" in any case, plus "above"/"below".
func ParseAlertKind(s string) (AlertKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper", "above":
		return AlertUpper, nil
	case "lower", "below":
		return AlertLower, nil
	}
	return "", NewValidationError("kind", fmt.Sprintf("unknown alert kind %q", s))
}

// Valid reports whether k is one of the known kinds.
func (k AlertKind) Valid() bool {
	return k == AlertUpper || k == AlertLower
}

// Alert is a price threshold tied to a holding.
type Alert struct {
	ID          string     `json:"id"`
	HoldingID   string     `json:"holding_id"`
	Symbol      string     `json:"symbol"` // captured at creation
	Kind        AlertKind  `json:"kind"`
	Threshold   float64    `json:"threshold"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	TriggeredAt *time.Time `json:"triggered_at,omitempty"`
}

// Triggered reports whether the alert has latched.
func (a Alert) Triggered() bool { return a.TriggeredAt != nil }

// Eligible reports whether the evaluator should still consider the alert.
func (a Alert) Eligible() bool { return a.Active && a.TriggeredAt == nil }
