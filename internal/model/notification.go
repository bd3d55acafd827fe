package model

import (
	"fmt"
	"time"
)

// Notification is the durable record of one alert firing.
type Notification struct {
	ID           string    `json:"id"`
	AlertID      string    `json:"alert_id"`
	Symbol       string    `json:"symbol"`
	Kind         AlertKind `json:"kind"`
	Message      string    `json:"message"`
	CurrentPrice float64   `json:"current_price"`
	Threshold    float64   `json:"threshold"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
}

// AlertMessage is the one-line description shown for a fired alert.
func AlertMessage(symbol string, kind AlertKind) string {
	verb := "exceeded"
	if kind == AlertLower {
		verb = "dropped below"
	}
	return fmt.Sprintf("%s has %s your %s threshold", symbol, verb, kind)
}
