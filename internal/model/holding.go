package model

import (
	"math"
	"strings"
	"time"
)

// Holding is a tracked stock position.
type Holding struct {
	ID            string    `json:"id" yaml:"id"`
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Name          string    `json:"name" yaml:"name"`
	Shares        float64   `json:"shares" yaml:"shares"`
	PurchasePrice float64   `json:"purchase_price" yaml:"purchase_price"`
	CurrentPrice  float64   `json:"current_price" yaml:"current_price"`
	PurchaseDate  time.Time `json:"purchase_date" yaml:"purchase_date"`
}

// HoldingInput carries every editable field of a Holding.
type HoldingInput struct {
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Name          string    `json:"name" yaml:"name"`
	Shares        float64   `json:"shares" yaml:"shares"`
	PurchasePrice float64   `json:"purchase_price" yaml:"purchase_price"`
	CurrentPrice  float64   `json:"current_price" yaml:"current_price"`
	PurchaseDate  time.Time `json:"purchase_date" yaml:"purchase_date"`
}

// Input returns the editable fields of h.
func (h Holding) Input() HoldingInput {
	return HoldingInput{
		Symbol:        h.Symbol,
		Name:          h.Name,
		Shares:        h.Shares,
		PurchasePrice: h.PurchasePrice,
		CurrentPrice:  h.CurrentPrice,
		PurchaseDate:  h.PurchaseDate,
	}
}

// CostBasis is shares times purchase price.
func (h Holding) CostBasis() float64 { return h.Shares * h.PurchasePrice }

// MarketValue is shares times current price.
func (h Holding) MarketValue() float64 { return h.Shares * h.CurrentPrice }

// Positive reports whether v is a finite number greater than zero. NaN fails.
func Positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Normalize upper-cases the symbol and trims the text fields.
func (in HoldingInput) Normalize() HoldingInput {
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate applies the add/edit form rules. The stores never call it.
func (in HoldingInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Symbol) == "":
		return NewValidationError("symbol", "stock symbol is required")
	case strings.TrimSpace(in.Name) == "":
		return NewValidationError("name", "company name is required")
	case !Positive(in.Shares):
		return NewValidationError("shares", "shares must be greater than 0")
	case !Positive(in.PurchasePrice):
		return NewValidationError("purchase_price", "purchase price must be greater than 0")
	case !Positive(in.CurrentPrice):
		return NewValidationError("current_price", "current price must be greater than 0")
	case in.PurchaseDate.IsZero():
		return NewValidationError("purchase_date", "purchase date is required")
	}
	return nil
}
