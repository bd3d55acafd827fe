// Package seed provides the starting portfolio of a session.
package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"PortfolioSentinel/internal/model"

	"gopkg.in/yaml.v3"
)

// DateLayout is the purchase date format used in seed files.
const DateLayout = "2006-01-02"

// File is the YAML layout of a seed file.
type File struct {
	Holdings []HoldingEntry `yaml:"holdings"`
	Alerts   []AlertEntry   `yaml:"alerts"`
}

// HoldingEntry is one position in a seed file.
type HoldingEntry struct {
	Symbol        string  `yaml:"symbol"`
	Name          string  `yaml:"name"`
	Shares        float64 `yaml:"shares"`
	PurchasePrice float64 `yaml:"purchase_price"`
	CurrentPrice  float64 `yaml:"current_price"`
	PurchaseDate  string  `yaml:"purchase_date"`
}

// AlertEntry is one alert in a seed file, tied to a holding by symbol.
type AlertEntry struct {
	Symbol    string  `yaml:"symbol"`
	Kind      string  `yaml:"kind"`
	Threshold float64 `yaml:"threshold"`
	Inactive  bool    `yaml:"inactive"`
}

// Portfolio is a validated seed.
type Portfolio struct {
	Holdings []model.HoldingInput
	Alerts   []AlertEntry
}

// Target receives the seeded holdings and alerts.
type Target interface {
	AddHolding(in model.HoldingInput) model.Holding
	AddAlert(holdingID string, kind model.AlertKind, threshold float64) (model.Alert, error)
	ToggleAlert(id string) (model.Alert, error)
}

// Default returns the demo portfolio.
func Default() *Portfolio {
	return &Portfolio{Holdings: []model.HoldingInput{
		{Symbol: "AAPL", Name: "Apple Inc.", Shares: 50, PurchasePrice: 150.00, CurrentPrice: 175.50, PurchaseDate: date(2024, 1, 15)},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Shares: 25, PurchasePrice: 2800.00, CurrentPrice: 2950.75, PurchaseDate: date(2024, 2, 10)},
		{Symbol: "TSLA", Name: "Tesla Inc.", Shares: 30, PurchasePrice: 220.00, CurrentPrice: 195.25, PurchaseDate: date(2024, 3, 5)},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Shares: 40, PurchasePrice: 320.00, CurrentPrice: 385.40, PurchaseDate: date(2024, 1, 20)},
	}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Load reads a seed file. An empty path yields the default portfolio.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*Portfolio, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	p := &Portfolio{}
	symbols := make(map[string]bool, len(f.Holdings))
	for i, e := range f.Holdings {
		in := model.HoldingInput{
			Symbol:        e.Symbol,
			Name:          e.Name,
			Shares:        e.Shares,
			PurchasePrice: e.PurchasePrice,
			CurrentPrice:  e.CurrentPrice,
		}
		if e.PurchaseDate != "" {
			d, err := time.Parse(DateLayout, e.PurchaseDate)
			if err != nil {
				return nil, fmt.Errorf("holding %d: %w", i+1, model.NewValidationError("purchase_date", err.Error()))
			}
			in.PurchaseDate = d
		}
		in = in.Normalize()
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("holding %d: %w", i+1, err)
		}
		p.Holdings = append(p.Holdings, in)
		symbols[in.Symbol] = true
	}
	for i, a := range f.Alerts {
		a.Symbol = strings.ToUpper(strings.TrimSpace(a.Symbol))
		if !symbols[a.Symbol] {
			return nil, fmt.Errorf("alert %d: %w", i+1, model.NotFound("holding", a.Symbol))
		}
		if _, err := model.ParseAlertKind(a.Kind); err != nil {
			return nil, fmt.Errorf("alert %d: %w", i+1, err)
		}
		p.Alerts = append(p.Alerts, a)
	}
	return p, nil
}

// Apply adds the portfolio to t. Alerts attach to the first holding with
// their symbol and are validated against its current price.
func (p *Portfolio) Apply(t Target) error {
	ids := make(map[string]string, len(p.Holdings))
	for _, in := range p.Holdings {
		h := t.AddHolding(in)
		if _, ok := ids[h.Symbol]; !ok {
			ids[h.Symbol] = h.ID
		}
	}
	for _, e := range p.Alerts {
		kind, err := model.ParseAlertKind(e.Kind)
		if err != nil {
			return err
		}
		a, err := t.AddAlert(ids[e.Symbol], kind, e.Threshold)
		if err != nil {
			return fmt.Errorf("seed alert %s %s %.2f: %w", e.Symbol, kind, e.Threshold, err)
		}
		if e.Inactive {
			if _, err := t.ToggleAlert(a.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
