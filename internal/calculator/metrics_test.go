package calculator

import (
	"math"
	"testing"

	"PortfolioSentinel/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestGainLoss_AppleScenario(t *testing.T) {
	h := model.Holding{Symbol: "AAPL", Shares: 50, PurchasePrice: 150.00, CurrentPrice: 175.50}
	if got := GainLoss(h); got != 1275.00 {
		t.Errorf("expected gain 1275.00, got %.4f", got)
	}
	if got := GainLossPercent(h); !approx(got, 17.0) {
		t.Errorf("expected 17.00%%, got %.4f", got)
	}
}

func TestGainLoss_Loss(t *testing.T) {
	h := model.Holding{Symbol: "TSLA", Shares: 30, PurchasePrice: 220, CurrentPrice: 195.25}
	if got := GainLoss(h); !approx(got, -742.5) {
		t.Errorf("expected -742.5, got %.4f", got)
	}
	if got := GainLossPercent(h); !approx(got, -11.25) {
		t.Errorf("expected -11.25%%, got %.4f", got)
	}
}

func TestGainLossPercent_ZeroBasis(t *testing.T) {
	tests := []model.Holding{
		{Shares: 0, PurchasePrice: 100, CurrentPrice: 120},
		{Shares: 10, PurchasePrice: 0, CurrentPrice: 120},
	}
	for _, h := range tests {
		if got := GainLossPercent(h); got != 0 {
			t.Errorf("%+v: expected 0, got %f", h, got)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	m := Summarize(nil)
	if m != (model.PortfolioMetrics{}) {
		t.Errorf("expected all zeros, got %+v", m)
	}
}

func TestSummarize_Portfolio(t *testing.T) {
	holdings := []model.Holding{
		{Symbol: "AAPL", Shares: 50, PurchasePrice: 150.00, CurrentPrice: 175.50},
		{Symbol: "GOOGL", Shares: 25, PurchasePrice: 2800.00, CurrentPrice: 2950.75},
		{Symbol: "TSLA", Shares: 30, PurchasePrice: 220.00, CurrentPrice: 195.25},
		{Symbol: "MSFT", Shares: 40, PurchasePrice: 320.00, CurrentPrice: 385.40},
	}
	m := Summarize(holdings)

	wantInvested := 50*150.00 + 25*2800.00 + 30*220.00 + 40*320.00
	wantValue := 50*175.50 + 25*2950.75 + 30*195.25 + 40*385.40
	if !approx(m.TotalInvested, wantInvested) {
		t.Errorf("invested: expected %.2f, got %.2f", wantInvested, m.TotalInvested)
	}
	if !approx(m.CurrentValue, wantValue) {
		t.Errorf("value: expected %.2f, got %.2f", wantValue, m.CurrentValue)
	}
	if !approx(m.TotalGainLoss, wantValue-wantInvested) {
		t.Errorf("gain: expected %.2f, got %.2f", wantValue-wantInvested, m.TotalGainLoss)
	}
	wantPct := (wantValue - wantInvested) / wantInvested * 100
	if !approx(m.TotalGainLossPercent, wantPct) {
		t.Errorf("percent: expected %.4f, got %.4f", wantPct, m.TotalGainLossPercent)
	}
}

func TestPerHolding_KeepsOrder(t *testing.T) {
	holdings := []model.Holding{
		{ID: "b", Shares: 1, PurchasePrice: 10, CurrentPrice: 12},
		{ID: "a", Shares: 2, PurchasePrice: 10, CurrentPrice: 8},
	}
	rows := PerHolding(holdings)
	if len(rows) != 2 || rows[0].Holding.ID != "b" || rows[1].Holding.ID != "a" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !approx(rows[0].GainLoss, 2) || !approx(rows[1].GainLoss, -4) {
		t.Errorf("unexpected gains: %+v", rows)
	}
	if !approx(rows[0].GainLossPercent, 20) || !approx(rows[1].GainLossPercent, -20) {
		t.Errorf("unexpected percents: %+v", rows)
	}
}

func TestProperty_GainLossIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("gain equals shares times price change", prop.ForAll(
		func(shares, purchase, current float64) bool {
			h := model.Holding{Shares: shares, PurchasePrice: purchase, CurrentPrice: current}
			return GainLoss(h) == shares*(current-purchase)
		},
		gen.Float64Range(0.001, 1e6),
		gen.Float64Range(0.01, 1e5),
		gen.Float64Range(0.01, 1e5),
	))

	properties.Property("total gain equals value minus invested", prop.ForAll(
		func(shares []float64) bool {
			holdings := make([]model.Holding, len(shares))
			for i, s := range shares {
				holdings[i] = model.Holding{Shares: s, PurchasePrice: 100 + float64(i), CurrentPrice: 90 + 3*float64(i)}
			}
			m := Summarize(holdings)
			return m.TotalGainLoss == m.CurrentValue-m.TotalInvested
		},
		gen.SliceOf(gen.Float64Range(0.1, 1000)),
	))

	properties.TestingRun(t)
}
