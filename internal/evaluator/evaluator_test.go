package evaluator

import (
	"testing"
	"time"

	"PortfolioSentinel/internal/model"
)

func triggeredAt(t time.Time) *time.Time { return &t }

func TestConditionMet(t *testing.T) {
	tests := []struct {
		kind      model.AlertKind
		price     float64
		threshold float64
		want      bool
	}{
		{model.AlertUpper, 180, 180, true},
		{model.AlertUpper, 181, 180, true},
		{model.AlertUpper, 179.99, 180, false},
		{model.AlertLower, 170, 170, true},
		{model.AlertLower, 169, 170, true},
		{model.AlertLower, 170.01, 170, false},
		{model.AlertKind("bogus"), 100, 100, false},
	}
	for _, tt := range tests {
		if got := ConditionMet(tt.kind, tt.price, tt.threshold); got != tt.want {
			t.Errorf("%s price=%.2f threshold=%.2f: expected %v, got %v", tt.kind, tt.price, tt.threshold, tt.want, got)
		}
	}
}

func TestEvaluate_SelectsEligibleCrossings(t *testing.T) {
	holdings := []model.Holding{
		{ID: "h1", Symbol: "AAPL", CurrentPrice: 181},
		{ID: "h2", Symbol: "TSLA", CurrentPrice: 189},
	}
	alerts := []model.Alert{
		{ID: "a1", HoldingID: "h1", Kind: model.AlertUpper, Threshold: 180, Active: true},
		// not reached
		{ID: "a2", HoldingID: "h1", Kind: model.AlertUpper, Threshold: 190, Active: true},
		// inactive
		{ID: "a3", HoldingID: "h2", Kind: model.AlertLower, Threshold: 190, Active: false},
		// latched
		{ID: "a4", HoldingID: "h2", Kind: model.AlertLower, Threshold: 190, Active: true, TriggeredAt: triggeredAt(time.Now())},
		// holding deleted
		{ID: "a5", HoldingID: "gone", Kind: model.AlertUpper, Threshold: 1, Active: true},
		{ID: "a6", HoldingID: "h2", Kind: model.AlertLower, Threshold: 190, Active: true},
	}

	firings := Evaluate(holdings, alerts)
	if len(firings) != 2 {
		t.Fatalf("expected 2 firings, got %d: %+v", len(firings), firings)
	}
	if firings[0].Alert.ID != "a1" || firings[0].Holding.Symbol != "AAPL" {
		t.Errorf("first firing: %+v", firings[0])
	}
	if firings[1].Alert.ID != "a6" || firings[1].Holding.Symbol != "TSLA" {
		t.Errorf("second firing: %+v", firings[1])
	}
}

func TestEvaluate_Empty(t *testing.T) {
	if got := Evaluate(nil, nil); len(got) != 0 {
		t.Errorf("expected no firings, got %+v", got)
	}
	holdings := []model.Holding{{ID: "h1", CurrentPrice: 100}}
	if got := Evaluate(holdings, nil); len(got) != 0 {
		t.Errorf("expected no firings, got %+v", got)
	}
}

func TestEvaluate_UsesSnapshotPrice(t *testing.T) {
	holdings := []model.Holding{{ID: "h1", Symbol: "MSFT", CurrentPrice: 300}}
	alerts := []model.Alert{{ID: "a1", HoldingID: "h1", Symbol: "MSFT-OLD", Kind: model.AlertLower, Threshold: 310, Active: true}}

	firings := Evaluate(holdings, alerts)
	if len(firings) != 1 {
		t.Fatalf("expected 1 firing, got %d", len(firings))
	}
	if firings[0].Holding.CurrentPrice != 300 {
		t.Errorf("expected snapshot price 300, got %.2f", firings[0].Holding.CurrentPrice)
	}
	if firings[0].Alert.Symbol != "MSFT-OLD" {
		t.Errorf("alert must be passed through unchanged, got %q", firings[0].Alert.Symbol)
	}
}
