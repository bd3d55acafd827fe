package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validInput() HoldingInput {
	return HoldingInput{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Shares:        50,
		PurchasePrice: 150,
		CurrentPrice:  175.5,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestHoldingInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HoldingInput)
		field  string
	}{
		{"valid", func(*HoldingInput) {}, ""},
		{"blank symbol", func(in *HoldingInput) { in.Symbol = "  " }, "symbol"},
		{"blank name", func(in *HoldingInput) { in.Name = "" }, "name"},
		{"zero shares", func(in *HoldingInput) { in.Shares = 0 }, "shares"},
		{"negative purchase price", func(in *HoldingInput) { in.PurchasePrice = -1 }, "purchase_price"},
		{"zero current price", func(in *HoldingInput) { in.CurrentPrice = 0 }, "current_price"},
		{"missing date", func(in *HoldingInput) { in.PurchaseDate = time.Time{} }, "purchase_date"},
		{"NaN shares", func(in *HoldingInput) { in.Shares = math.NaN() }, "shares"},
		{"infinite shares", func(in *HoldingInput) { in.Shares = math.Inf(1) }, "shares"},
		{"NaN purchase price", func(in *HoldingInput) { in.PurchasePrice = math.NaN() }, "purchase_price"},
		{"negative infinite current price", func(in *HoldingInput) { in.CurrentPrice = math.Inf(-1) }, "current_price"},
		{"NaN current price", func(in *HoldingInput) { in.CurrentPrice = math.NaN() }, "current_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("expected errors.Is(err, ErrValidation)")
			}
		})
	}
}

func TestHoldingInput_Normalize(t *testing.T) {
	in := HoldingInput{Symbol: " msft ", Name: " Microsoft Corporation "}.Normalize()
	if in.Symbol != "MSFT" || in.Name != "Microsoft Corporation" {
		t.Errorf("got %q / %q", in.Symbol, in.Name)
	}
}

func TestParseAlertKind(t *testing.T) {
	tests := []struct {
		in   string
		want AlertKind
		ok   bool
	}{
		{"upper", AlertUpper, true},
		{"UPPER", AlertUpper, true},
		{"above", AlertUpper, true},
		{"lower", AlertLower, true},
		{" below ", AlertLower, true},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		got, err := ParseAlertKind(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlertMessage(t *testing.T) {
	if got := AlertMessage("AAPL", AlertUpper); got != "AAPL has exceeded your upper threshold" {
		t.Errorf("upper: %q", got)
	}
	if got := AlertMessage("TSLA", AlertLower); got != "TSLA has dropped below your lower threshold" {
		t.Errorf("lower: %q", got)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("holding", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("not-found must not match ErrValidation")
	}
}
