package holding

import (
	"fmt"
	"slices"
	"strings"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/model"
)

// SortField names a column of the holdings table.
type SortField string

const (
	SortSymbol          SortField = "symbol"
	SortShares          SortField = "shares"
	SortPurchasePrice   SortField = "purchase_price"
	SortCurrentPrice    SortField = "current_price"
	SortGainLoss        SortField = "gain_loss"
	SortGainLossPercent SortField = "gain_loss_percent"
)

// ParseSortField maps a column name to a SortField.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case SortSymbol, SortShares, SortPurchasePrice, SortCurrentPrice, SortGainLoss, SortGainLossPercent:
		return f, nil
	case "":
		return SortSymbol, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Sort returns a sorted copy of holdings. Equal keys keep their input order.
func Sort(holdings []model.Holding, field SortField, desc bool) []model.Holding {
	out := slices.Clone(holdings)
	slices.SortStableFunc(out, func(a, b model.Holding) int {
		c := compare(a, b, field)
		if desc {
			return -c
		}
		return c
	})
	return out
}

func compare(a, b model.Holding, field SortField) int {
	switch field {
	case SortShares:
		return cmpFloat(a.Shares, b.Shares)
	case SortPurchasePrice:
		return cmpFloat(a.PurchasePrice, b.PurchasePrice)
	case SortCurrentPrice:
		return cmpFloat(a.CurrentPrice, b.CurrentPrice)
	case SortGainLoss:
		return cmpFloat(calculator.GainLoss(a), calculator.GainLoss(b))
	case SortGainLossPercent:
		return cmpFloat(calculator.GainLossPercent(a), calculator.GainLossPercent(b))
	default:
		return strings.Compare(a.Symbol, b.Symbol)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
