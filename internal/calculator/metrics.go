package calculator

import "PortfolioSentinel/internal/model"

// GainLoss returns the unrealised gain or loss of a single holding.
func GainLoss(h model.Holding) float64 {
	return h.Shares * (h.CurrentPrice - h.PurchasePrice)
}

// GainLossPercent returns GainLoss relative to the cost basis, in percent.
// A zero cost basis yields 0.
func GainLossPercent(h model.Holding) float64 {
	basis := h.Shares * h.PurchasePrice
	if basis == 0 {
		return 0
	}
	return GainLoss(h) / basis * 100
}

// PerHolding computes the gain/loss figures of every holding, keeping order.
func PerHolding(holdings []model.Holding) []model.HoldingMetrics {
	out := make([]model.HoldingMetrics, len(holdings))
	for i, h := range holdings {
		out[i] = model.HoldingMetrics{
			Holding:         h,
			GainLoss:        GainLoss(h),
			GainLossPercent: GainLossPercent(h),
		}
	}
	return out
}

// Summarize computes the aggregate metrics of a portfolio snapshot.
// An empty portfolio yields all zeros.
func Summarize(holdings []model.Holding) model.PortfolioMetrics {
	var m model.PortfolioMetrics
	for _, h := range holdings {
		m.TotalInvested += h.Shares * h.PurchasePrice
		m.CurrentValue += h.Shares * h.CurrentPrice
	}
	m.TotalGainLoss = m.CurrentValue - m.TotalInvested
	if m.TotalInvested > 0 {
		m.TotalGainLossPercent = m.TotalGainLoss / m.TotalInvested * 100
	}
	return m
}
