package model

// PortfolioMetrics holds the aggregate gain/loss figures.
type PortfolioMetrics struct {
	TotalInvested        float64 `json:"total_invested"`
	CurrentValue         float64 `json:"current_value"`
	TotalGainLoss        float64 `json:"total_gain_loss"`
	TotalGainLossPercent float64 `json:"total_gain_loss_percent"`
}

// HoldingMetrics holds the per-position gain/loss figures.
type HoldingMetrics struct {
	Holding         Holding `json:"holding"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}
