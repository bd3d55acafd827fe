package notifier

import (
	"fmt"
	"strings"
	"time"

	"PortfolioSentinel/internal/events"
	"PortfolioSentinel/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// shortIDLen is how many id characters the text views show.
const shortIDLen = 8

// dateLayout is used for purchase dates in and out of chat commands.
const dateLayout = "2006-01-02"

// FormatMoney renders an amount in the given ISO currency, e.g. "$1,275.00".
func FormatMoney(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currency).Display()
}

// FormatPercent renders a signed percentage with two decimals, e.g. "+17.00%".
func FormatPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedMoney prefixes gains with "+".
func FormatSignedMoney(amount float64, currency string) string {
	if amount > 0 {
		return "+" + FormatMoney(amount, currency)
	}
	return FormatMoney(amount, currency)
}

// UnreadBadge renders the bell counter: empty for zero, "9+" above nine.
func UnreadBadge(unread int) string {
	switch {
	case unread <= 0:
		return ""
	case unread > 9:
		return "9+"
	}
	return fmt.Sprintf("%d", unread)
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// FormatToast formats the transient message for a fired alert.
func FormatToast(evt events.AlertFired, currency string) string {
	return fmt.Sprintf("🔔 Price Alert Triggered!\n%s is now %s (%s threshold: %s)",
		evt.Symbol, FormatMoney(evt.CurrentPrice, currency), evt.Kind, FormatMoney(evt.Threshold, currency))
}

// FormatNotifications formats the inbox, newest first as given.
func FormatNotifications(list []model.Notification, unread int, now time.Time, currency string) string {
	var b strings.Builder
	b.WriteString("🔔 Notifications")
	if badge := UnreadBadge(unread); badge != "" {
		b.WriteString(fmt.Sprintf(" (%s unread)", badge))
	}
	b.WriteString("\n\n")
	if len(list) == 0 {
		b.WriteString("No notifications yet.\n")
		return b.String()
	}
	for _, n := range list {
		marker := "○"
		if !n.Read {
			marker = "●"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", marker, ShortID(n.ID), n.Message))
		b.WriteString(fmt.Sprintf("   price %s | threshold %s | %s\n",
			FormatMoney(n.CurrentPrice, currency), FormatMoney(n.Threshold, currency),
			humanize.RelTime(n.Timestamp, now, "ago", "from now")))
	}
	return b.String()
}

// FormatHoldings formats the holdings table.
func FormatHoldings(rows []model.HoldingMetrics, currency string) string {
	var b strings.Builder
	b.WriteString("📈 Holdings\n\n")
	if len(rows) == 0 {
		b.WriteString("No holdings.\n")
		return b.String()
	}
	for _, r := range rows {
		h := r.Holding
		b.WriteString(fmt.Sprintf("%-6s %s\n", h.Symbol, h.Name))
		b.WriteString(fmt.Sprintf("   %s shares | bought %s on %s | now %s\n",
			humanize.Commaf(h.Shares), FormatMoney(h.PurchasePrice, currency),
			h.PurchaseDate.Format(dateLayout), FormatMoney(h.CurrentPrice, currency)))
		b.WriteString(fmt.Sprintf("   gain/loss %s (%s)\n",
			FormatSignedMoney(r.GainLoss, currency), FormatPercent(r.GainLossPercent)))
	}
	return b.String()
}

// FormatSummary formats the aggregate portfolio metrics.
func FormatSummary(m model.PortfolioMetrics, currency string) string {
	var b strings.Builder
	b.WriteString("📊 Portfolio Summary\n\n")
	b.WriteString(fmt.Sprintf("Total invested: %s\n", FormatMoney(m.TotalInvested, currency)))
	b.WriteString(fmt.Sprintf("Current value:  %s\n", FormatMoney(m.CurrentValue, currency)))
	b.WriteString(fmt.Sprintf("Gain/loss:      %s\n", FormatSignedMoney(m.TotalGainLoss, currency)))
	b.WriteString(fmt.Sprintf("Return:         %s\n", FormatPercent(m.TotalGainLossPercent)))
	return b.String()
}

// FormatAlerts formats the alert list.
func FormatAlerts(alerts []model.Alert, currency string) string {
	var b strings.Builder
	b.WriteString("⏰ Price Alerts\n\n")
	if len(alerts) == 0 {
		b.WriteString("No alerts.\n")
		return b.String()
	}
	for _, a := range alerts {
		state := "active"
		if !a.Active {
			state = "paused"
		}
		if a.TriggeredAt != nil {
			state += ", triggered " + a.TriggeredAt.Format("2006-01-02 15:04")
		}
		b.WriteString(fmt.Sprintf("[%s] %s %s %s (%s)\n",
			ShortID(a.ID), a.Symbol, a.Kind, FormatMoney(a.Threshold, currency), state))
	}
	return b.String()
}
