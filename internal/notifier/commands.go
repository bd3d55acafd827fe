package notifier

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/holding"
	"PortfolioSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

// Portfolio is the part of the tracker the chat commands drive.
type Portfolio interface {
	Holdings() []model.Holding
	Holding(id string) (model.Holding, error)
	AddHolding(in model.HoldingInput) model.Holding
	UpdateHolding(id string, in model.HoldingInput) (model.Holding, error)
	RemoveHolding(id string) error
	Metrics() model.PortfolioMetrics
	Alerts() []model.Alert
	AlertsFor(holdingID string) []model.Alert
	AddAlert(holdingID string, kind model.AlertKind, threshold float64) (model.Alert, error)
	RemoveAlert(id string) error
	ToggleAlert(id string) (model.Alert, error)
	Notifications() []model.Notification
	UnreadCount() int
	MarkRead(id string) (model.Notification, error)
	MarkAllRead() int
	RemoveNotification(id string) error
}

// Commands answers text commands against a Portfolio.
type Commands struct {
	Portfolio Portfolio
	Currency  string
	Now       func() time.Time
}

// NewCommands creates a command handler.
func NewCommands(p Portfolio, currency string) *Commands {
	return &Commands{Portfolio: p, Currency: currency, Now: time.Now}
}

const helpText = `Available commands:
• /holdings [field] [desc]
• /add <symbol> <name> <shares> <buy price> <current price> <YYYY-MM-DD>
• /edit <holding id> <symbol> <name> <shares> <buy price> <current price> <YYYY-MM-DD>
• /remove <holding id>
• /summary
• /alerts
• /alert <symbol|holding id> upper|lower <threshold>
• /unalert <alert id>
• /toggle <alert id>
• /notifications
• /read <id>
• /readall
• /delete <id>`

// Handle processes a user command and returns a reply.
func (c *Commands) Handle(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "/holdings":
		return c.holdings(args)
	case "/add":
		return c.add(args)
	case "/edit":
		return c.edit(args)
	case "/remove":
		return c.remove(args)
	case "/summary":
		return FormatSummary(c.Portfolio.Metrics(), c.Currency)
	case "/alerts":
		return FormatAlerts(c.Portfolio.Alerts(), c.Currency)
	case "/alert":
		return c.addAlert(args)
	case "/unalert":
		return c.removeAlert(args)
	case "/toggle":
		return c.toggle(args)
	case "/notifications", "/inbox":
		return FormatNotifications(c.Portfolio.Notifications(), c.Portfolio.UnreadCount(), c.Now(), c.Currency)
	case "/read":
		return c.read(args)
	case "/readall":
		n := c.Portfolio.MarkAllRead()
		return fmt.Sprintf("✅ Marked %d notification(s) as read", n)
	case "/delete":
		return c.delete(args)
	default:
		return helpText
	}
}

func (c *Commands) holdings(args []string) string {
	field := holding.SortSymbol
	if len(args) > 0 {
		f, err := holding.ParseSortField(args[0])
		if err != nil {
			return "❌ " + err.Error()
		}
		field = f
	}
	desc := len(args) > 1 && strings.EqualFold(args[1], "desc")
	sorted := holding.Sort(c.Portfolio.Holdings(), field, desc)
	return FormatHoldings(calculator.PerHolding(sorted), c.Currency)
}

// holdingFields is the number of arguments after the name in /add and /edit.
const holdingFields = 4

// parseHoldingInput reads "<symbol> <name...> <shares> <buy> <now> <date>".
// The name may contain spaces.
func parseHoldingInput(args []string) (model.HoldingInput, error) {
	if len(args) < 2+holdingFields {
		return model.HoldingInput{}, errors.New("usage: <symbol> <name> <shares> <buy price> <current price> <YYYY-MM-DD>")
	}
	tail := args[len(args)-holdingFields:]
	in := model.HoldingInput{
		Symbol: args[0],
		Name:   strings.Join(args[1:len(args)-holdingFields], " "),
	}
	nums := []struct {
		field string
		dst   *float64
		raw   string
	}{
		{"shares", &in.Shares, tail[0]},
		{"purchase_price", &in.PurchasePrice, tail[1]},
		{"current_price", &in.CurrentPrice, tail[2]},
	}
	for _, n := range nums {
		v, err := strconv.ParseFloat(n.raw, 64)
		if err != nil {
			return model.HoldingInput{}, model.NewValidationError(n.field, fmt.Sprintf("%q is not a number", n.raw))
		}
		*n.dst = v
	}
	d, err := time.Parse(dateLayout, tail[3])
	if err != nil {
		return model.HoldingInput{}, model.NewValidationError("purchase_date", "purchase date must be YYYY-MM-DD")
	}
	in.PurchaseDate = d

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.HoldingInput{}, err
	}
	return in, nil
}

func (c *Commands) add(args []string) string {
	in, err := parseHoldingInput(args)
	if err != nil {
		return "❌ " + err.Error()
	}
	h := c.Portfolio.AddHolding(in)
	return fmt.Sprintf("✅ Added %s (%s): %s shares at %s [%s]",
		h.Symbol, h.Name, humanize.Commaf(h.Shares), FormatMoney(h.PurchasePrice, c.Currency), ShortID(h.ID))
}

func (c *Commands) edit(args []string) string {
	id, err := resolveArg(args, c.holdingIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	in, err := parseHoldingInput(args[1:])
	if err != nil {
		return "❌ " + err.Error()
	}
	h, err := c.Portfolio.UpdateHolding(id, in)
	if err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("✏️ Updated %s [%s]", h.Symbol, ShortID(h.ID))
}

func (c *Commands) remove(args []string) string {
	id, err := resolveArg(args, c.holdingIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	h, err := c.Portfolio.Holding(id)
	if err != nil {
		return "❌ " + err.Error()
	}
	n := len(c.Portfolio.AlertsFor(id))
	if err := c.Portfolio.RemoveHolding(id); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("🗑 Removed %s and %d alert(s)", h.Symbol, n)
}

func (c *Commands) addAlert(args []string) string {
	if len(args) != 3 {
		return "❌ usage: /alert <symbol|holding id> upper|lower <threshold>"
	}
	id, err := c.resolveHolding(args[0])
	if err != nil {
		return "❌ " + err.Error()
	}
	kind, err := model.ParseAlertKind(args[1])
	if err != nil {
		return "❌ " + err.Error()
	}
	threshold, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return "❌ " + model.NewValidationError("threshold", fmt.Sprintf("%q is not a number", args[2])).Error()
	}
	a, err := c.Portfolio.AddAlert(id, kind, threshold)
	if err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("⏰ Alert set: %s %s %s [%s]", a.Symbol, a.Kind, FormatMoney(a.Threshold, c.Currency), ShortID(a.ID))
}

func (c *Commands) removeAlert(args []string) string {
	id, err := resolveArg(args, c.alertIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	if err := c.Portfolio.RemoveAlert(id); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("🗑 Alert %s deleted", ShortID(id))
}

// resolveHolding accepts a symbol held exactly once, or a holding id prefix.
func (c *Commands) resolveHolding(arg string) (string, error) {
	sym := strings.ToUpper(arg)
	match := ""
	for _, h := range c.Portfolio.Holdings() {
		if h.Symbol != sym {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s is held more than once, use the holding id", errAmbiguous, sym)
		}
		match = h.ID
	}
	if match != "" {
		return match, nil
	}
	return resolveArg([]string{arg}, c.holdingIDs())
}

func (c *Commands) holdingIDs() []string {
	list := c.Portfolio.Holdings()
	ids := make([]string, len(list))
	for i, h := range list {
		ids[i] = h.ID
	}
	return ids
}

func (c *Commands) alertIDs() []string {
	list := c.Portfolio.Alerts()
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids
}

func (c *Commands) toggle(args []string) string {
	id, err := resolveArg(args, c.alertIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	a, err := c.Portfolio.ToggleAlert(id)
	if err != nil {
		return "❌ " + err.Error()
	}
	state := "paused"
	if a.Active {
		state = "active"
	}
	return fmt.Sprintf("⏰ %s %s alert at %s is now %s", a.Symbol, a.Kind, FormatMoney(a.Threshold, c.Currency), state)
}

func (c *Commands) read(args []string) string {
	id, err := resolveArg(args, c.notificationIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	if _, err := c.Portfolio.MarkRead(id); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("✅ Notification %s marked as read", ShortID(id))
}

func (c *Commands) delete(args []string) string {
	id, err := resolveArg(args, c.notificationIDs())
	if err != nil {
		return "❌ " + err.Error()
	}
	if err := c.Portfolio.RemoveNotification(id); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("🗑 Notification %s deleted", ShortID(id))
}

func (c *Commands) notificationIDs() []string {
	list := c.Portfolio.Notifications()
	ids := make([]string, len(list))
	for i, n := range list {
		ids[i] = n.ID
	}
	return ids
}

var errAmbiguous = errors.New("ambiguous id")

// resolveArg expands an id prefix typed by the user to a full id.
func resolveArg(args, ids []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errors.New("missing id")
	}
	prefix := args[0]
	if slices.Contains(ids, prefix) {
		return prefix, nil
	}
	match := ""
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w %q", errAmbiguous, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", model.NotFound("id", prefix)
	}
	return match, nil
}
