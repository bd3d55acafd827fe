package alert

import (
	"fmt"
	"slices"
	"time"

	"PortfolioSentinel/internal/model"

	"github.com/google/uuid"
)

// HoldingLookup resolves the holding an alert is created against.
type HoldingLookup interface {
	Get(id string) (model.Holding, error)
}

// Store keeps alerts in insertion order. It is not safe for concurrent use.
type Store struct {
	holdings HoldingLookup
	items    []model.Alert
	newID    func() string
}

// NewStore creates an empty Store validating against holdings.
func NewStore(holdings HoldingLookup) *Store {
	return &Store{holdings: holdings, newID: uuid.NewString}
}

// Add creates an active, untriggered alert. The threshold must be positive
// and on the far side of the holding's current price at call time.
func (s *Store) Add(holdingID string, kind model.AlertKind, threshold float64, now time.Time) (model.Alert, error) {
	h, err := s.holdings.Get(holdingID)
	if err != nil {
		return model.Alert{}, err
	}
	if err := ValidateThreshold(kind, threshold, h.CurrentPrice); err != nil {
		return model.Alert{}, err
	}
	a := model.Alert{
		ID:        s.newID(),
		HoldingID: h.ID,
		Symbol:    h.Symbol,
		Kind:      kind,
		Threshold: threshold,
		Active:    true,
		CreatedAt: now,
	}
	s.items = append(s.items, a)
	return a, nil
}

// ValidateThreshold checks a new alert's threshold against the current price.
func ValidateThreshold(kind model.AlertKind, threshold, currentPrice float64) error {
	if !kind.Valid() {
		return model.NewValidationError("kind", fmt.Sprintf("unknown alert kind %q", kind))
	}
	if !model.Positive(threshold) {
		return model.NewValidationError("threshold", "threshold must be a positive number")
	}
	if kind == model.AlertUpper && threshold <= currentPrice {
		return model.NewValidationError("threshold", "upper threshold must be above current price")
	}
	if kind == model.AlertLower && threshold >= currentPrice {
		return model.NewValidationError("threshold", "lower threshold must be below current price")
	}
	return nil
}

// ToggleActive flips the active flag. TriggeredAt is left alone.
func (s *Store) ToggleActive(id string) (model.Alert, error) {
	i := s.find(id)
	if i < 0 {
		return model.Alert{}, model.NotFound("alert", id)
	}
	s.items[i].Active = !s.items[i].Active
	return clone(s.items[i]), nil
}

// MarkTriggered latches the alert at ts. A second call keeps the first time.
func (s *Store) MarkTriggered(id string, ts time.Time) (model.Alert, error) {
	i := s.find(id)
	if i < 0 {
		return model.Alert{}, model.NotFound("alert", id)
	}
	if s.items[i].TriggeredAt == nil {
		t := ts
		s.items[i].TriggeredAt = &t
	}
	return clone(s.items[i]), nil
}

// Remove deletes one alert.
func (s *Store) Remove(id string) error {
	i := s.find(id)
	if i < 0 {
		return model.NotFound("alert", id)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// RemoveByHolding deletes every alert of a holding and returns how many went.
func (s *Store) RemoveByHolding(holdingID string) int {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(a model.Alert) bool {
		return a.HoldingID == holdingID
	})
	return before - len(s.items)
}

// Get returns the alert with the given id.
func (s *Store) Get(id string) (model.Alert, error) {
	i := s.find(id)
	if i < 0 {
		return model.Alert{}, model.NotFound("alert", id)
	}
	return clone(s.items[i]), nil
}

// List returns every alert in insertion order.
func (s *Store) List() []model.Alert {
	return s.filter(func(model.Alert) bool { return true })
}

// ListActive returns active alerts, whether triggered or not.
func (s *Store) ListActive() []model.Alert {
	return s.filter(func(a model.Alert) bool { return a.Active })
}

// ListByHolding returns the alerts of one holding.
func (s *Store) ListByHolding(holdingID string) []model.Alert {
	return s.filter(func(a model.Alert) bool { return a.HoldingID == holdingID })
}

// Len returns the number of alerts.
func (s *Store) Len() int { return len(s.items) }

func (s *Store) find(id string) int {
	return slices.IndexFunc(s.items, func(a model.Alert) bool { return a.ID == id })
}

func (s *Store) filter(keep func(model.Alert) bool) []model.Alert {
	out := make([]model.Alert, 0, len(s.items))
	for _, a := range s.items {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	return out
}

// clone detaches the TriggeredAt pointer from the stored record.
func clone(a model.Alert) model.Alert {
	if a.TriggeredAt != nil {
		t := *a.TriggeredAt
		a.TriggeredAt = &t
	}
	return a
}
