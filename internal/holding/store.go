package holding

import (
	"slices"

	"PortfolioSentinel/internal/model"

	"github.com/google/uuid"
)

// Store keeps holdings in insertion order. It is not safe for concurrent
// use; the tracker serialises access.
type Store struct {
	items []model.Holding
	index map[string]int
	newID func() string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int), newID: uuid.NewString}
}

// Add stores a new holding under a fresh id. The input is not validated.
func (s *Store) Add(in model.HoldingInput) model.Holding {
	h := fromInput(s.newID(), in)
	s.index[h.ID] = len(s.items)
	s.items = append(s.items, h)
	return h
}

// Update replaces every field of the holding except its id.
func (s *Store) Update(id string, in model.HoldingInput) (model.Holding, error) {
	i, ok := s.index[id]
	if !ok {
		return model.Holding{}, model.NotFound("holding", id)
	}
	s.items[i] = fromInput(id, in)
	return s.items[i], nil
}

// SetCurrentPrice changes only the current price of a holding.
func (s *Store) SetCurrentPrice(id string, price float64) (model.Holding, error) {
	i, ok := s.index[id]
	if !ok {
		return model.Holding{}, model.NotFound("holding", id)
	}
	s.items[i].CurrentPrice = price
	return s.items[i], nil
}

// Remove deletes a holding. Dependent alerts are the caller's concern.
func (s *Store) Remove(id string) error {
	i, ok := s.index[id]
	if !ok {
		return model.NotFound("holding", id)
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return nil
}

// Get returns the holding with the given id.
func (s *Store) Get(id string) (model.Holding, error) {
	i, ok := s.index[id]
	if !ok {
		return model.Holding{}, model.NotFound("holding", id)
	}
	return s.items[i], nil
}

// List returns a copy of all holdings in insertion order.
func (s *Store) List() []model.Holding {
	return slices.Clone(s.items)
}

// Len returns the number of holdings.
func (s *Store) Len() int { return len(s.items) }

func fromInput(id string, in model.HoldingInput) model.Holding {
	return model.Holding{
		ID:            id,
		Symbol:        in.Symbol,
		Name:          in.Name,
		Shares:        in.Shares,
		PurchasePrice: in.PurchasePrice,
		CurrentPrice:  in.CurrentPrice,
		PurchaseDate:  in.PurchaseDate,
	}
}
