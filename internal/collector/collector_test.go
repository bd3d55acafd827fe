package collector

import (
	"errors"
	"testing"

	"PortfolioSentinel/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	holdings []model.Holding
	gone     map[string]bool
}

func (f *fakeTarget) Holdings() []model.Holding {
	return append([]model.Holding(nil), f.holdings...)
}

func (f *fakeTarget) SetCurrentPrice(id string, price float64) (model.Holding, error) {
	if f.gone[id] {
		return model.Holding{}, model.NotFound("holding", id)
	}
	for i := range f.holdings {
		if f.holdings[i].ID == id {
			f.holdings[i].CurrentPrice = price
			return f.holdings[i], nil
		}
	}
	return model.Holding{}, model.NotFound("holding", id)
}

type failingFetcher struct{}

func (failingFetcher) Name() string { return "failing" }
func (failingFetcher) FetchCurrentPrice(string, float64) (float64, error) {
	return 0, errors.New("upstream down")
}

func newTarget() *fakeTarget {
	return &fakeTarget{holdings: []model.Holding{
		{ID: "1", Symbol: "AAPL", CurrentPrice: 175.5},
		{ID: "2", Symbol: "TSLA", CurrentPrice: 195.25},
	}}
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{}
	p, err := m.FetchCurrentPrice("AAPL", 175.5)
	require.NoError(t, err)
	assert.Equal(t, 175.5, p, "unknown symbol keeps last price")

	m.Set("AAPL", 181)
	p, _ = m.FetchCurrentPrice("AAPL", 175.5)
	assert.Equal(t, 181.0, p)
}

func TestRandomWalkFetcher_DeterministicWithSeed(t *testing.T) {
	a := NewRandomWalkFetcher(0.02, 42)
	b := NewRandomWalkFetcher(0.02, 42)
	pa, pb := 100.0, 100.0
	for i := 0; i < 50; i++ {
		var err error
		pa, err = a.FetchCurrentPrice("X", pa)
		require.NoError(t, err)
		pb, _ = b.FetchCurrentPrice("X", pb)
	}
	assert.Equal(t, pa, pb)
}

func TestRandomWalkFetcher_StaysPositive(t *testing.T) {
	f := NewRandomWalkFetcher(0.9, 7)
	p := 0.05
	for i := 0; i < 1000; i++ {
		var err error
		p, err = f.FetchCurrentPrice("PENNY", p)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, minPrice)
	}

	_, err := f.FetchCurrentPrice("X", 0)
	assert.Error(t, err)
}

func TestCollector_Refresh(t *testing.T) {
	target := newTarget()
	m := &MockFetcher{}
	m.Set("AAPL", 180)
	c := NewCollector(m, target, zerolog.Nop())

	assert.Equal(t, 1, c.Refresh(), "TSLA keeps its price")
	assert.Equal(t, 180.0, target.holdings[0].CurrentPrice)
	assert.Equal(t, 195.25, target.holdings[1].CurrentPrice)

	assert.Equal(t, 0, c.Refresh(), "no change, no update")
}

func TestCollector_RefreshSkipsFailuresAndDeletedHoldings(t *testing.T) {
	target := newTarget()
	c := NewCollector(failingFetcher{}, target, zerolog.Nop())
	assert.Equal(t, 0, c.Refresh())

	target.gone = map[string]bool{"1": true}
	m := &MockFetcher{Prices: map[string]float64{"AAPL": 1, "TSLA": 2}}
	c = NewCollector(m, target, zerolog.Nop())
	assert.Equal(t, 1, c.Refresh())
	assert.Equal(t, 2.0, target.holdings[1].CurrentPrice)
}
