package collector

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"PortfolioSentinel/internal/logging"
	"PortfolioSentinel/internal/model"

	"github.com/rs/zerolog"
)

// minPrice keeps simulated prices strictly positive.
const minPrice = 0.01

// MockFetcher returns fixed prices for development and testing. Symbols
// without an entry keep their last price.
type MockFetcher struct {
	mu     sync.Mutex
	Prices map[string]float64
}

func (m *MockFetcher) Name() string { return "mock" }

// Set changes the price returned for symbol.
func (m *MockFetcher) Set(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Prices == nil {
		m.Prices = make(map[string]float64)
	}
	m.Prices[symbol] = price
}

func (m *MockFetcher) FetchCurrentPrice(symbol string, last float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Prices[symbol]; ok {
		return p, nil
	}
	return last, nil
}

// RandomWalkFetcher moves each price by a normally distributed relative step
// of standard deviation Volatility.
type RandomWalkFetcher struct {
	mu         sync.Mutex
	rng        *rand.Rand
	Volatility float64
}

// NewRandomWalkFetcher creates a simulator. A zero seed picks a random one.
func NewRandomWalkFetcher(volatility float64, seed int64) *RandomWalkFetcher {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &RandomWalkFetcher{
		rng:        rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		Volatility: volatility,
	}
}

func (f *RandomWalkFetcher) Name() string { return "random-walk" }

func (f *RandomWalkFetcher) FetchCurrentPrice(_ string, last float64) (float64, error) {
	if last <= 0 {
		return 0, fmt.Errorf("no base price")
	}
	f.mu.Lock()
	step := f.rng.NormFloat64() * f.Volatility
	f.mu.Unlock()

	p := math.Round(last*(1+step)*100) / 100
	return math.Max(p, minPrice), nil
}

// PriceTarget is what the collector reads holdings from and writes prices to.
type PriceTarget interface {
	Holdings() []model.Holding
	SetCurrentPrice(id string, price float64) (model.Holding, error)
}

// Collector refreshes holding prices from a Fetcher.
type Collector struct {
	Fetcher Fetcher
	Target  PriceTarget
	log     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, target PriceTarget, log zerolog.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Target: target, log: logging.Component(log, "collector")}
}

// Refresh fetches a price for every holding and stores it. Fetch failures are
// logged and skipped; the number of updated holdings is returned.
func (c *Collector) Refresh() int {
	updated := 0
	for _, h := range c.Target.Holdings() {
		price, err := c.Fetcher.FetchCurrentPrice(h.Symbol, h.CurrentPrice)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("fetch current price")
			continue
		}
		if price <= 0 || price == h.CurrentPrice {
			continue
		}
		// The holding may have been deleted since the snapshot.
		if _, err := c.Target.SetCurrentPrice(h.ID, price); err != nil {
			c.log.Debug().Err(err).Str("symbol", h.Symbol).Msg("set current price")
			continue
		}
		updated++
	}
	c.log.Debug().Str("source", c.Fetcher.Name()).Int("updated", updated).Msg("prices refreshed")
	return updated
}
