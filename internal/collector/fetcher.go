package collector

// Fetcher supplies the current price of a symbol. last is the most recent
// known price; sources with their own state may ignore it.
type Fetcher interface {
	FetchCurrentPrice(symbol string, last float64) (float64, error)
	Name() string
}
