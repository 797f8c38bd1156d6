package foliotrack

import (
	"context"
	"sort"
)

// Interval is the sampling interval of a historical price request.
type Interval string

const (
	Daily   Interval = "1d"
	Weekly  Interval = "1wk"
	Monthly Interval = "1mo"
)

// MarketDataGateway supplies market prices for tickers. The core depends on
// providers only through this interface.
//
// Implementations must report unknown tickers with an error wrapping
// ErrPriceUnavailable rather than returning silent zeros, and must honor
// the caller's context for timeouts and cancellation.
type MarketDataGateway interface {
	// LatestPrice returns the most recent known price for a ticker, in the
	// security's trading currency.
	LatestPrice(ctx context.Context, ticker string) (Money, error)

	// HistoricalPrices returns daily (or coarser) quotes for a set of
	// tickers from a start date onward.
	HistoricalPrices(ctx context.Context, tickers []string, from Date, interval Interval) (*QuoteTable, error)
}

// Quote is one bar of market data for a ticker on a date.
type Quote struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
}

type quoteKey struct {
	ticker string
	day    Date
}

// QuoteTable holds historical quotes keyed by (date, ticker), together with
// the trading currency of each ticker.
type QuoteTable struct {
	quotes     map[quoteKey]Quote
	currencies map[string]string
	days       []Date // All days with at least one quote, sorted.
}

// NewQuoteTable creates an empty quote table.
func NewQuoteTable() *QuoteTable {
	return &QuoteTable{
		quotes:     make(map[quoteKey]Quote),
		currencies: make(map[string]string),
	}
}

// SetCurrency records the trading currency of a ticker.
func (t *QuoteTable) SetCurrency(ticker, currency string) {
	t.currencies[ticker] = currency
}

// Currency returns the trading currency of a ticker, empty when unknown.
func (t *QuoteTable) Currency(ticker string) string {
	return t.currencies[ticker]
}

// Add records a quote for a ticker on a day.
func (t *QuoteTable) Add(ticker string, day Date, q Quote) {
	key := quoteKey{ticker, day}
	if _, exists := t.quotes[key]; !exists {
		if !t.hasDay(day) {
			t.days = append(t.days, day)
			sort.Slice(t.days, func(i, j int) bool { return t.days[i].Before(t.days[j]) })
		}
	}
	t.quotes[key] = q
}

func (t *QuoteTable) hasDay(day Date) bool {
	for _, d := range t.days {
		if d == day {
			return true
		}
	}
	return false
}

// Days returns the sorted list of days with at least one quote.
func (t *QuoteTable) Days() []Date { return t.days }

// Get returns the quote for a ticker on an exact day.
func (t *QuoteTable) Get(ticker string, day Date) (Quote, bool) {
	q, ok := t.quotes[quoteKey{ticker, day}]
	return q, ok
}

// CloseOn returns the closing price of a ticker on a day, forward-filling
// from the most recent prior quote when the exact day is missing.
func (t *QuoteTable) CloseOn(ticker string, day Date) (float64, bool) {
	if q, ok := t.Get(ticker, day); ok {
		return q.Close, true
	}
	// Walk prior days backwards; t.days is sorted ascending.
	for i := len(t.days) - 1; i >= 0; i-- {
		if t.days[i].After(day) {
			continue
		}
		if q, ok := t.Get(ticker, t.days[i]); ok {
			return q.Close, true
		}
	}
	return 0, false
}
