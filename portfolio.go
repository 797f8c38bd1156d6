package foliotrack

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Portfolio is an ordered collection of securities plus the append-only
// history of transactions recorded against them.
//
// Securities are indexed by ticker and keep their insertion order; that
// order is the tie-break rule the equilibrium solver relies on.
//
// A Portfolio is a value container owned by a single caller at a time.
// It is not safe for concurrent mutation; services exposing it to several
// callers must treat each instance as an immutable snapshot and work on
// returned plans instead.
type Portfolio struct {
	currency   string // The reporting currency, an ISO 4217 code.
	securities []*Security
	index      map[string]*Security
	history    []Transaction
}

// NewPortfolio creates an empty portfolio reporting in the given currency.
func NewPortfolio(currency string) *Portfolio {
	return &Portfolio{
		currency:   currency,
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
	}
}

// Currency returns the reporting currency of the portfolio.
func (p *Portfolio) Currency() string { return p.currency }

// Has reports whether a ticker is present in the portfolio.
func (p *Portfolio) Has(ticker string) bool {
	_, ok := p.index[ticker]
	return ok
}

// Security returns the security held under this ticker, or nil if unknown.
func (p *Portfolio) Security(ticker string) *Security {
	return p.index[ticker]
}

// Len returns the number of securities in the portfolio.
func (p *Portfolio) Len() int { return len(p.securities) }

// Securities iterates over the securities in insertion order.
func (p *Portfolio) Securities() iter.Seq[*Security] {
	return func(yield func(*Security) bool) {
		for _, sec := range p.securities {
			if !yield(sec) {
				return
			}
		}
	}
}

// Tickers returns the tickers in insertion order.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.securities))
	for _, sec := range p.securities {
		tickers = append(tickers, sec.ticker)
	}
	return tickers
}

// AddSecurity inserts a security into the portfolio.
func (p *Portfolio) AddSecurity(sec *Security) error {
	if sec == nil {
		return fmt.Errorf("%w: nil security", ErrInvalidArgument)
	}
	if p.Has(sec.ticker) {
		return fmt.Errorf("%w: %s", ErrDuplicateTicker, sec.ticker)
	}
	p.securities = append(p.securities, sec)
	p.index[sec.ticker] = sec
	return nil
}

// Buy records a market purchase of a security.
//
// An unknown ticker creates a new security with the given price and
// currency and a zero target share. A known ticker has its volume increased
// and its price overwritten with the transaction price: this models a market
// buy at the latest observed price, cost basis averaging is not tracked.
func (p *Portfolio) Buy(ticker string, volume Quantity, price Money, day Date, fee Money) error {
	if volume.IsZero() || volume.IsNegative() {
		return fmt.Errorf("%w: buy volume must be positive, got %s", ErrInvalidArgument, volume)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: buy price must not be negative, got %s", ErrInvalidArgument, price)
	}

	sec := p.Security(ticker)
	if sec == nil {
		created, err := NewSecurity(ticker, ticker, price.Currency(), price, volume, 0)
		if err != nil {
			return err
		}
		p.securities = append(p.securities, created)
		p.index[ticker] = created
	} else {
		if price.Currency() != "" && price.Currency() != sec.currency {
			return fmt.Errorf("%w: buy price currency %s does not match security currency %s",
				ErrInvalidArgument, price.Currency(), sec.currency)
		}
		sec.volume = sec.volume.Add(volume)
		sec.price = M(price.value, sec.currency)
	}

	p.history = append(p.history, NewBuy(day, ticker, volume, M(price.value, p.index[ticker].currency), fee))
	return nil
}

// Sell records a market sale of a security.
//
// Selling more than held is an error, not a negative holding. A holding
// brought exactly to zero is retained so the history remains referenceable.
func (p *Portfolio) Sell(ticker string, volume Quantity, day Date) error {
	sec := p.Security(ticker)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}
	if volume.IsZero() || volume.IsNegative() {
		return fmt.Errorf("%w: sell volume must be positive, got %s", ErrInvalidArgument, volume)
	}
	if volume.GreaterThan(sec.volume) {
		return fmt.Errorf("%w: cannot sell %s of %s, holding is %s",
			ErrInsufficientHoldings, volume, ticker, sec.volume)
	}

	sec.volume = sec.volume.Sub(volume)
	p.history = append(p.history, NewSell(day, ticker, volume, sec.price, M(0, sec.currency)))
	return nil
}

// History iterates over the recorded transactions in recording order.
func (p *Portfolio) History() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range p.history {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// HistoryLen returns the number of recorded transactions.
func (p *Portfolio) HistoryLen() int { return len(p.history) }

// TotalValue returns the sum of all holding values, in the reporting currency.
func (p *Portfolio) TotalValue(rates Rates) (Money, error) {
	total := M(0, p.currency)
	for _, sec := range p.securities {
		value, err := sec.ValueIn(rates, p.currency)
		if err != nil {
			return Money{}, fmt.Errorf("could not value %s: %w", sec.ticker, err)
		}
		total = total.Add(value)
	}
	return total, nil
}

// ComputeActualShares recomputes each security's actual share of the total
// portfolio value. With a total value of zero every actual share is zero,
// never NaN.
func (p *Portfolio) ComputeActualShares(rates Rates) error {
	total, err := p.TotalValue(rates)
	if err != nil {
		return err
	}
	if total.IsZero() {
		for _, sec := range p.securities {
			sec.actual = 0
		}
		return nil
	}
	for _, sec := range p.securities {
		value, err := sec.ValueIn(rates, p.currency)
		if err != nil {
			return fmt.Errorf("could not value %s: %w", sec.ticker, err)
		}
		sec.actual = Percent(value.value.Div(total.value).InexactFloat64())
	}
	return nil
}

// UpdatePrices refreshes every security price from the market data gateway.
//
// Volume and target share are untouched. A ticker without data does not
// abort the batch: per-ticker failures are collected and returned joined,
// and every other price is still refreshed.
func (p *Portfolio) UpdatePrices(ctx context.Context, gateway MarketDataGateway) error {
	var errs error
	for _, sec := range p.securities {
		price, err := gateway.LatestPrice(ctx, sec.ticker)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", sec.ticker, err))
			continue
		}
		if price.Currency() != "" && price.Currency() != sec.currency {
			errs = errors.Join(errs, fmt.Errorf("%s: %w: quoted in %s, expected %s",
				sec.ticker, ErrPriceUnavailable, price.Currency(), sec.currency))
			continue
		}
		sec.price = M(price.value, sec.currency)
	}
	return errs
}

// SecurityInfo is a read-only snapshot of one security, the contract
// consumed by the presentation layer.
type SecurityInfo struct {
	Name     string
	Ticker   string
	Currency string
	Price    Money   // In the security's currency.
	Actual   Percent // Current share of the portfolio value.
	Target   Percent // Desired share of the portfolio value.
	Volume   Quantity
	Value    Money // Holding value in the reporting currency.
}

// PortfolioInfo is a read-only snapshot of the whole portfolio.
type PortfolioInfo struct {
	Currency   string
	TotalValue Money
	Securities []SecurityInfo
}

// Info produces the read-only snapshot of the portfolio, with actual shares
// recomputed, in security insertion order.
func (p *Portfolio) Info(rates Rates) (*PortfolioInfo, error) {
	if err := p.ComputeActualShares(rates); err != nil {
		return nil, err
	}
	total, err := p.TotalValue(rates)
	if err != nil {
		return nil, err
	}
	info := &PortfolioInfo{
		Currency:   p.currency,
		TotalValue: total,
		Securities: make([]SecurityInfo, 0, len(p.securities)),
	}
	for _, sec := range p.securities {
		value, err := sec.ValueIn(rates, p.currency)
		if err != nil {
			return nil, fmt.Errorf("could not value %s: %w", sec.ticker, err)
		}
		info.Securities = append(info.Securities, SecurityInfo{
			Name:     sec.name,
			Ticker:   sec.ticker,
			Currency: sec.currency,
			Price:    sec.price,
			Actual:   sec.actual,
			Target:   sec.target,
			Volume:   sec.volume,
			Value:    value,
		})
	}
	return info, nil
}

// Equal reports whether two portfolios hold the same securities in the same
// order, with the same history.
func (p *Portfolio) Equal(o *Portfolio) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.currency != o.currency ||
		len(p.securities) != len(o.securities) ||
		len(p.history) != len(o.history) {
		return false
	}
	for i, sec := range p.securities {
		if !sec.Equal(o.securities[i]) {
			return false
		}
	}
	for i, tx := range p.history {
		if !tx.Equal(o.history[i]) {
			return false
		}
	}
	return true
}
