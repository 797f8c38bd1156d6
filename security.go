package foliotrack

import (
	"fmt"
)

// Security represents a single holding: a tradeable asset with its latest
// observed price, the volume held, and the share of the portfolio value it
// should ideally represent.
type Security struct {
	name     string   // A human-friendly display name.
	ticker   string   // The unique identifier within a portfolio.
	currency string   // The currency in which the security is traded.
	price    Money    // Latest observed price, in the security's currency.
	volume   Quantity // Units held. May be fractional, never negative.
	target   Percent  // Desired fraction of the portfolio value, in [0,1].
	actual   Percent  // Current fraction, set by Portfolio.ComputeActualShares.
}

// NewSecurity creates a security after range checks: price and volume must
// not be negative and the target share must be a fraction in [0,1].
func NewSecurity(name, ticker, currency string, price Money, volume Quantity, target Percent) (*Security, error) {
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is empty", ErrInvalidSecurity)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: %s price %s is negative", ErrInvalidSecurity, ticker, price)
	}
	if volume.IsNegative() {
		return nil, fmt.Errorf("%w: %s volume %s is negative", ErrInvalidSecurity, ticker, volume)
	}
	if target < 0 || target > 1 {
		return nil, fmt.Errorf("%w: %s target share %v is outside [0,1]", ErrInvalidSecurity, ticker, float64(target))
	}
	return &Security{
		name:     name,
		ticker:   ticker,
		currency: currency,
		price:    M(price.value, currency),
		volume:   volume,
		target:   target,
	}, nil
}

// Name returns the display name of the security.
func (s *Security) Name() string { return s.name }

// Ticker returns the unique ticker symbol of the security.
func (s *Security) Ticker() string { return s.ticker }

// Currency returns the trading currency of the security.
func (s *Security) Currency() string { return s.currency }

// Price returns the latest observed price, in the security's currency.
func (s *Security) Price() Money { return s.price }

// Volume returns the number of units held.
func (s *Security) Volume() Quantity { return s.volume }

// Target returns the desired fraction of portfolio value.
func (s *Security) Target() Percent { return s.target }

// Actual returns the current fraction of portfolio value, as of the last
// call to Portfolio.ComputeActualShares.
func (s *Security) Actual() Percent { return s.actual }

// SetTarget updates the desired fraction of portfolio value.
func (s *Security) SetTarget(target Percent) error {
	if target < 0 || target > 1 {
		return fmt.Errorf("%w: %s target share %v is outside [0,1]", ErrInvalidSecurity, s.ticker, float64(target))
	}
	s.target = target
	return nil
}

// Value returns price times volume, in the security's currency.
func (s *Security) Value() Money { return s.price.Mul(s.volume) }

// ValueIn returns the holding value converted into the given currency.
func (s *Security) ValueIn(rates Rates, currency string) (Money, error) {
	return rates.Convert(s.Value(), currency)
}

// Equal reports whether two securities carry the same identity and state.
// The derived actual share is not part of the comparison.
func (s *Security) Equal(o *Security) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.name == o.name &&
		s.ticker == o.ticker &&
		s.currency == o.currency &&
		s.price.Equal(o.price) &&
		s.volume.Equal(o.volume) &&
		s.target.Equal(o.target)
}
