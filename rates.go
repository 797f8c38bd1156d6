package foliotrack

import (
	"context"
	"errors"
	"fmt"
)

// Rates holds currency conversion rates, keyed by concatenated currency
// pair following the FX market convention: "EURUSD" is the price of one
// EUR in USD.
type Rates map[string]float64

// Set records the rate for one base currency unit quoted in another currency.
func (r Rates) Set(base, quote string, rate float64) {
	r[base+quote] = rate
}

// rate returns the conversion factor from one currency to another, looking
// up the reverse pair when only that one is known.
func (r Rates) rate(from, to string) (float64, bool) {
	if rate, ok := r[from+to]; ok && rate != 0 {
		return rate, true
	}
	if rate, ok := r[to+from]; ok && rate != 0 {
		return 1 / rate, true
	}
	return 0, false
}

// Convert converts a monetary value into the given currency.
// Converting to the same currency (or from the weak "" currency) is the
// identity and needs no rate.
func (r Rates) Convert(m Money, currency string) (Money, error) {
	if m.Currency() == currency || m.Currency() == "" || m.IsZero() {
		return M(m.value, currency), nil
	}
	rate, ok := r.rate(m.Currency(), currency)
	if !ok {
		return Money{}, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, m.Currency(), currency)
	}
	return M(m.value.Mul(newDecimal(rate)), currency), nil
}

// FetchRates queries the market data gateway for the latest conversion
// rate of each currency pair, using the "EURUSD=X" ticker convention.
// Failures are per pair: the rates that could be fetched are returned
// alongside the joined errors, each matchable with ErrRateUnavailable.
func FetchRates(ctx context.Context, gateway MarketDataGateway, pairs ...string) (Rates, error) {
	rates := Rates{}
	var errs error
	for _, pair := range pairs {
		if len(pair) != 6 {
			errs = errors.Join(errs, fmt.Errorf("%w: invalid pair %q", ErrRateUnavailable, pair))
			continue
		}
		price, err := gateway.LatestPrice(ctx, pair+"=X")
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%w: %s: %v", ErrRateUnavailable, pair, err))
			continue
		}
		rates.Set(pair[:3], pair[3:], price.value.InexactFloat64())
	}
	return rates, errs
}
