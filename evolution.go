package foliotrack

import (
	"fmt"
	"sort"
)

// EvolutionPoint is the state of the portfolio on one quoted day: the
// volumes held after every transaction dated on or before that day, the net
// volumes traded since the previous point, and the resulting total value.
type EvolutionPoint struct {
	Date    Date
	Volumes map[string]Quantity
	Traded  map[string]Quantity
	Value   Money
}

// Evolution is the dated series of portfolio states obtained by replaying
// the transaction history against historical quotes.
type Evolution struct {
	Currency string
	Points   []EvolutionPoint
}

// Evolution replays the transaction history against a quote table and
// returns one point per quoted day. Quotes are forward-filled, so a ticker
// only needs a close at or before each day. Days before the first
// transaction are skipped.
//
// Quotes are expressed in each security's currency; rates convert them to
// the reporting currency. A held ticker with no quote at or before a day
// fails with ErrPriceUnavailable.
func (p *Portfolio) Evolution(table *QuoteTable, rates Rates) (*Evolution, error) {
	history := make([]Transaction, len(p.history))
	copy(history, p.history)
	sort.SliceStable(history, func(a, b int) bool {
		return history[a].When().Before(history[b].When())
	})

	evo := &Evolution{Currency: p.currency}
	if len(history) == 0 {
		return evo, nil
	}

	volumes := make(map[string]Quantity)
	next := 0 // first unapplied transaction
	for _, day := range table.Days() {
		if day.Before(history[0].When()) {
			continue
		}

		traded := make(map[string]Quantity)
		for next < len(history) && !day.Before(history[next].When()) {
			tx := history[next]
			v := tx.SignedVolume()
			volumes[tx.Ticker()] = volumes[tx.Ticker()].Add(v)
			traded[tx.Ticker()] = traded[tx.Ticker()].Add(v)
			next++
		}

		total := M(0, p.currency)
		snapshot := make(map[string]Quantity, len(volumes))
		for ticker, volume := range volumes {
			snapshot[ticker] = volume
			if volume.IsZero() {
				continue
			}
			close, ok := table.CloseOn(ticker, day)
			if !ok {
				return nil, fmt.Errorf("%w: no quote for %s on or before %s", ErrPriceUnavailable, ticker, day)
			}
			currency := table.Currency(ticker)
			if currency == "" {
				if sec := p.Security(ticker); sec != nil {
					currency = sec.Currency()
				} else {
					currency = p.currency
				}
			}
			value, err := rates.Convert(M(close, currency).Mul(volume), p.currency)
			if err != nil {
				return nil, fmt.Errorf("could not value %s on %s: %w", ticker, day, err)
			}
			total = total.Add(value)
		}

		evo.Points = append(evo.Points, EvolutionPoint{
			Date:    day,
			Volumes: snapshot,
			Traded:  traded,
			Value:   total,
		})
	}
	return evo, nil
}

// Last returns the most recent point, or nil for an empty evolution.
func (e *Evolution) Last() *EvolutionPoint {
	if len(e.Points) == 0 {
		return nil
	}
	return &e.Points[len(e.Points)-1]
}
