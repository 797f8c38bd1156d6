package foliotrack

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAddSecurity(t *testing.T) {
	p := NewPortfolio("EUR")
	sec, err := NewSecurity("Airbus", "AIR.PA", "EUR", M(170, "EUR"), Q(0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddSecurity(sec); err != nil {
		t.Fatalf("AddSecurity: %v", err)
	}
	if !p.Has("AIR.PA") || p.Len() != 1 {
		t.Errorf("Has = %v, Len = %d, want true and 1", p.Has("AIR.PA"), p.Len())
	}

	dup, err := NewSecurity("Airbus again", "AIR.PA", "EUR", M(1, "EUR"), Q(0), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddSecurity(dup); !errors.Is(err, ErrDuplicateTicker) {
		t.Errorf("AddSecurity(duplicate) error = %v, want ErrDuplicateTicker", err)
	}
	if err := p.AddSecurity(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddSecurity(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestBuy(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 2, 0.5})

	// Buying a known ticker increases volume and overwrites the price.
	if err := p.Buy("A", Q(3), M(110, "EUR"), NewDate(2025, 1, 2), M(1, "EUR")); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	sec := p.Security("A")
	if !sec.Volume().Equal(Q(5)) {
		t.Errorf("volume = %s, want 5", sec.Volume())
	}
	if !sec.Price().Equal(M(110, "EUR")) {
		t.Errorf("price = %s, want 110", sec.Price())
	}
	if !sec.Target().Equal(0.5) {
		t.Errorf("target = %v, want unchanged 0.5", sec.Target())
	}

	// Buying an unknown ticker creates it with a zero target.
	if err := p.Buy("NEW", Q(1), M(10, "USD"), NewDate(2025, 1, 3), M(0, "USD")); err != nil {
		t.Fatalf("Buy(NEW): %v", err)
	}
	created := p.Security("NEW")
	if created == nil {
		t.Fatal("NEW was not created")
	}
	if created.Currency() != "USD" || created.Target() != 0 || !created.Volume().Equal(Q(1)) {
		t.Errorf("created = %v %v %s, want USD, 0, 1", created.Currency(), created.Target(), created.Volume())
	}

	if p.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2", p.HistoryLen())
	}
}

func TestBuyRejects(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 2, 0.5})
	day := NewDate(2025, 1, 2)

	tests := []struct {
		name   string
		ticker string
		volume Quantity
		price  Money
	}{
		{"zero volume", "A", Q(0), M(100, "EUR")},
		{"negative volume", "A", Q(-1), M(100, "EUR")},
		{"negative price", "A", Q(1), M(-1, "EUR")},
		{"currency mismatch", "A", Q(1), M(100, "USD")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Buy(tt.ticker, tt.volume, tt.price, day, M(0, "EUR")); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Buy() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
	if p.HistoryLen() != 0 {
		t.Errorf("HistoryLen = %d, want 0 after rejected buys", p.HistoryLen())
	}
}

func TestSell(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 5, 0.5})
	day := NewDate(2025, 1, 2)

	if err := p.Sell("B", Q(1), day); !errors.Is(err, ErrUnknownTicker) {
		t.Errorf("Sell(unknown) error = %v, want ErrUnknownTicker", err)
	}
	if err := p.Sell("A", Q(0), day); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Sell(zero) error = %v, want ErrInvalidArgument", err)
	}
	if err := p.Sell("A", Q(6), day); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("Sell(too much) error = %v, want ErrInsufficientHoldings", err)
	}
	if got := p.Security("A").Volume(); !got.Equal(Q(5)) {
		t.Errorf("volume = %s, want 5 after rejected sells", got)
	}

	// Selling the whole position keeps the security with zero volume.
	if err := p.Sell("A", Q(5), day); err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if !p.Has("A") {
		t.Error("A was removed after selling to zero")
	}
	if got := p.Security("A").Volume(); !got.IsZero() {
		t.Errorf("volume = %s, want 0", got)
	}
	if p.HistoryLen() != 1 {
		t.Errorf("HistoryLen = %d, want 1", p.HistoryLen())
	}
}

func TestTotalValueAndShares(t *testing.T) {
	p := newTestPortfolio(t, "EUR",
		row{"A", 100, 6, 0.5}, // 600
		row{"B", 50, 8, 0.5},  // 400
	)
	total, err := p.TotalValue(nil)
	if err != nil {
		t.Fatalf("TotalValue: %v", err)
	}
	if !total.Equal(M(1000, "EUR")) {
		t.Errorf("TotalValue = %s, want 1000", total)
	}

	if err := p.ComputeActualShares(nil); err != nil {
		t.Fatalf("ComputeActualShares: %v", err)
	}
	if got := p.Security("A").Actual(); !got.Equal(0.6) {
		t.Errorf("A actual = %v, want 0.6", got)
	}
	if got := p.Security("B").Actual(); !got.Equal(0.4) {
		t.Errorf("B actual = %v, want 0.4", got)
	}
}

func TestComputeActualSharesEmpty(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 0, 0.5})
	if err := p.ComputeActualShares(nil); err != nil {
		t.Fatalf("ComputeActualShares: %v", err)
	}
	if got := p.Security("A").Actual(); got != 0 {
		t.Errorf("actual = %v, want 0 on zero total value", got)
	}
}

// stubGateway serves canned prices in tests.
type stubGateway struct {
	prices map[string]Money
}

func (g stubGateway) LatestPrice(_ context.Context, ticker string) (Money, error) {
	price, ok := g.prices[ticker]
	if !ok {
		return Money{}, fmt.Errorf("%w: %s", ErrPriceUnavailable, ticker)
	}
	return price, nil
}

func (g stubGateway) HistoricalPrices(context.Context, []string, Date, Interval) (*QuoteTable, error) {
	return NewQuoteTable(), nil
}

func TestUpdatePrices(t *testing.T) {
	p := newTestPortfolio(t, "EUR",
		row{"A", 100, 1, 0.5},
		row{"B", 50, 1, 0.5},
	)
	gateway := stubGateway{prices: map[string]Money{
		"A": M(120, "EUR"),
		"B": M(55, "EUR"),
	}}
	if err := p.UpdatePrices(context.Background(), gateway); err != nil {
		t.Fatalf("UpdatePrices: %v", err)
	}
	if got := p.Security("A").Price(); !got.Equal(M(120, "EUR")) {
		t.Errorf("A price = %s, want 120", got)
	}
	if got := p.Security("B").Price(); !got.Equal(M(55, "EUR")) {
		t.Errorf("B price = %s, want 55", got)
	}
}

func TestUpdatePricesPartialFailure(t *testing.T) {
	p := newTestPortfolio(t, "EUR",
		row{"A", 100, 1, 0.5},
		row{"B", 50, 1, 0.5},
		row{"C", 10, 1, 0},
	)
	// B is unknown to the gateway, C is quoted in the wrong currency.
	gateway := stubGateway{prices: map[string]Money{
		"A": M(120, "EUR"),
		"C": M(12, "USD"),
	}}
	err := p.UpdatePrices(context.Background(), gateway)
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Fatalf("UpdatePrices error = %v, want ErrPriceUnavailable", err)
	}
	// A was still refreshed, B and C kept their last price.
	if got := p.Security("A").Price(); !got.Equal(M(120, "EUR")) {
		t.Errorf("A price = %s, want 120", got)
	}
	if got := p.Security("B").Price(); !got.Equal(M(50, "EUR")) {
		t.Errorf("B price = %s, want 50", got)
	}
	if got := p.Security("C").Price(); !got.Equal(M(10, "EUR")) {
		t.Errorf("C price = %s, want 10", got)
	}
}

func TestInfo(t *testing.T) {
	p := NewPortfolio("EUR")
	air, err := NewSecurity("Airbus", "AIR.PA", "EUR", M(100, "EUR"), Q(6), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	nvda, err := NewSecurity("Nvidia", "NVDA", "USD", M(100, "USD"), Q(8), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, sec := range []*Security{air, nvda} {
		if err := p.AddSecurity(sec); err != nil {
			t.Fatal(err)
		}
	}
	rates := Rates{}
	rates.Set("USD", "EUR", 0.5)

	info, err := p.Info(rates)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Currency != "EUR" {
		t.Errorf("Currency = %s, want EUR", info.Currency)
	}
	if !info.TotalValue.Equal(M(1000, "EUR")) {
		t.Errorf("TotalValue = %s, want 1000", info.TotalValue)
	}
	if len(info.Securities) != 2 {
		t.Fatalf("len(Securities) = %d, want 2", len(info.Securities))
	}
	got := info.Securities[1]
	if got.Ticker != "NVDA" || got.Name != "Nvidia" {
		t.Errorf("Securities[1] = %s %s, insertion order lost", got.Ticker, got.Name)
	}
	if !got.Price.Equal(M(100, "USD")) {
		t.Errorf("NVDA price = %s, want 100 USD", got.Price)
	}
	if !got.Value.Equal(M(400, "EUR")) {
		t.Errorf("NVDA value = %s, want 400 EUR", got.Value)
	}
	if !got.Actual.Equal(0.4) {
		t.Errorf("NVDA actual = %v, want 0.4", got.Actual)
	}
}
