package foliotrack

import (
	"errors"
	"testing"
)

func TestEvolutionReplay(t *testing.T) {
	p := newTestPortfolio(t, "EUR",
		row{"A", 100, 0, 0.5},
		row{"B", 10, 0, 0.5},
	)
	if err := p.Buy("A", Q(2), M(100, "EUR"), NewDate(2025, 1, 2), M(0, "EUR")); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("B", Q(10), M(10, "EUR"), NewDate(2025, 1, 3), M(0, "EUR")); err != nil {
		t.Fatal(err)
	}
	if err := p.Sell("A", Q(1), NewDate(2025, 1, 6)); err != nil {
		t.Fatal(err)
	}

	table := NewQuoteTable()
	// Quotes start before the first trade; the pre-trade day is skipped.
	for day, close := range map[Date]float64{
		NewDate(2025, 1, 1): 90,
		NewDate(2025, 1, 2): 100,
		NewDate(2025, 1, 3): 110,
		NewDate(2025, 1, 6): 120,
	} {
		table.Add("A", day, Quote{Close: close})
	}
	table.Add("B", NewDate(2025, 1, 3), Quote{Close: 10})
	// B has no quote on Jan 6: the Jan 3 close is carried forward.

	evo, err := p.Evolution(table, nil)
	if err != nil {
		t.Fatalf("Evolution: %v", err)
	}
	if len(evo.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3: %+v", len(evo.Points), evo.Points)
	}

	// Jan 2: 2 A at 100.
	pt := evo.Points[0]
	if pt.Date != NewDate(2025, 1, 2) {
		t.Errorf("Points[0].Date = %s, want 2025-01-02", pt.Date)
	}
	if !pt.Volumes["A"].Equal(Q(2)) || !pt.Traded["A"].Equal(Q(2)) {
		t.Errorf("Points[0] A volumes = %s traded = %s, want 2 and 2", pt.Volumes["A"], pt.Traded["A"])
	}
	if !pt.Value.Equal(M(200, "EUR")) {
		t.Errorf("Points[0].Value = %s, want 200", pt.Value)
	}

	// Jan 3: 2 A at 110 plus 10 B at 10.
	pt = evo.Points[1]
	if !pt.Value.Equal(M(320, "EUR")) {
		t.Errorf("Points[1].Value = %s, want 320", pt.Value)
	}
	if len(pt.Traded) != 1 || !pt.Traded["B"].Equal(Q(10)) {
		t.Errorf("Points[1].Traded = %v, want B:10", pt.Traded)
	}

	// Jan 6: 1 A at 120 plus 10 B at the carried-forward 10.
	pt = evo.Points[2]
	if !pt.Volumes["A"].Equal(Q(1)) {
		t.Errorf("Points[2] A volume = %s, want 1", pt.Volumes["A"])
	}
	if !pt.Traded["A"].Equal(Q(-1)) {
		t.Errorf("Points[2] A traded = %s, want -1", pt.Traded["A"])
	}
	if !pt.Value.Equal(M(220, "EUR")) {
		t.Errorf("Points[2].Value = %s, want 220", pt.Value)
	}

	if last := evo.Last(); last == nil || last.Date != NewDate(2025, 1, 6) {
		t.Errorf("Last() = %+v, want the 2025-01-06 point", last)
	}
}

func TestEvolutionEmptyHistory(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 5, 1})
	table := NewQuoteTable()
	table.Add("A", NewDate(2025, 1, 2), Quote{Close: 100})

	evo, err := p.Evolution(table, nil)
	if err != nil {
		t.Fatalf("Evolution: %v", err)
	}
	if len(evo.Points) != 0 {
		t.Errorf("len(Points) = %d, want 0 without transactions", len(evo.Points))
	}
	if evo.Last() != nil {
		t.Error("Last() != nil for empty evolution")
	}
}

func TestEvolutionMissingQuote(t *testing.T) {
	p := newTestPortfolio(t, "EUR", row{"A", 100, 0, 1})
	if err := p.Buy("A", Q(1), M(100, "EUR"), NewDate(2025, 1, 2), M(0, "EUR")); err != nil {
		t.Fatal(err)
	}
	// The table has a day on which A was held but never quoted.
	table := NewQuoteTable()
	table.Add("B", NewDate(2025, 1, 2), Quote{Close: 1})

	if _, err := p.Evolution(table, nil); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("Evolution() error = %v, want ErrPriceUnavailable", err)
	}
}

func TestEvolutionForeignCurrency(t *testing.T) {
	p := NewPortfolio("EUR")
	sec, err := NewSecurity("N", "N", "USD", M(100, "USD"), Q(0), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddSecurity(sec); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("N", Q(2), M(100, "USD"), NewDate(2025, 1, 2), M(0, "USD")); err != nil {
		t.Fatal(err)
	}

	table := NewQuoteTable()
	table.SetCurrency("N", "USD")
	table.Add("N", NewDate(2025, 1, 2), Quote{Close: 110})

	rates := Rates{}
	rates.Set("USD", "EUR", 0.5)

	evo, err := p.Evolution(table, rates)
	if err != nil {
		t.Fatalf("Evolution: %v", err)
	}
	if got := evo.Points[0].Value; !got.Equal(M(110, "EUR")) {
		t.Errorf("Value = %s, want 110 EUR", got)
	}

	// Without the rate the replay fails.
	if _, err := p.Evolution(table, nil); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Evolution() error = %v, want ErrRateUnavailable", err)
	}
}
