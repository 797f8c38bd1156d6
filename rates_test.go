package foliotrack

import (
	"context"
	"errors"
	"testing"
)

func TestRatesConvert(t *testing.T) {
	rates := Rates{}
	rates.Set("USD", "EUR", 0.8)

	got, err := rates.Convert(M(100, "USD"), "EUR")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(M(80, "EUR")) {
		t.Errorf("Convert = %s, want 80 EUR", got)
	}

	// The reverse pair is derived by inversion.
	got, err = rates.Convert(M(80, "EUR"), "USD")
	if err != nil {
		t.Fatalf("Convert reverse: %v", err)
	}
	if !got.Equal(M(100, "USD")) {
		t.Errorf("Convert reverse = %s, want 100 USD", got)
	}
}

func TestRatesConvertIdentity(t *testing.T) {
	var rates Rates // nil table

	// Same currency needs no rate.
	got, err := rates.Convert(M(42, "EUR"), "EUR")
	if err != nil || !got.Equal(M(42, "EUR")) {
		t.Errorf("Convert same currency = %s, %v", got, err)
	}
	// The weak "" currency adopts the destination.
	got, err = rates.Convert(M(42, ""), "EUR")
	if err != nil || !got.Equal(M(42, "EUR")) {
		t.Errorf("Convert weak currency = %s, %v", got, err)
	}
	// Zero amounts convert to zero in any currency.
	got, err = rates.Convert(M(0, "USD"), "EUR")
	if err != nil || !got.Equal(M(0, "EUR")) {
		t.Errorf("Convert zero = %s, %v", got, err)
	}
}

func TestRatesConvertMissing(t *testing.T) {
	rates := Rates{}
	rates.Set("USD", "EUR", 0.8)
	if _, err := rates.Convert(M(1, "GBP"), "EUR"); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Convert() error = %v, want ErrRateUnavailable", err)
	}
}

func TestFetchRates(t *testing.T) {
	gateway := stubGateway{prices: map[string]Money{
		"USDEUR=X": M(0.92, "EUR"),
	}}

	rates, err := FetchRates(context.Background(), gateway, "USDEUR")
	if err != nil {
		t.Fatalf("FetchRates() = %v", err)
	}
	got, err := rates.Convert(M(100, "USD"), "EUR")
	if err != nil || !got.Equal(M(92, "EUR")) {
		t.Errorf("Convert(100 USD) = %s, %v", got, err)
	}

	// Unknown pairs and malformed pairs fail per pair, the rest is kept.
	rates, err = FetchRates(context.Background(), gateway, "USDEUR", "GBPEUR", "nope")
	if !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("FetchRates() error = %v, want ErrRateUnavailable", err)
	}
	if _, ok := rates["USDEUR"]; !ok {
		t.Errorf("FetchRates() dropped the fetchable pair")
	}
}
