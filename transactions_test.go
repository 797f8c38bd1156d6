package foliotrack

import (
	"encoding/json"
	"testing"
)

func TestBuyMarshalJSON(t *testing.T) {
	buy := NewBuy(NewDate(2025, 1, 15), "AIR.PA", Q(10), M(170.5, "EUR"), M(2, "EUR"))
	data, err := json.Marshal(buy)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"command":"buy","date":"2025-01-15","security":"AIR.PA","volume":10,"price":170.5,"fee":2,"currency":"EUR"}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
	}{
		{"buy", NewBuy(NewDate(2025, 1, 15), "AIR.PA", Q(10), M(170.5, "EUR"), M(2, "EUR"))},
		{"fractional buy", NewBuy(NewDate(2025, 2, 1), "NVDA", Q(3.5), M(108.2, "USD"), M(0, "USD"))},
		{"sell", NewSell(NewDate(2025, 3, 1), "AIR.PA", Q(4), M(180, "EUR"), M(0, "EUR"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.tx)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, err := decodeTransaction(data)
			if err != nil {
				t.Fatalf("decodeTransaction(%s): %v", data, err)
			}
			if !got.Equal(tt.tx) {
				t.Errorf("round trip mismatch: %s", data)
			}
		})
	}
}

func TestDecodeTransactionUnknownCommand(t *testing.T) {
	if _, err := decodeTransaction([]byte(`{"command":"split","date":"2025-01-01"}`)); err == nil {
		t.Error("decodeTransaction() error = nil, want error for unknown command")
	}
	if _, err := decodeTransaction([]byte(`not json`)); err == nil {
		t.Error("decodeTransaction() error = nil, want error for invalid json")
	}
}

func TestSignedVolume(t *testing.T) {
	buy := NewBuy(NewDate(2025, 1, 15), "A", Q(10), M(1, "EUR"), M(0, "EUR"))
	if got := buy.SignedVolume(); !got.Equal(Q(10)) {
		t.Errorf("buy SignedVolume = %s, want 10", got)
	}
	sell := NewSell(NewDate(2025, 1, 16), "A", Q(4), M(1, "EUR"), M(0, "EUR"))
	if got := sell.SignedVolume(); !got.Equal(Q(-4)) {
		t.Errorf("sell SignedVolume = %s, want -4", got)
	}
}

func TestTransactionEqual(t *testing.T) {
	buy := NewBuy(NewDate(2025, 1, 15), "A", Q(10), M(1, "EUR"), M(0, "EUR"))
	sell := NewSell(NewDate(2025, 1, 15), "A", Q(10), M(1, "EUR"), M(0, "EUR"))
	if buy.Equal(sell) {
		t.Error("a buy equals a sell")
	}
	other := NewBuy(NewDate(2025, 1, 15), "A", Q(10), M(1, "EUR"), M(0, "EUR"))
	if !buy.Equal(other) {
		t.Error("identical buys are not Equal")
	}
}
