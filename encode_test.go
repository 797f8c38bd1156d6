package foliotrack

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPortfolioRoundTrip(t *testing.T) {
	p := NewPortfolio("EUR")
	air, err := NewSecurity("Airbus", "AIR.PA", "EUR", M(172.5, "EUR"), Q(0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	nvda, err := NewSecurity("Nvidia", "NVDA", "USD", M(110, "USD"), Q(0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, sec := range []*Security{air, nvda} {
		if err := p.AddSecurity(sec); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Buy("AIR.PA", Q(10), M(170, "EUR"), NewDate(2025, 1, 15), M(2, "EUR")); err != nil {
		t.Fatal(err)
	}
	if err := p.Buy("NVDA", Q(3.5), M(108.2, "USD"), NewDate(2025, 2, 1), M(0, "USD")); err != nil {
		t.Fatal(err)
	}
	if err := p.Sell("AIR.PA", Q(4), NewDate(2025, 3, 1)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio: %v", err)
	}

	got, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio: %v\ndocument:\n%s", err, buf.String())
	}
	if !got.Equal(p) {
		t.Errorf("round trip mismatch\ndocument:\n%s", buf.String())
	}
}

func TestEncodeStableOrder(t *testing.T) {
	p := NewPortfolio("EUR")
	sec, err := NewSecurity("Airbus", "AIR.PA", "EUR", M(172.5, "EUR"), Q(2), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddSecurity(sec); err != nil {
		t.Fatal(err)
	}

	var a, b bytes.Buffer
	if err := EncodePortfolio(&a, p); err != nil {
		t.Fatal(err)
	}
	if err := EncodePortfolio(&b, p); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("two encodings of the same portfolio differ")
	}

	// Field order is fixed, not alphabetical.
	doc := a.String()
	if !(strings.Index(doc, `"currency"`) < strings.Index(doc, `"securities"`) &&
		strings.Index(doc, `"securities"`) < strings.Index(doc, `"history"`)) {
		t.Errorf("unexpected field order in document:\n%s", doc)
	}
}

func TestDecodeInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			"not json",
			`{`,
			nil, // any error is fine
		},
		{
			"negative price",
			`{"currency":"EUR","securities":[{"name":"A","ticker":"A","currency":"EUR","price":-1,"volume":0,"target":0}],"history":[]}`,
			ErrInvalidSecurity,
		},
		{
			"target above one",
			`{"currency":"EUR","securities":[{"name":"A","ticker":"A","currency":"EUR","price":1,"volume":0,"target":1.5}],"history":[]}`,
			ErrInvalidSecurity,
		},
		{
			"duplicate ticker",
			`{"currency":"EUR","securities":[{"name":"A","ticker":"A","currency":"EUR","price":1,"volume":0,"target":0},{"name":"A2","ticker":"A","currency":"EUR","price":1,"volume":0,"target":0}],"history":[]}`,
			ErrDuplicateTicker,
		},
		{
			"unknown command",
			`{"currency":"EUR","securities":[],"history":[{"command":"split","date":"2025-01-01"}]}`,
			nil,
		},
		{
			"history references unknown ticker",
			`{"currency":"EUR","securities":[{"name":"A","ticker":"A","currency":"EUR","price":1,"volume":0,"target":0}],"history":[{"command":"buy","date":"2025-01-01","security":"B","volume":1,"price":1,"fee":0,"currency":"EUR"}]}`,
			ErrUnknownTicker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePortfolio(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("DecodePortfolio() error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("DecodePortfolio() error = %v, want %v", err, tt.want)
			}
		})
	}
}
