package foliotrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains code to persist a portfolio as a single JSON document,
// human-readable and git-friendly. The document holds the reporting
// currency, the security definitions, and the full transaction history, so
// that decoding yields a portfolio equal to the encoded one.

// encodeSecurity writes a security definition with a stable field order.
func encodeSecurity(s *Security) ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("name", s.name)
	w.Append("ticker", s.ticker)
	w.Append("currency", s.currency)
	w.Append("price", s.price.value)
	w.Append("volume", s.volume)
	w.Append("target", float64(s.target))
	return w.MarshalJSON()
}

// jsecurity is the object read from the document using the json parser.
type jsecurity struct {
	Name     string          `json:"name"`
	Ticker   string          `json:"ticker"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
	Volume   Quantity        `json:"volume"`
	Target   float64         `json:"target"`
}

// EncodePortfolio writes the portfolio as an indented JSON document.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	doc := &jsonObjectWriter{}
	doc.Append("currency", p.currency)

	securities := make([]json.RawMessage, 0, len(p.securities))
	for _, sec := range p.securities {
		b, err := encodeSecurity(sec)
		if err != nil {
			return fmt.Errorf("could not encode security %s: %w", sec.ticker, err)
		}
		securities = append(securities, b)
	}
	doc.Append("securities", securities)

	history := make([]json.RawMessage, 0, len(p.history))
	for _, tx := range p.history {
		b, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("could not encode transaction: %w", err)
		}
		history = append(history, b)
	}
	doc.Append("history", history)

	compact, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// DecodePortfolio reads a portfolio document written by EncodePortfolio.
//
// Security definitions are validated on the way in, so a hand-edited
// document with a negative price or a target outside [0,1] is rejected.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var doc struct {
		Currency   string            `json:"currency"`
		Securities []json.RawMessage `json:"securities"`
		History    []json.RawMessage `json:"history"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse portfolio document: %w", err)
	}

	p := NewPortfolio(doc.Currency)
	for _, raw := range doc.Securities {
		var js jsecurity
		if err := json.Unmarshal(raw, &js); err != nil {
			return nil, fmt.Errorf("format error in security %q: %w", string(raw), err)
		}
		sec, err := NewSecurity(js.Name, js.Ticker, js.Currency, M(js.Price, js.Currency), js.Volume, Percent(js.Target))
		if err != nil {
			return nil, fmt.Errorf("invalid security %q: %w", js.Ticker, err)
		}
		if err := p.AddSecurity(sec); err != nil {
			return nil, err
		}
	}

	for _, raw := range doc.History {
		tx, err := decodeTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("format error in history entry %q: %w", string(raw), err)
		}
		// Every history event references a security of the portfolio;
		// sold-to-zero entries are retained for that reason.
		if !p.Has(tx.Ticker()) {
			return nil, fmt.Errorf("%w: history entry references %q", ErrUnknownTicker, tx.Ticker())
		}
		p.history = append(p.history, tx)
	}
	return p, nil
}
