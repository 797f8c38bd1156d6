package foliotrack

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string identifying transaction commands.
type CommandType string

const (
	CmdBuy  CommandType = "buy"
	CmdSell CommandType = "sell"
)

// Transaction defines the common interface for the events recorded in a
// portfolio's history. History is append-only; insertion order is the
// chronological order of recording.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction.
	When() Date        // When returns the date on which the transaction occurred.
	Ticker() string    // Ticker returns the security the transaction refers to.
	// SignedVolume returns the traded volume, positive for a buy and
	// negative for a sell.
	SignedVolume() Quantity
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"` // Command specifies the type of transaction.
	Date    Date        `json:"date"`    // Date is the date when the transaction took place.
}

// What returns the command name of the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// secCmd is the component common to security-based transactions.
type secCmd struct {
	baseCmd
	Security string `json:"security"` // Security is the ticker symbol involved.
}

func (t secCmd) Ticker() string { return t.Security }

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// amountCmd is a specialized struct to read price and fee with their
// currency from the history document.
type amountCmd struct {
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
}

func (a amountCmd) PriceMoney() Money { return M(a.Price, a.Currency) }
func (a amountCmd) FeeMoney() Money   { return M(a.Fee, a.Currency) }

// Buy records the purchase of a volume of a security at a given unit price,
// plus an optional brokerage fee.
type Buy struct {
	secCmd
	Volume Quantity // Number of units bought.
	Price  Money    // Unit price at transaction time, in the security currency.
	Fee    Money    // Transaction fee, zero when not charged.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, security string, volume Quantity, price, fee Money) Buy {
	return Buy{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day}, Security: security},
		Volume: volume,
		Price:  price,
		Fee:    fee,
	}
}

func (t Buy) SignedVolume() Quantity { return t.Volume }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("volume", t.Volume)
	w.Append("price", t.Price.value)
	w.Append("fee", t.Fee.value)
	w.Append("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// Price, fee and currency are separate fields in the document.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Volume Quantity `json:"volume"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Volume = temp.Volume
	t.Price = temp.PriceMoney()
	t.Fee = temp.FeeMoney()
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd == o.secCmd && t.Volume.Equal(o.Volume) &&
		t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee)
}

// Sell records the disposal of a volume of a security at a given unit price.
type Sell struct {
	secCmd
	Volume Quantity // Number of units sold, always positive.
	Price  Money    // Unit price at transaction time, in the security currency.
	Fee    Money    // Transaction fee, zero when not charged.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, security string, volume Quantity, price, fee Money) Sell {
	return Sell{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day}, Security: security},
		Volume: volume,
		Price:  price,
		Fee:    fee,
	}
}

func (t Sell) SignedVolume() Quantity { return t.Volume.Neg() }

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("volume", t.Volume)
	w.Append("price", t.Price.value)
	w.Append("fee", t.Fee.value)
	w.Append("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Volume Quantity `json:"volume"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Volume = temp.Volume
	t.Price = temp.PriceMoney()
	t.Fee = temp.FeeMoney()
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd == o.secCmd && t.Volume.Equal(o.Volume) &&
		t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee)
}

// decodeTransaction decodes a single history entry into the appropriate
// transaction struct, dispatching on its command field.
func decodeTransaction(data []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(data), err)
	}
	switch identifier.Command {
	case CmdBuy:
		var tx Buy
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdSell:
		var tx Sell
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	default:
		return nil, errors.New("unsupported transaction command: " + string(identifier.Command))
	}
}
