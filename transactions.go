package portfolio

import (
	"fmt"
	"strings"

	"github.com/etnz/modelfolio/date"
)

// TxType is the kind of a transaction.
type TxType string

const (
	Buy  TxType = "BUY"
	Sell TxType = "SELL"
)

// ParseTxType parses "buy" or "sell", case insensitive.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Buy, Sell:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q want BUY or SELL", s)
	}
}

// DefaultExchange is the exchange assumed when a transaction does not name one.
const DefaultExchange = "NSE"

// Transaction is one buy or sell of a ticker.
//
// Transactions are immutable once recorded: the ledger is only ever appended to.
type Transaction struct {
	ID       string
	Type     TxType
	Ticker   string
	Exchange string
	Quantity Quantity // number of shares, a positive integer
	Price    Money    // price per share
	Date     date.Date
	Sector   string // optional
	Notes    string // optional
}

// NewBuy returns a BUY transaction.
func NewBuy(on date.Date, ticker string, quantity int, price float64) Transaction {
	return Transaction{Type: Buy, Ticker: ticker, Quantity: Q(quantity), Price: M(price, ""), Date: on}
}

// NewSell returns a SELL transaction.
func NewSell(on date.Date, ticker string, quantity int, price float64) Transaction {
	return Transaction{Type: Sell, Ticker: ticker, Quantity: Q(quantity), Price: M(price, ""), Date: on}
}

// WithSector returns a copy of the transaction tagged with a sector.
func (tx Transaction) WithSector(sector string) Transaction {
	tx.Sector = sector
	return tx
}

// Amount is the total value exchanged: quantity × price.
func (tx Transaction) Amount() Money { return tx.Price.Mul(tx.Quantity) }

// normalize applies the quick fixes a recorded transaction gets: upper case
// ticker, default exchange and currency.
func (tx Transaction) normalize(currency string) Transaction {
	tx.Ticker = strings.ToUpper(strings.TrimSpace(tx.Ticker))
	tx.Sector = strings.TrimSpace(tx.Sector)
	if tx.Exchange == "" {
		tx.Exchange = DefaultExchange
	}
	if tx.Price.cur == "" {
		tx.Price.cur = currency
	}
	return tx
}

// Validate checks the transaction on its own, regardless of any ledger.
//
// It does not detect oversells, use Ledger.Validate for that.
func (tx Transaction) Validate() error {
	switch {
	case tx.Type != Buy && tx.Type != Sell:
		return invalid(tx, "unknown type %q", tx.Type)
	case strings.TrimSpace(tx.Ticker) == "":
		return invalid(tx, "ticker is missing")
	case tx.Date.IsZero():
		return invalid(tx, "date is missing")
	case !tx.Quantity.IsPositive():
		return invalid(tx, "quantity must be positive")
	case !tx.Quantity.IsInteger():
		return invalid(tx, "quantity must be a whole number of shares")
	case !tx.Price.IsPositive():
		return invalid(tx, "price must be positive")
	}
	return nil
}
