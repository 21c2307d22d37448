package portfolio

import (
	"errors"
	"fmt"

	"github.com/etnz/modelfolio/date"
)

// ErrInvalidTransaction is matched by every error caused by a transaction
// that cannot be part of a ledger: non positive quantity or price, or a sell
// exceeding the quantity held.
var ErrInvalidTransaction = errors.New("invalid transaction")

// InvalidTransactionError details why a transaction was rejected.
type InvalidTransactionError struct {
	Index  int // position in the ledger, -1 when the transaction is not in a ledger
	Tx     Transaction
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid transaction %s %s %s on %s: %s", e.Tx.Type, e.Tx.Quantity, e.Tx.Ticker, e.Tx.Date, e.Reason)
	}
	return fmt.Sprintf("invalid transaction #%d %s %s %s on %s: %s", e.Index, e.Tx.Type, e.Tx.Quantity, e.Tx.Ticker, e.Tx.Date, e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error { return ErrInvalidTransaction }

func invalid(tx Transaction, format string, args ...any) *InvalidTransactionError {
	return &InvalidTransactionError{Index: -1, Tx: tx, Reason: fmt.Sprintf(format, args...)}
}

// ErrMissingPriceData is matched by MissingPriceData.
var ErrMissingPriceData = errors.New("missing price data")

// MissingPriceData records a holding valued at its average cost because the
// price table had no close for it.
//
// It is informational: NAV and valuations never fail because of it.
type MissingPriceData struct {
	Ticker  string
	On      date.Date
	AvgCost Money
}

func (m MissingPriceData) Error() string {
	return fmt.Sprintf("no price for %s on %s, valued at average cost %s", m.Ticker, m.On, m.AvgCost)
}

func (m MissingPriceData) Unwrap() error { return ErrMissingPriceData }
