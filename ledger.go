package portfolio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/etnz/modelfolio/date"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order. Transactions on
// the same day keep the order in which they were appended.
type Ledger struct {
	transactions []Transaction
	currency     string
}

// NewLedger creates an empty ledger whose amounts are in 'currency'
// (DefaultCurrency if empty).
func NewLedger(currency string) *Ledger {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Ledger{
		transactions: make([]Transaction, 0),
		currency:     currency,
	}
}

// ValidateCurrency checks that 'code' is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// Currency returns the currency of every amount in the ledger.
func (l *Ledger) Currency() string { return l.currency }

// Append adds transactions to the ledger, keeping it chronological.
//
// Append does not validate, see Validate.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		l.transactions = append(l.transactions, tx.normalize(l.currency))
	}
	l.stableSort()
}

// stableSort sorts by date, same-day transactions keep their relative order.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// At returns the i-th transaction in chronological order.
func (l *Ledger) At(i int) Transaction { return l.transactions[i] }

// Transactions iterates over the ledger in chronological order, with the
// index of each transaction.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return slices.All(l.transactions)
}

// Range returns the dates of the first and last transactions.
func (l *Ledger) Range() (date.Range, bool) {
	if len(l.transactions) == 0 {
		return date.Range{}, false
	}
	return date.Range{From: l.transactions[0].Date, To: l.transactions[len(l.transactions)-1].Date}, true
}

// Tickers returns every ticker appearing in the ledger, sorted.
func (l *Ledger) Tickers() []string {
	seen := make(map[string]struct{})
	var tickers []string
	for _, tx := range l.transactions {
		if _, ok := seen[tx.Ticker]; !ok {
			seen[tx.Ticker] = struct{}{}
			tickers = append(tickers, tx.Ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// ForTicker returns the transactions of one ticker in ledger order.
func (l *Ledger) ForTicker(ticker string) []Transaction {
	var txs []Transaction
	for _, tx := range l.transactions {
		if tx.Ticker == ticker {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Validate checks that 'tx' can be appended to the ledger: the transaction
// must be valid on its own, and appending it must not make any sell exceed the
// quantity held at that point.
func (l *Ledger) Validate(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if c := tx.Price.Currency(); c != "" && c != l.currency {
		return invalid(tx, "price in %s but ledger in %s", c, l.currency)
	}
	candidate := &Ledger{
		transactions: slices.Clone(l.transactions),
		currency:     l.currency,
	}
	candidate.Append(tx)
	if _, err := Replay(candidate, date.Date{}); err != nil {
		return err
	}
	return nil
}
