package portfolio

import (
	"time"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

// INR is a helper for test to create rupees from const
func INR(v float64) Money { return M(v, "INR") }

// day is a helper for test to create dates in 2024 from month and day.
func day(m time.Month, d int) date.Date { return date.New(2024, m, d) }

// newTestLedger returns an INR ledger with the given transactions.
func newTestLedger(txs ...Transaction) *Ledger {
	l := NewLedger("INR")
	l.Append(txs...)
	return l
}

// closes is a compact price table fixture: symbol -> day -> close.
type closes map[string]map[date.Date]float64

func newTestPrices(c closes) *PriceTable {
	t := NewPriceTable("INR")
	for symbol, days := range c {
		for on, v := range days {
			if err := t.Add(symbol, on, decimal.NewFromFloat(v)); err != nil {
				panic(err)
			}
		}
	}
	return t
}
