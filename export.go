package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportHoldingsCSV writes the holdings as CSV with a header line.
func ExportHoldingsCSV(w io.Writer, holdings []Holding) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Ticker", "Exchange", "Sector", "Quantity", "Avg Cost", "Total Cost"})
	for _, h := range holdings {
		cw.Write([]string{
			h.Ticker,
			h.Exchange,
			h.Sector,
			h.Quantity.String(),
			h.AvgCost.Decimal().StringFixed(2),
			h.TotalCost.Decimal().StringFixed(2),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot export holdings: %w", err)
	}
	return nil
}

// ExportTransactionsCSV writes the ledger as CSV with a header line, latest
// transaction first. Sells carry their realized profit.
func ExportTransactionsCSV(w io.Writer, l *Ledger) error {
	annotations, err := Annotate(l)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Write([]string{"Date", "Type", "Ticker", "Quantity", "Price", "Total Value", "Realized P&L", "Notes"})
	for i := l.Len() - 1; i >= 0; i-- {
		tx := l.At(i)
		realized := ""
		if r, ok := annotations[i]; ok {
			realized = r.PnL.Decimal().StringFixed(2)
		}
		cw.Write([]string{
			tx.Date.String(),
			string(tx.Type),
			tx.Ticker,
			tx.Quantity.String(),
			tx.Price.Decimal().StringFixed(2),
			tx.Amount().Decimal().StringFixed(2),
			realized,
			tx.Notes,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot export transactions: %w", err)
	}
	return nil
}
