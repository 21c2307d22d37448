package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

// Price files are JSONL, one close per line:
//
//	{"symbol":"RELIANCE.NS","date":"2024-01-02","close":2585.25}
//
// Lines are written grouped by symbol, in alphabetical order, then by date,
// so that files stay diff friendly.

type jsonClose struct {
	Symbol string          `json:"symbol"`
	Date   date.Date       `json:"date"`
	Close  decimal.Decimal `json:"close"`
}

// DecodePrices reads closes into 'table'. filename is for error messages only.
func DecodePrices(filename string, r io.Reader, table *PriceTable) error {
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		var jc jsonClose
		if err := json.Unmarshal([]byte(txt), &jc); err != nil {
			return fmt.Errorf("parse error %s:%v: not a correct json: %w", filename, i, err)
		}
		if jc.Date.IsZero() {
			return fmt.Errorf("parse error %s:%v: missing the property %q with a date", filename, i, "date")
		}
		if err := table.Add(jc.Symbol, jc.Date, jc.Close); err != nil {
			return fmt.Errorf("parse error %s:%v: %w", filename, i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %s: %w", filename, err)
	}
	return nil
}

// EncodePrices writes every close of the table.
func EncodePrices(w io.Writer, table *PriceTable) error {
	enc := json.NewEncoder(w)
	for _, symbol := range table.Symbols() {
		for day, c := range table.History(symbol).Values() {
			if err := enc.Encode(jsonClose{Symbol: symbol, Date: day, Close: c}); err != nil {
				return fmt.Errorf("cannot write close of %s on %s: %w", symbol, day, err)
			}
		}
	}
	return nil
}
