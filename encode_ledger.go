package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonTransaction is a ledger line.
type jsonTransaction struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Date     date.Date       `json:"date"`
	Ticker   string          `json:"ticker"`
	Exchange string          `json:"exchange"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Sector   string          `json:"sector"`
	Notes    string          `json:"notes"`
}

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns a chronological Ledger in 'currency'.
//
// Transactions are only parsed: use Ledger.Validate or Replay to check them.
func DecodeLedger(r io.Reader, currency string) (*Ledger, error) {
	ledger := NewLedger(currency)
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var jtx jsonTransaction
		if err := json.Unmarshal(lineBytes, &jtx); err != nil {
			return nil, fmt.Errorf("line %d: cannot parse transaction %q: %w", line, string(lineBytes), err)
		}
		typ, err := ParseTxType(jtx.Type)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, Transaction{
			ID:       jtx.ID,
			Type:     typ,
			Ticker:   jtx.Ticker,
			Exchange: jtx.Exchange,
			Quantity: Q(jtx.Quantity),
			Price:    M(jtx.Price, ledger.Currency()),
			Date:     jtx.Date,
			Sector:   jtx.Sector,
			Notes:    jtx.Notes,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	ledger.Append(txs...)
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSON line with a
// stable key order. Empty optional fields are omitted.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var obj jsonObjectWriter
	obj.Optional("id", tx.ID).
		Append("type", tx.Type).
		Append("date", tx.Date).
		Append("ticker", tx.Ticker).
		Optional("exchange", tx.Exchange).
		Append("quantity", tx.Quantity).
		Append("price", tx.Price).
		Optional("sector", tx.Sector).
		Optional("notes", tx.Notes)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes every transaction in chronological order, in JSONL format.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
