package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/google/subcommands"
)

// decodeLedger reads the ledger file, a missing file is an empty ledger.
func decodeLedger() (*portfolio.Ledger, error) {
	f, err := os.Open(cfg.LedgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infow("ledger does not exist, starting empty", "file", cfg.LedgerFile)
		return portfolio.NewLedger(cfg.Currency), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ledger, err := portfolio.DecodeLedger(f, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", cfg.LedgerFile, err)
	}
	return ledger, nil
}

// decodePrices reads the price file, a missing file is an empty table.
func decodePrices() (*portfolio.PriceTable, error) {
	table := portfolio.NewPriceTable(cfg.Currency)
	f, err := os.Open(cfg.PriceFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infow("price file does not exist, starting empty", "file", cfg.PriceFile)
		return table, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := portfolio.DecodePrices(cfg.PriceFile, f, table); err != nil {
		return nil, err
	}
	return table, nil
}

// encodePrices replaces the price file.
func encodePrices(table *portfolio.PriceTable) error {
	dir := filepath.Dir(cfg.PriceFile)
	tmp, err := os.CreateTemp(dir, ".prices-*.jsonl")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := portfolio.EncodePrices(tmp, table); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), cfg.PriceFile)
}

// openAccountingSystem loads the ledger and the prices of the configured portfolio.
func openAccountingSystem() (*portfolio.AccountingSystem, error) {
	ledger, err := decodeLedger()
	if err != nil {
		return nil, err
	}
	prices, err := decodePrices()
	if err != nil {
		return nil, err
	}
	return portfolio.NewAccountingSystem(cfg.Portfolio(), ledger, prices)
}

// appendTransaction appends a transaction to the ledger file.
func appendTransaction(tx portfolio.Transaction) subcommands.ExitStatus {
	filename := cfg.LedgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := portfolio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	logger.Infow("transaction recorded", "id", tx.ID, "type", tx.Type, "ticker", tx.Ticker)
	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// parseDate parses a date flag, empty means today.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
