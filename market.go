package portfolio

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

// PriceTable holds daily closing prices per symbol, for held tickers and
// benchmark indices alike.
//
// It is read-only reference data once loaded: the engine never writes to it.
type PriceTable struct {
	currency string
	closes   map[string]*date.History[decimal.Decimal]
}

// NewPriceTable returns an empty price table quoting in 'currency'.
func NewPriceTable(currency string) *PriceTable {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PriceTable{
		currency: currency,
		closes:   make(map[string]*date.History[decimal.Decimal]),
	}
}

func normalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// Add records the close of 'symbol' on a day, replacing any previous value.
func (t *PriceTable) Add(symbol string, on date.Date, close decimal.Decimal) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return fmt.Errorf("price on %s has no symbol", on)
	}
	if !close.IsPositive() {
		return fmt.Errorf("invalid close %s for %s on %s: must be positive", close, symbol, on)
	}
	h, ok := t.closes[symbol]
	if !ok {
		h = new(date.History[decimal.Decimal])
		t.closes[symbol] = h
	}
	h.Append(on, close)
	return nil
}

// Currency returns the currency of every close.
func (t *PriceTable) Currency() string { return t.currency }

// Has reports whether the table holds at least one close for 'symbol'.
func (t *PriceTable) Has(symbol string) bool {
	_, ok := t.closes[normalizeSymbol(symbol)]
	return ok
}

// Symbols returns the sorted list of symbols.
func (t *PriceTable) Symbols() []string {
	symbols := make([]string, 0, len(t.closes))
	for s := range t.closes {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// History returns the closes of 'symbol', or nil.
func (t *PriceTable) History(symbol string) *date.History[decimal.Decimal] {
	return t.closes[normalizeSymbol(symbol)]
}

// Close returns the close of 'symbol' observed exactly on 'on'.
func (t *PriceTable) Close(symbol string, on date.Date) (Money, bool) {
	h := t.History(symbol)
	if h == nil {
		return Money{}, false
	}
	v, ok := h.Get(on)
	if !ok {
		return Money{}, false
	}
	return M(v, t.currency), true
}

// CloseAsOf returns the latest close of 'symbol' on or before 'on', with the
// day it was observed.
func (t *PriceTable) CloseAsOf(symbol string, on date.Date) (date.Date, Money, bool) {
	h := t.History(symbol)
	if h == nil {
		return date.Date{}, Money{}, false
	}
	day, v, ok := h.ValueAsOf(on)
	if !ok {
		return date.Date{}, Money{}, false
	}
	return day, M(v, t.currency), true
}

// Latest returns the last day with a close for any of the symbols.
func (t *PriceTable) Latest(symbols ...string) date.Date {
	var latest date.Date
	for _, s := range symbols {
		h := t.History(s)
		if h == nil || h.Len() == 0 {
			continue
		}
		if day, _ := h.Latest(); day.After(latest) {
			latest = day
		}
	}
	return latest
}

// PricePolicy decides how a holding is valued on a day without a close.
type PricePolicy int

const (
	// CostFallback values the holding at its average cost.
	CostFallback PricePolicy = iota
	// CarryForward uses the last close before the day, falling back to the
	// average cost when there is none.
	CarryForward
)

func (p PricePolicy) String() string {
	switch p {
	case CostFallback:
		return "fallback"
	case CarryForward:
		return "carry"
	default:
		return fmt.Sprintf("PricePolicy(%d)", int(p))
	}
}

// ParsePricePolicy parses "fallback" or "carry".
func ParsePricePolicy(s string) (PricePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fallback":
		return CostFallback, nil
	case "carry":
		return CarryForward, nil
	default:
		return CostFallback, fmt.Errorf("unknown price policy %q want fallback or carry", s)
	}
}

// PriceSource tells where a Price comes from.
type PriceSource int

const (
	PriceFound           PriceSource = iota // close observed on the day
	PriceCarried                            // last close before the day
	PriceMissingFallback                    // no close, average cost used
)

func (s PriceSource) String() string {
	switch s {
	case PriceFound:
		return "found"
	case PriceCarried:
		return "carried"
	case PriceMissingFallback:
		return "fallback"
	default:
		return fmt.Sprintf("PriceSource(%d)", int(s))
	}
}

// Price is the unit value used for a holding on a day.
type Price struct {
	Value  Money
	Source PriceSource
	On     date.Date // day of the observation, zero for a fallback
}

// IsFallback reports whether the average cost was used.
func (p Price) IsFallback() bool { return p.Source == PriceMissingFallback }

// Lookup returns the price of 'symbol' on 'on' according to 'policy'.
//
// It never fails: without a usable close the holding's average cost is
// returned, tagged PriceMissingFallback.
func (t *PriceTable) Lookup(symbol string, on date.Date, avgCost Money, policy PricePolicy) Price {
	if v, ok := t.Close(symbol, on); ok {
		return Price{Value: v, Source: PriceFound, On: on}
	}
	if policy == CarryForward {
		if day, v, ok := t.CloseAsOf(symbol, on); ok {
			return Price{Value: v, Source: PriceCarried, On: day}
		}
	}
	return Price{Value: avgCost, Source: PriceMissingFallback}
}
