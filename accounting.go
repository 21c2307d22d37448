package portfolio

import (
	"fmt"

	"github.com/etnz/modelfolio/date"
)

// Portfolio is the metadata of a model portfolio.
type Portfolio struct {
	Name      string
	Benchmark string      // symbol of the benchmark index in the price table
	Currency  string      // ISO 4217 code, DefaultCurrency if empty
	Inception date.Date   // start of the NAV series, the first transaction if zero
	Policy    PricePolicy // valuation of holdings on days without a close
}

// AccountingSystem encapsulates all the data required to analyse a portfolio:
// its metadata, the record of every transaction and the price table.
//
// It is stateless: every query replays the ledger, so the same inputs always
// give the same answers and concurrent queries need no coordination.
type AccountingSystem struct {
	Portfolio Portfolio
	Ledger    *Ledger
	Prices    *PriceTable
}

// NewAccountingSystem creates a new accounting system from a ledger and a price table.
func NewAccountingSystem(p Portfolio, ledger *Ledger, prices *PriceTable) (*AccountingSystem, error) {
	if p.Currency == "" {
		p.Currency = ledger.Currency()
	}
	if err := ValidateCurrency(p.Currency); err != nil {
		return nil, fmt.Errorf("invalid portfolio currency: %w", err)
	}
	if ledger.Currency() != p.Currency {
		return nil, fmt.Errorf("ledger currency %s does not match portfolio currency %s", ledger.Currency(), p.Currency)
	}
	if prices == nil {
		prices = NewPriceTable(p.Currency)
	}
	if prices.Currency() != p.Currency {
		return nil, fmt.Errorf("prices currency %s does not match portfolio currency %s", prices.Currency(), p.Currency)
	}
	return &AccountingSystem{Portfolio: p, Ledger: ledger, Prices: prices}, nil
}

// Validate checks that a transaction can be appended to the ledger.
func (as *AccountingSystem) Validate(tx Transaction) error { return as.Ledger.Validate(tx) }

func (as *AccountingSystem) navOptions(asOf date.Date) NAVOptions {
	return NAVOptions{
		Benchmark: as.Portfolio.Benchmark,
		Inception: as.Portfolio.Inception,
		AsOf:      asOf,
		Policy:    as.Portfolio.Policy,
	}
}

// NAV returns the NAV series up to 'asOf' (up to the latest close if zero).
func (as *AccountingSystem) NAV(asOf date.Date) (NAVSeries, error) {
	return BuildNAV(as.Ledger, as.Prices, as.navOptions(asOf))
}

// Holdings values the open positions on 'asOf'.
func (as *AccountingSystem) Holdings(asOf date.Date) (HoldingReport, error) {
	asOf = orToday(asOf)
	book, err := Replay(as.Ledger, asOf)
	if err != nil {
		return HoldingReport{}, err
	}
	return valuate(book.Holdings(), as.Prices, asOf, as.Portfolio.Currency), nil
}

// Allocation breaks the portfolio market value on 'asOf' down by stock and sector.
func (as *AccountingSystem) Allocation(asOf date.Date) (Allocation, error) {
	report, err := as.Holdings(asOf)
	if err != nil {
		return Allocation{}, err
	}
	return allocate(report), nil
}

// Summary computes the performance summary on 'asOf' (today if zero).
func (as *AccountingSystem) Summary(asOf date.Date) (PerformanceSummary, error) {
	asOf = orToday(asOf)
	book, err := Replay(as.Ledger, asOf)
	if err != nil {
		return PerformanceSummary{}, err
	}
	nav, err := as.NAV(asOf)
	if err != nil {
		return PerformanceSummary{}, err
	}
	report := valuate(book.Holdings(), as.Prices, asOf, as.Portfolio.Currency)

	s := PerformanceSummary{
		AsOf:          asOf,
		TotalInvested: report.TotalCost,
		CurrentValue:  report.MarketValue,
		UnrealizedPnL: report.UnrealizedPnL,
		RealizedPnL:   book.Realized(),
		MaxDrawdown:   MaxDrawdown(nav.Values()),
	}
	s.UnrealizedPnLPct = ReturnPct(s.UnrealizedPnL, s.TotalInvested)
	s.TotalReturn = s.UnrealizedPnL.Add(s.RealizedPnL)
	s.TotalReturnPct = ReturnPct(s.TotalReturn, s.TotalInvested)
	for _, l := range report.Lines {
		if l.Price.IsFallback() {
			s.Fallback = append(s.Fallback, l.Ticker)
		}
	}

	span, ok := as.Ledger.Range()
	if !ok {
		return s, nil
	}
	s.XIRR = XIRR(CashFlows(as.Ledger, s.CurrentValue, asOf))
	s.CAGR = CAGR(s.TotalInvested, s.CurrentValue.Add(s.RealizedPnL), span.From, asOf)

	if as.Portfolio.Benchmark != "" {
		from := span.From
		if base, ok := nav.BenchmarkBase.Get(); ok {
			from = base.Date
		}
		s.BenchmarkReturnPct = BenchmarkReturn(as.Prices.History(as.Portfolio.Benchmark), from, asOf)
		s.Alpha = Alpha(s.TotalReturnPct, s.BenchmarkReturnPct)
	}
	return s, nil
}

func orToday(d date.Date) date.Date {
	if d.IsZero() {
		return date.Today()
	}
	return d
}
