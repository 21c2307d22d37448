package portfolio

import "github.com/etnz/modelfolio/date"

// PerformanceSummary gathers the headline figures of a portfolio on a day.
//
// Every percentage that cannot be computed is undefined rather than zero.
type PerformanceSummary struct {
	AsOf               date.Date         `json:"as_of"`
	TotalInvested      Money             `json:"total_invested"` // cost basis of open positions
	CurrentValue       Money             `json:"current_value"`
	UnrealizedPnL      Money             `json:"unrealized_pnl"`
	UnrealizedPnLPct   Optional[Percent] `json:"unrealized_pnl_pct"`
	RealizedPnL        Money             `json:"realized_pnl"`
	TotalReturn        Money             `json:"total_return"`
	TotalReturnPct     Optional[Percent] `json:"total_return_pct"`
	XIRR               Optional[Percent] `json:"xirr"`
	CAGR               Optional[Percent] `json:"cagr"`
	MaxDrawdown        Optional[Percent] `json:"max_drawdown"`
	BenchmarkReturnPct Optional[Percent] `json:"benchmark_return_pct"`
	Alpha              Optional[Percent] `json:"alpha"`
	Fallback           []string          `json:"fallback,omitempty"` // tickers valued at average cost
}
