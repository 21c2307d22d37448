// Package portfolio is the analytics engine of model portfolios: given the
// transaction ledger of a portfolio and a table of daily closing prices, it
// derives holdings, a daily NAV series and a performance summary.
//
// The core functionalities include:
//   - Ledger replay: BUY and SELL transactions are folded in date order into
//     positions with a weighted average cost. Sells realize a profit and never
//     change the average cost. Overselling is an InvalidTransactionError.
//   - NAV series: one point per day with prices, holdings without a close are
//     valued at their average cost and reported as MissingPriceData. A
//     benchmark index is normalized to the portfolio cost.
//   - Holdings and summary: the current value of a holding is its latest
//     close on or before the day, else its average cost. The NAV price policy
//     does not apply, so a summary asked on a day without trading still uses
//     the last closes.
//   - Metrics: XIRR, CAGR, max drawdown, benchmark return and alpha. Metrics
//     that cannot be computed are undefined Optional values, never errors.
//   - Persistence: JSONL ledgers and price files, CSV exports.
//
// Every computation is a pure function of its inputs: nothing is cached or
// shared, so a portfolio can be analysed concurrently by many callers.
package portfolio
