package portfolio

import (
	"math"
	"slices"

	"github.com/etnz/modelfolio/date"
)

// CashFlow is a dated amount from the investor's point of view: negative
// when money goes into the portfolio, positive when it comes out.
type CashFlow struct {
	Date   date.Date
	Amount Money
}

// CashFlows returns the cash flows of the ledger up to 'asOf': every BUY as an
// outflow, every SELL as an inflow, and the current value as a final inflow on
// 'asOf' when it is positive. A zero 'asOf' means today.
func CashFlows(l *Ledger, currentValue Money, asOf date.Date) []CashFlow {
	if asOf.IsZero() {
		asOf = date.Today()
	}
	var flows []CashFlow
	for _, tx := range l.Transactions() {
		if tx.Date.After(asOf) {
			break
		}
		switch tx.Type {
		case Buy:
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount().Neg()})
		case Sell:
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount()})
		}
	}
	if currentValue.IsPositive() {
		flows = append(flows, CashFlow{Date: asOf, Amount: currentValue})
	}
	return flows
}

const (
	xirrGuess     = 0.1
	xirrMaxIter   = 100
	xirrTolerance = 1e-9 // relative to the largest flow
)

// XIRR returns the annualized rate r such that the net present value of the
// flows is zero, years being counted as 365 days from the first flow.
//
// It is solved by Newton-Raphson from 10%, until the net present value is
// below a billionth of the largest flow. The rate is undefined with fewer
// than two flows, when the flows do not have both signs, or when the solver
// does not converge.
func XIRR(flows []CashFlow) Optional[Percent] {
	if len(flows) < 2 {
		return None[Percent]()
	}
	flows = slices.Clone(flows)
	slices.SortStableFunc(flows, func(a, b CashFlow) int { return a.Date.Compare(b.Date) })

	var hasIn, hasOut bool
	var largest float64
	t := make([]float64, len(flows))
	cf := make([]float64, len(flows))
	for i, f := range flows {
		t[i] = float64(f.Date.DaysSince(flows[0].Date)) / 365
		cf[i] = f.Amount.Float()
		hasIn = hasIn || cf[i] > 0
		hasOut = hasOut || cf[i] < 0
		largest = max(largest, math.Abs(cf[i]))
	}
	if !hasIn || !hasOut {
		return None[Percent]()
	}

	tolerance := xirrTolerance * largest
	r := xirrGuess
	for range xirrMaxIter {
		var f, df float64
		for i := range cf {
			f += cf[i] * math.Pow(1+r, -t[i])
			df += -t[i] * cf[i] * math.Pow(1+r, -t[i]-1)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return None[Percent]()
		}
		if math.Abs(f) < tolerance {
			return Some(Percent(r * 100))
		}
		if df == 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			return None[Percent]()
		}
		r -= f / df
		if r <= -1 || math.IsNaN(r) {
			return None[Percent]()
		}
	}
	return None[Percent]()
}
