package portfolio

import (
	"math"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

// daysPerYear accounts for leap years in CAGR.
const daysPerYear = 365.25

// CAGR returns the compound annual growth rate from 'start' invested on 'from'
// to 'end' on 'to'.
//
// It is undefined when no time elapsed, when nothing was invested, or when
// the end value is negative.
func CAGR(start, end Money, from, to date.Date) Optional[Percent] {
	years := float64(to.DaysSince(from)) / daysPerYear
	if years <= 0 || !start.IsPositive() || end.IsNegative() {
		return None[Percent]()
	}
	ratio := end.Ratio(start).InexactFloat64()
	return Some(Percent((math.Pow(ratio, 1/years) - 1) * 100))
}

// MaxDrawdown returns the deepest decline from a running peak of the values,
// as a percentage of that peak. It is never positive, and exactly zero when
// the values never decrease. It is undefined for an empty series.
func MaxDrawdown(values []Money) Optional[Percent] {
	if len(values) == 0 {
		return None[Percent]()
	}
	peak := values[0].Decimal()
	worst := decimal.Zero
	for _, v := range values {
		d := v.Decimal()
		if d.GreaterThan(peak) {
			peak = d
		}
		if !peak.IsPositive() {
			continue
		}
		if dd := d.Sub(peak).Mul(hundred).Div(peak); dd.LessThan(worst) {
			worst = dd
		}
	}
	return Some(Percent(worst.InexactFloat64()))
}

// BenchmarkReturn returns the return of a benchmark between its first close
// on or after 'from' and its last close on or before 'to' (the latest close
// if 'to' is zero).
//
// It is undefined without closes in that range.
func BenchmarkReturn(closes *date.History[decimal.Decimal], from, to date.Date) Optional[Percent] {
	if closes == nil || closes.Len() == 0 {
		return None[Percent]()
	}
	d0, v0, ok := closes.ValueOnOrAfter(from)
	if !ok || !v0.IsPositive() {
		return None[Percent]()
	}
	d1, v1 := closes.Latest()
	if !to.IsZero() {
		if d1, v1, ok = closes.ValueAsOf(to); !ok {
			return None[Percent]()
		}
	}
	if d1.Before(d0) {
		return None[Percent]()
	}
	return Some(percentOf(v1.Sub(v0), v0))
}

// Alpha returns the excess return of the portfolio over the benchmark, both in
// percent. It is undefined if either is.
func Alpha(portfolio, benchmark Optional[Percent]) Optional[Percent] {
	p, ok := portfolio.Get()
	if !ok {
		return None[Percent]()
	}
	b, ok := benchmark.Get()
	if !ok {
		return None[Percent]()
	}
	return Some(p - b)
}

// ReturnPct returns 'gain' as a percentage of 'base', undefined when 'base'
// is not positive.
func ReturnPct(gain, base Money) Optional[Percent] {
	if !base.IsPositive() {
		return None[Percent]()
	}
	return Some(percentOf(gain.Decimal(), base.Decimal()))
}
