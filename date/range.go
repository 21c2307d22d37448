package date

import "fmt"

// Range is a span of days, both ends included.
//
// A zero From (or To) leaves that side open.
type Range struct{ From, To Date }

// Contains reports whether 'on' is within the range.
func (r Range) Contains(on Date) bool {
	if !r.From.IsZero() && on.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && on.After(r.To) {
		return false
	}
	return true
}

// Period returns the calendar period the range covers exactly, if any.
func (r Range) Period() (Period, bool) {
	for p := Daily; p <= Yearly; p++ {
		if p.Range(r.From) == r {
			return p, true
		}
	}
	return Daily, false
}

// Label names the range for display: "2025-09-08", "2025-W37", "2025-09",
// "2025-Q3", "2025", or "from_to" when it is not a calendar period.
//
// Weeks are ISO weeks, numbered within their ISO year.
func (r Range) Label() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Weekly:
		year, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return fmt.Sprintf("%d-%02d", r.From.Year(), int(r.From.Month()))
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (int(r.From.Month())-1)/3+1)
	case Yearly:
		return fmt.Sprint(r.From.Year())
	default:
		return r.From.String()
	}
}
