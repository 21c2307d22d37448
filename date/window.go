package date

import (
	"fmt"
	"strings"
)

// Window is a trailing lookback used to slice a NAV history for charting.
type Window string

const (
	OneMonth    Window = "1m"
	ThreeMonths Window = "3m"
	SixMonths   Window = "6m"
	OneYear     Window = "1y"
	YearToDate  Window = "ytd"
	All         Window = "all"
)

// windowDays is the length in days of each fixed lookback.
var windowDays = map[Window]int{
	OneMonth:    30,
	ThreeMonths: 90,
	SixMonths:   180,
	OneYear:     365,
}

// ParseWindow parses one of 1m, 3m, 6m, 1y, ytd or all (case insensitive).
// An empty string means all.
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case "":
		return All, nil
	case OneMonth, ThreeMonths, SixMonths, OneYear, YearToDate, All:
		return w, nil
	default:
		return All, fmt.Errorf("unknown window %q want one of 1m, 3m, 6m, 1y, ytd, all", s)
	}
}

// Range returns the range of dates covered by the window ending on 'on'.
// The All window has an open start.
func (w Window) Range(on Date) Range {
	switch w {
	case YearToDate:
		return Range{From: on.StartOf(Yearly), To: on}
	case All, "":
		return Range{To: on}
	default:
		return Range{From: on.Add(-windowDays[w]), To: on}
	}
}
