package date

import (
	"testing"
	"time"
)

func TestPeriod_Range(t *testing.T) {
	testCases := []struct {
		name   string
		period Period
		in     Date
		want   Range
	}{
		{"day", Daily, New(2025, time.September, 8), Range{New(2025, time.September, 8), New(2025, time.September, 8)}},
		{"wednesday", Weekly, New(2025, time.September, 10), Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"sunday", Weekly, New(2025, time.September, 14), Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"leap february", Monthly, New(2024, time.February, 15), Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{"q2", Quarterly, New(2025, time.May, 20), Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{"q4", Quarterly, New(2025, time.December, 31), Range{New(2025, time.October, 1), New(2025, time.December, 31)}},
		{"year", Yearly, New(2025, time.September, 8), Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.period.Range(tc.in); got != tc.want {
				t.Errorf("%v.Range(%v) = %v, want %v", tc.period, tc.in, got, tc.want)
			}
		})
	}
}

func TestRange_Label(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"day", Daily.Range(New(2025, time.September, 8)), "2025-09-08"},
		{"week", Weekly.Range(New(2025, time.September, 8)), "2025-W37"},
		{"early week", Weekly.Range(New(2025, time.January, 6)), "2025-W02"},
		{"week of the next iso year", Weekly.Range(New(2024, time.December, 31)), "2025-W01"},
		{"month", Monthly.Range(New(2025, time.September, 1)), "2025-09"},
		{"quarter", Quarterly.Range(New(2025, time.July, 1)), "2025-Q3"},
		{"year", Yearly.Range(New(2025, time.January, 1)), "2025"},
		{"custom", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
		{"two years", Range{From: New(2025, time.January, 1), To: New(2026, time.December, 31)}, "2025-01-01_2026-12-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Label(); got != tc.want {
				t.Errorf("Label() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", Daily, false},
		{"daily", Daily, false},
		{"Week", Weekly, false},
		{"m", Monthly, false},
		{"quarterly", Quarterly, false},
		{" year ", Yearly, false},
		{"fortnight", Daily, true},
	}
	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
