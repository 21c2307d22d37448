package portfolio

import (
	"math"
	"testing"

	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

func TestCAGR(t *testing.T) {
	d0 := date.New(2020, 1, 1)
	tests := []struct {
		name       string
		start, end Money
		from, to   date.Date
		want       float64 // NaN when undefined
	}{
		{"flat", INR(1000), INR(1000), d0, d0.Add(400), 0},
		{"doubling in four years", INR(1000), INR(2000), d0, d0.Add(1461), (math.Pow(2, 0.25) - 1) * 100},
		{"one year", INR(1000), INR(1100), d0, d0.Add(365), (math.Pow(1.1, 365.25/365) - 1) * 100},
		{"total loss", INR(1000), INR(0), d0, d0.Add(365), -100},
		{"no time elapsed", INR(1000), INR(1100), d0, d0, math.NaN()},
		{"to before from", INR(1000), INR(1100), d0, d0.Add(-1), math.NaN()},
		{"nothing invested", INR(0), INR(1100), d0, d0.Add(365), math.NaN()},
		{"negative end", INR(1000), INR(-1), d0, d0.Add(365), math.NaN()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CAGR(tc.start, tc.end, tc.from, tc.to).Get()
			if math.IsNaN(tc.want) {
				if ok {
					t.Errorf("CAGR() = %v, want undefined", got)
				}
				return
			}
			if !ok {
				t.Fatalf("CAGR() is undefined, want %v", tc.want)
			}
			if math.Abs(float64(got)-tc.want) > 1e-9 {
				t.Errorf("CAGR() = %v, want %v", float64(got), tc.want)
			}
		})
	}
}

func series(values ...float64) []Money {
	s := make([]Money, len(values))
	for i, v := range values {
		s[i] = INR(v)
	}
	return s
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []Money
		want   float64
	}{
		{"increasing", series(100, 101, 150, 200), 0},
		{"flat", series(100, 100, 100), 0},
		{"single", series(100), 0},
		{"one dip", series(100, 120, 90, 130), -25},
		{"two dips", series(100, 80, 120, 60, 200), -50},
		{"ends low", series(200, 150, 100), -50},
		{"starts at zero", series(0, 0, 100, 50), -50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MaxDrawdown(tc.values).Get()
			if !ok {
				t.Fatalf("MaxDrawdown() is undefined")
			}
			if got > 0 {
				t.Errorf("MaxDrawdown() = %v is positive", got)
			}
			if float64(got) != tc.want {
				t.Errorf("MaxDrawdown() = %v, want %v", float64(got), tc.want)
			}
		})
	}
	if MaxDrawdown(nil).IsDefined() {
		t.Errorf("MaxDrawdown(nil) is defined, want undefined")
	}
}

func TestBenchmarkReturn(t *testing.T) {
	h := new(date.History[decimal.Decimal])
	h.Append(day(1, 2), decimal.NewFromInt(1000))
	h.Append(day(1, 10), decimal.NewFromInt(1100))
	h.Append(day(2, 1), decimal.NewFromInt(1125))

	tests := []struct {
		name     string
		from, to date.Date
		want     float64 // NaN when undefined
	}{
		{"whole history", day(1, 1), day(3, 1), 12.5},
		{"latest", day(1, 2), date.Date{}, 12.5},
		{"first close after from", day(1, 3), day(2, 1), 100.0 * 25 / 1100},
		{"last close before to", day(1, 2), day(1, 31), 10},
		{"nothing after from", day(2, 2), day(3, 1), math.NaN()},
		{"nothing before to", day(1, 1), day(1, 1), math.NaN()},
		{"inverted", day(1, 10), day(1, 5), math.NaN()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BenchmarkReturn(h, tc.from, tc.to).Get()
			if math.IsNaN(tc.want) {
				if ok {
					t.Errorf("BenchmarkReturn() = %v, want undefined", got)
				}
				return
			}
			if !ok {
				t.Fatalf("BenchmarkReturn() is undefined, want %v", tc.want)
			}
			if !got.Equal(Percent(tc.want)) {
				t.Errorf("BenchmarkReturn() = %v, want %v", got, tc.want)
			}
		})
	}
	if BenchmarkReturn(nil, day(1, 1), day(3, 1)).IsDefined() {
		t.Errorf("BenchmarkReturn(nil) is defined, want undefined")
	}
}

func TestAlpha(t *testing.T) {
	got, ok := Alpha(Some[Percent](18.0), Some[Percent](12.5)).Get()
	if !ok || got != 5.5 {
		t.Errorf("Alpha(18, 12.5) = %v, %v want 5.5", got, ok)
	}
	if Alpha(Some[Percent](18.0), None[Percent]()).IsDefined() {
		t.Errorf("Alpha without benchmark is defined")
	}
	if Alpha(None[Percent](), Some[Percent](12.5)).IsDefined() {
		t.Errorf("Alpha without portfolio return is defined")
	}
}

func TestReturnPct(t *testing.T) {
	if got, ok := ReturnPct(INR(3000), INR(24000)).Get(); !ok || !got.Equal(12.5) {
		t.Errorf("ReturnPct(3000, 24000) = %v, %v want 12.5", got, ok)
	}
	if ReturnPct(INR(10), INR(0)).IsDefined() {
		t.Errorf("ReturnPct with zero base is defined")
	}
}
