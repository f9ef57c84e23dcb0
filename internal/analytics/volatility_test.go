package analytics

import (
	"math"
	"testing"
	"time"

	"clmScope/internal/model"
)

func dailySeries(values []float64) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(values))
	for i, v := range values {
		points[i] = model.PricePoint{
			Timestamp: start.AddDate(0, 0, i),
			Value:     v,
		}
	}
	return points
}

func alternating(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		if i%2 == 0 {
			values[i] = 100
		} else {
			values[i] = 105
		}
	}
	return values
}

func TestComputeVolatilityInsufficientHistory(t *testing.T) {
	points := dailySeries(alternating(10))

	vol, err := ComputeVolatility(points, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vol != nil {
		t.Fatalf("expected nil for insufficient history, got %g", *vol)
	}
}

func TestComputeVolatilityNonNegative(t *testing.T) {
	points := dailySeries(alternating(40))

	vol, err := ComputeVolatility(points, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vol == nil {
		t.Fatalf("expected volatility for 40 points")
	}
	if *vol < 0 || math.IsNaN(*vol) {
		t.Fatalf("volatility must be a non-negative real: %g", *vol)
	}
}

func TestComputeVolatilityConstantSeriesIsZero(t *testing.T) {
	values := make([]float64, 35)
	for i := range values {
		values[i] = 250
	}

	vol, err := ComputeVolatility(dailySeries(values), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vol == nil || *vol != 0 {
		t.Fatalf("constant prices must yield zero volatility, got %v", vol)
	}
}

func TestComputeVolatilityKnownValue(t *testing.T) {
	// Alternating +r/-r log returns have population stddev |r| around a
	// near-zero mean; check against the closed form.
	points := dailySeries(alternating(31))

	vol, err := ComputeVolatility(points, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vol == nil {
		t.Fatalf("expected volatility")
	}

	r := math.Log(105.0 / 100.0)
	want := r * math.Sqrt(365)
	if math.Abs(*vol-want)/want > 1e-9 {
		t.Fatalf("volatility %g, want %g", *vol, want)
	}
}

func TestComputeVolatilitySkipsNonPositivePrices(t *testing.T) {
	values := alternating(40)
	values[5] = 0
	values[20] = -3

	vol, err := ComputeVolatility(dailySeries(values), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vol == nil || math.IsNaN(*vol) || math.IsInf(*vol, 0) {
		t.Fatalf("bad volatility: %v", vol)
	}
}

func TestLogReturnsRejectsUnorderedSeries(t *testing.T) {
	points := dailySeries(alternating(10))
	points[4].Timestamp = points[6].Timestamp

	if _, err := LogReturns(points); err == nil {
		t.Fatalf("expected error for unordered series")
	}
}

func TestWindowsFromSharedSeries(t *testing.T) {
	points := dailySeries(alternating(40))

	windows, err := Windows(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if windows.Vol1d == nil || windows.Vol7d == nil || windows.Vol30d == nil {
		t.Fatalf("all windows should resolve with 40 points: %+v", windows)
	}

	// Each window must agree with the standalone computation on the same
	// series.
	for _, tc := range []struct {
		days int
		got  *float64
	}{
		{Window1d, windows.Vol1d},
		{Window7d, windows.Vol7d},
		{Window30d, windows.Vol30d},
	} {
		standalone, err := ComputeVolatility(points, tc.days)
		if err != nil {
			t.Fatalf("window %d: %v", tc.days, err)
		}
		if standalone == nil || *standalone != *tc.got {
			t.Fatalf("window %d mismatch: %v vs %v", tc.days, standalone, tc.got)
		}
	}
}

func TestWindowsPartialHistory(t *testing.T) {
	points := dailySeries(alternating(10))

	windows, err := Windows(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if windows.Vol1d == nil || windows.Vol7d == nil {
		t.Fatalf("short windows should resolve with 10 points")
	}
	if windows.Vol30d != nil {
		t.Fatalf("30d window must be nil with 10 points, got %g", *windows.Vol30d)
	}
}
