// Package analytics turns a pool's price/fee history into annualized
// volatility, a fee-vs-volatility ratio, and an impermanent-loss risk view.
package analytics

import (
	"fmt"
	"math"

	"clmScope/internal/model"
)

// annualizationFactor assumes daily cadence. The engine does not infer
// cadence; callers must resample to daily before passing a series in.
const annualizationFactor = 365

// Standard analysis horizons, all sliced from one shared return series.
const (
	Window1d  = 1
	Window7d  = 7
	Window30d = 30
)

// VolatilityWindows holds annualized volatility per horizon. Nil entries
// mean insufficient history for that window, which is distinct from zero.
type VolatilityWindows struct {
	Vol1d  *float64
	Vol7d  *float64
	Vol30d *float64
}

// LogReturns converts a strictly ordered price series into log returns.
// Pairs with a non-positive price are skipped rather than poisoning the
// series. Returns an error if timestamps are not strictly increasing;
// ordering is the caller's contract and a violation is a bad input, not
// something to silently repair.
func LogReturns(points []model.PricePoint) ([]float64, error) {
	returns := make([]float64, 0, len(points))
	for i := 1; i < len(points); i++ {
		if !points[i].Timestamp.After(points[i-1].Timestamp) {
			return nil, fmt.Errorf("series not strictly timestamp-ordered at index %d", i)
		}
		previous := points[i-1].Value
		current := points[i].Value
		if previous <= 0 || current <= 0 {
			continue
		}
		returns = append(returns, math.Log(current/previous))
	}
	return returns, nil
}

// ComputeVolatility returns the annualized population standard deviation of
// the last windowDays log returns, or nil when the series holds fewer than
// windowDays points. Insufficient history is a nil, never an error and never
// a zero.
func ComputeVolatility(points []model.PricePoint, windowDays int) (*float64, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be positive, got %d", windowDays)
	}
	if len(points) < windowDays {
		return nil, nil
	}
	returns, err := LogReturns(points)
	if err != nil {
		return nil, err
	}
	return volatilityFromReturns(returns, windowDays), nil
}

// Windows computes the 1d/7d/30d horizons by slicing one shared return
// series, never via independent recomputation of returns.
func Windows(points []model.PricePoint) (VolatilityWindows, error) {
	returns, err := LogReturns(points)
	if err != nil {
		return VolatilityWindows{}, err
	}

	out := VolatilityWindows{}
	if len(points) >= Window1d {
		out.Vol1d = volatilityFromReturns(returns, Window1d)
	}
	if len(points) >= Window7d {
		out.Vol7d = volatilityFromReturns(returns, Window7d)
	}
	if len(points) >= Window30d {
		out.Vol30d = volatilityFromReturns(returns, Window30d)
	}
	return out, nil
}

// volatilityFromReturns annualizes the population standard deviation of the
// last windowDays returns. With fewer usable returns than the window asks
// for, it uses what exists; with none at all it reports nil.
func volatilityFromReturns(returns []float64, windowDays int) *float64 {
	if len(returns) == 0 {
		return nil
	}
	window := windowDays
	if window > len(returns) {
		window = len(returns)
	}
	tail := returns[len(returns)-window:]

	var sum float64
	for _, r := range tail {
		sum += r
	}
	mean := sum / float64(len(tail))

	var sumSqDiff float64
	for _, r := range tail {
		diff := r - mean
		sumSqDiff += diff * diff
	}
	variance := sumSqDiff / float64(len(tail))

	vol := math.Sqrt(variance) * math.Sqrt(annualizationFactor)
	return &vol
}
