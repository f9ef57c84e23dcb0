package analytics

import (
	"fmt"
	"time"

	"clmScope/internal/model"
)

// Sanity bounds on series values and fee APR. Values outside these bands are
// still processed, but the result carries a data-quality warning.
const (
	minPlausiblePrice = 1e-12
	maxPlausiblePrice = 1e12
	maxPlausibleApr   = 1000
)

// AnalyzePool computes the full PoolAnalytics record for one pool from its
// raw series. Recomputed wholesale on every call; the Source tag of the
// series propagates into the result so static fallbacks are never mistaken
// for live data.
func AnalyzePool(raw model.RawSeries, now time.Time) (model.PoolAnalytics, error) {
	if raw.PoolAddress == "" {
		return model.PoolAnalytics{}, fmt.Errorf("pool address is required")
	}

	points := make([]model.PricePoint, 0, len(raw.Points))
	for _, p := range raw.Points {
		points = append(points, model.PricePoint{
			Timestamp: time.Unix(p.Timestamp, 0).UTC(),
			Value:     p.Value,
			VolumeUsd: p.VolumeUsd,
		})
	}

	windows, err := Windows(points)
	if err != nil {
		return model.PoolAnalytics{}, fmt.Errorf("pool %s: %w", raw.PoolAddress, err)
	}

	score := Score(raw.FeeApr, windows.Vol30d)

	out := model.PoolAnalytics{
		PoolAddress:     raw.PoolAddress,
		Network:         raw.Network,
		Source:          raw.Source,
		FeeApr:          raw.FeeApr,
		Volatility1d:    windows.Vol1d,
		Volatility7d:    windows.Vol7d,
		Volatility30d:   windows.Vol30d,
		Fvr:             score.Fvr,
		IlRiskScore:     score.IlRiskScore,
		Recommendation:  score.Recommendation,
		ExpectedIl30d:   score.ExpectedIl30d,
		BreakevenFeeApr: score.BreakevenFeeApr,
		ComputedAt:      now.UTC(),
	}

	if raw.FeeApr > maxPlausibleApr {
		out.Warnings = append(out.Warnings, model.NewWarning(model.WarnImplausibleApr,
			"fee apr %.2f exceeds plausibility bound %.0f", raw.FeeApr, float64(maxPlausibleApr)))
	}
	for i, p := range points {
		if p.Value > 0 && (p.Value < minPlausiblePrice || p.Value > maxPlausiblePrice) {
			out.Warnings = append(out.Warnings, model.NewWarning(model.WarnPriceOutOfBand,
				"series value %g at index %d outside sanity band", p.Value, i))
			break
		}
	}

	return out, nil
}
