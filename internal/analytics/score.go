package analytics

import "clmScope/internal/model"

// PoolScore is the atomic output of the FVR / IL-risk scorer. All fields are
// produced together; a partially filled score is never returned.
type PoolScore struct {
	Fvr             *float64
	IlRiskScore     int
	Recommendation  model.Recommendation
	ExpectedIl30d   float64
	BreakevenFeeApr float64
}

// Recommendation thresholds on FVR, first match wins.
const (
	fvrAttractive = 1.0
	fvrFair       = 0.6
)

// Score combines fee APR with 30-day annualized volatility. A nil or zero
// volatility, or a non-positive fee APR, yields insufficient_data with a nil
// FVR; the ratio is never allowed to become Inf or NaN.
func Score(feeApr float64, volatility30d *float64) PoolScore {
	score := PoolScore{}

	if volatility30d != nil {
		score.IlRiskScore = IlRiskScore(*volatility30d)
		score.ExpectedIl30d = ExpectedIl30d(*volatility30d)
	}
	score.BreakevenFeeApr = BreakevenFeeApr(feeApr, score.ExpectedIl30d)

	if volatility30d == nil || *volatility30d == 0 || feeApr <= 0 {
		score.Recommendation = model.RecommendationInsufficientData
		return score
	}

	fvr := feeApr / *volatility30d
	score.Fvr = &fvr

	switch {
	case fvr >= fvrAttractive:
		score.Recommendation = model.RecommendationAttractive
	case fvr >= fvrFair:
		score.Recommendation = model.RecommendationFair
	default:
		score.Recommendation = model.RecommendationOverpriced
	}
	return score
}

// IlRiskScore buckets 30-day volatility into a 1-10 step scale. Declared
// policy, not physics.
func IlRiskScore(volatility30d float64) int {
	switch {
	case volatility30d < 0.2:
		return 1
	case volatility30d < 0.4:
		return 3
	case volatility30d < 0.6:
		return 5
	case volatility30d < 0.8:
		return 7
	case volatility30d < 1.0:
		return 9
	default:
		return 10
	}
}

// ExpectedIl30d approximates 30-day impermanent loss as vol^2 / 8. This is
// the small-movement approximation for a full-range position; it understates
// IL for concentrated ranges and is kept as an approximation, not an exact
// figure.
func ExpectedIl30d(volatility30d float64) float64 {
	return volatility30d * volatility30d / 8
}

// BreakevenFeeApr is the fee APR needed to offset annualized expected IL.
func BreakevenFeeApr(feeApr, expectedIl30d float64) float64 {
	return feeApr + expectedIl30d*12
}
