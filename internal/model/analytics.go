package model

import "time"

// Recommendation buckets a pool by risk-adjusted fee yield.
type Recommendation string

const (
	RecommendationAttractive       Recommendation = "attractive"
	RecommendationFair             Recommendation = "fair"
	RecommendationOverpriced       Recommendation = "overpriced"
	RecommendationInsufficientData Recommendation = "insufficient_data"
)

// PoolAnalytics is the derived risk view of one pool over one analysis
// window. It is recomputed wholesale; partial results are never produced.
// Nil volatility and FVR pointers mean insufficient history, not zero.
type PoolAnalytics struct {
	PoolAddress     string         `json:"pool_address"`
	Network         string         `json:"network"`
	Source          string         `json:"source"`
	FeeApr          float64        `json:"fee_apr"`
	Volatility1d    *float64       `json:"volatility_1d"`
	Volatility7d    *float64       `json:"volatility_7d"`
	Volatility30d   *float64       `json:"volatility_30d"`
	Fvr             *float64       `json:"fvr"`
	IlRiskScore     int            `json:"il_risk_score"`
	Recommendation  Recommendation `json:"recommendation"`
	ExpectedIl30d   float64        `json:"expected_il_30d"`
	BreakevenFeeApr float64        `json:"breakeven_fee_apr"`
	ComputedAt      time.Time      `json:"computed_at"`
	Warnings        []Warning      `json:"warnings,omitempty"`
}
