package model

// PositionValuation is the derived view of one position against one pool
// snapshot. Amounts and fees are in decimal token units. Nil USD fields mean
// "unknown" (missing price), which is distinct from zero.
type PositionValuation struct {
	PositionID        string    `json:"position_id"`
	PoolID            string    `json:"pool_id"`
	Network           string    `json:"network"`
	Source            string    `json:"source"`
	Amount0           float64   `json:"amount0"`
	Amount1           float64   `json:"amount1"`
	PriceLower        float64   `json:"price_lower"`
	PriceUpper        float64   `json:"price_upper"`
	CurrentPrice      float64   `json:"current_price"`
	InRange           bool      `json:"in_range"`
	Fee0              float64   `json:"fee0"`
	Fee1              float64   `json:"fee1"`
	UncollectedFee0Usd *float64 `json:"uncollected_fee0_usd"`
	UncollectedFee1Usd *float64 `json:"uncollected_fee1_usd"`
	TvlUsd            *float64  `json:"tvl_usd"`
	Warnings          []Warning `json:"warnings,omitempty"`
}
