package model

// RawPosition is a loosely-typed position record as delivered by a discovery
// collaborator. Ticks arrive as int64 because some sources emit unsigned
// two's-complement values; big integers arrive as decimal strings.
type RawPosition struct {
	ID        string `json:"id"`
	PoolID    string `json:"pool_id"`
	TickLower int64  `json:"tick_lower"`
	TickUpper int64  `json:"tick_upper"`
	Liquidity string `json:"liquidity"`
	FeeOwed0  string `json:"fee_owed0"`
	FeeOwed1  string `json:"fee_owed1"`
}

// RawPool is a loosely-typed pool snapshot record. Decimals are pointers so
// that a missing value is distinguishable from zero and can be rejected.
type RawPool struct {
	PoolID         string   `json:"pool_id"`
	Network        string   `json:"network"`
	Protocol       string   `json:"protocol"`
	TickSpacing    int32    `json:"tick_spacing"`
	CurrentTick    int64    `json:"current_tick"`
	SqrtPrice      string   `json:"sqrt_price"`
	Liquidity      string   `json:"liquidity"`
	Token0Decimals *int     `json:"token0_decimals"`
	Token1Decimals *int     `json:"token1_decimals"`
	InvertPair     bool     `json:"invert_pair"`
	Token0PriceUsd *float64 `json:"token0_price_usd"`
	Token1PriceUsd *float64 `json:"token1_price_usd"`
	ReportedTvlUsd *float64 `json:"reported_tvl_usd"`
}

// RawSeriesPoint is one observation in a raw price/APY series record.
type RawSeriesPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	VolumeUsd float64 `json:"volume_usd"`
}

// RawSeries is one pool's price series plus current fee APR, as delivered by
// the price-series collaborator. Points must be strictly timestamp-ordered.
type RawSeries struct {
	PoolAddress string           `json:"pool_address"`
	Network     string           `json:"network"`
	Source      string           `json:"source"`
	FeeApr      float64          `json:"fee_apr"`
	Points      []RawSeriesPoint `json:"points"`
}
