package model

// PriceConvention captures the fixed-point price encoding of one pool.
// Every field is resolved per pool by a protocol adapter; nothing here is
// ever defaulted. Wrong decimals are the classic source of 100x price errors,
// so validation rejects anything unresolved instead of guessing.
type PriceConvention struct {
	Protocol       string  `json:"protocol"`
	LogBase        float64 `json:"log_base"`
	SqrtPriceBits  uint    `json:"sqrt_price_bits"`
	MaxTick        int32   `json:"max_tick"`
	Token0Decimals int     `json:"token0_decimals"`
	Token1Decimals int     `json:"token1_decimals"`
	InvertPair     bool    `json:"invert_pair"`
}
