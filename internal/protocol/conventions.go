// Package protocol adapts each external data source's raw account layout
// into the shared PriceConvention / PoolState / Position model. The tick and
// liquidity math itself lives elsewhere and is written exactly once.
package protocol

import (
	"fmt"
	"strings"

	"clmScope/internal/model"
)

// Supported protocol identifiers.
const (
	UniswapV3     = "uniswap-v3"
	PancakeV3     = "pancake-v3"
	Aerodrome     = "aerodrome-slipstream"
	OrcaWhirlpool = "orca-whirlpool"
	CetusCLMM     = "cetus-clmm"
)

// conventionbase holds the protocol-fixed encoding constants. Bit width and
// log base are never guessed: an unknown protocol is an error, not a default.
type conventionBase struct {
	logBase       float64
	sqrtPriceBits uint
	maxTick       int32
}

// Max tick ~443,636 corresponds to the 1.0001 log base used by every
// supported protocol; sqrt-price bit widths differ per chain family.
var conventionBases = map[string]conventionBase{
	UniswapV3:     {logBase: 1.0001, sqrtPriceBits: 96, maxTick: 443636},
	PancakeV3:     {logBase: 1.0001, sqrtPriceBits: 96, maxTick: 443636},
	Aerodrome:     {logBase: 1.0001, sqrtPriceBits: 96, maxTick: 443636},
	OrcaWhirlpool: {logBase: 1.0001, sqrtPriceBits: 64, maxTick: 443636},
	CetusCLMM:     {logBase: 1.0001, sqrtPriceBits: 64, maxTick: 443636},
}

// Convention resolves the full price convention for one pool. Token decimals
// must be supplied by the caller; missing decimals fail here so that a wrong
// assumption can never scale a price by 10x or 100x downstream.
func Convention(protocol string, token0Decimals, token1Decimals *int, invertPair bool) (model.PriceConvention, error) {
	base, ok := conventionBases[strings.ToLower(strings.TrimSpace(protocol))]
	if !ok {
		return model.PriceConvention{}, fmt.Errorf("%w: unknown protocol %q", model.ErrInvalidPriceConvention, protocol)
	}
	if token0Decimals == nil || token1Decimals == nil {
		return model.PriceConvention{}, fmt.Errorf("%w: token decimals unresolved for protocol %q", model.ErrInvalidPriceConvention, protocol)
	}

	return model.PriceConvention{
		Protocol:       strings.ToLower(strings.TrimSpace(protocol)),
		LogBase:        base.logBase,
		SqrtPriceBits:  base.sqrtPriceBits,
		MaxTick:        base.maxTick,
		Token0Decimals: *token0Decimals,
		Token1Decimals: *token1Decimals,
		InvertPair:     invertPair,
	}, nil
}
