package tickmath

import (
	"fmt"
	"math"
	"math/big"

	"clmScope/internal/model"
)

// bigPrec is the mantissa precision for fixed-point intermediates. Liquidity
// values are 64-128 bit integers, so 256 bits keeps every product exact.
const bigPrec = 256

// ValidateConvention rejects conventions with unresolved or implausible
// fields. Nothing is ever substituted: a pool without known decimals fails
// here instead of producing a silently wrong price.
func ValidateConvention(conv model.PriceConvention) error {
	if conv.LogBase <= 1 {
		return fmt.Errorf("%w: log base %v", model.ErrInvalidPriceConvention, conv.LogBase)
	}
	if conv.SqrtPriceBits == 0 || conv.SqrtPriceBits > 256 {
		return fmt.Errorf("%w: sqrt price bits %d", model.ErrInvalidPriceConvention, conv.SqrtPriceBits)
	}
	if conv.MaxTick <= 0 {
		return fmt.Errorf("%w: max tick %d", model.ErrInvalidPriceConvention, conv.MaxTick)
	}
	if conv.Token0Decimals < 0 || conv.Token0Decimals > 36 {
		return fmt.Errorf("%w: token0 decimals %d", model.ErrInvalidPriceConvention, conv.Token0Decimals)
	}
	if conv.Token1Decimals < 0 || conv.Token1Decimals > 36 {
		return fmt.Errorf("%w: token1 decimals %d", model.ErrInvalidPriceConvention, conv.Token1Decimals)
	}
	return nil
}

// TickToPrice converts a tick index to a human-readable price:
// logBase^tick scaled by the tokens' decimal offset, optionally inverted.
// Display-only conversion, so float64 is acceptable here.
func TickToPrice(tick int32, conv model.PriceConvention) (float64, error) {
	if err := ValidateConvention(conv); err != nil {
		return 0, err
	}
	if tick < -conv.MaxTick || tick > conv.MaxTick {
		return 0, fmt.Errorf("tick %d outside [%d, %d]", tick, -conv.MaxTick, conv.MaxTick)
	}

	price := math.Pow(conv.LogBase, float64(tick)) * decimalFactor(conv)
	if conv.InvertPair {
		price = 1 / price
	}
	return price, nil
}

// PriceToTick is the inverse of TickToPrice, used for validation and
// consistency checks only. The result is rounded to the nearest tick.
func PriceToTick(price float64, conv model.PriceConvention) (int32, error) {
	if err := ValidateConvention(conv); err != nil {
		return 0, err
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive, got %v", price)
	}
	if conv.InvertPair {
		price = 1 / price
	}

	tick := math.Round(math.Log(price/decimalFactor(conv)) / math.Log(conv.LogBase))
	if tick < float64(-conv.MaxTick) || tick > float64(conv.MaxTick) {
		return 0, fmt.Errorf("price %v maps to tick %v outside [%d, %d]", price, tick, -conv.MaxTick, conv.MaxTick)
	}
	return int32(tick), nil
}

// SqrtPriceToPrice converts a raw on-chain sqrt-price fixed-point integer to
// a human-readable price: (raw / 2^bits)^2 scaled by the decimal offset.
func SqrtPriceToPrice(raw *big.Int, conv model.PriceConvention) (float64, error) {
	if err := ValidateConvention(conv); err != nil {
		return 0, err
	}
	if raw == nil || raw.Sign() <= 0 {
		return 0, fmt.Errorf("sqrt price must be positive")
	}

	scale := new(big.Float).SetPrec(bigPrec).SetInt(new(big.Int).Lsh(big.NewInt(1), conv.SqrtPriceBits))
	ratio := new(big.Float).SetPrec(bigPrec).SetInt(raw)
	ratio.Quo(ratio, scale)
	ratio.Mul(ratio, ratio)

	price, _ := ratio.Float64()
	price *= decimalFactor(conv)
	if conv.InvertPair {
		price = 1 / price
	}
	return price, nil
}

// SqrtRatioAtTick returns the raw fixed-point sqrt price at a tick, in the
// convention's 2^bits scale. Used by the liquidity decomposer, so the result
// stays a big.Float rather than collapsing to float64.
func SqrtRatioAtTick(tick int32, conv model.PriceConvention) *big.Float {
	scale := new(big.Float).SetPrec(bigPrec).SetInt(new(big.Int).Lsh(big.NewInt(1), conv.SqrtPriceBits))
	sqrt := new(big.Float).SetPrec(bigPrec).SetFloat64(math.Pow(conv.LogBase, float64(tick)/2))
	return sqrt.Mul(sqrt, scale)
}

// NormalizeTick reinterprets a loosely-typed tick value. Sources that decode
// int24/int32 fields as unsigned hand over huge positives for negative ticks;
// those are mapped back through two's complement, but only when the
// reinterpreted magnitude stays within the convention's max tick. Anything
// else is rejected rather than guessed at.
func NormalizeTick(raw int64, conv model.PriceConvention) (int32, error) {
	maxTick := int64(conv.MaxTick)
	if raw >= -maxTick && raw <= maxTick {
		return int32(raw), nil
	}

	for _, width := range []uint{24, 32} {
		bound := int64(1) << width
		if raw < bound/2 || raw >= bound {
			continue
		}
		candidate := raw - bound
		if candidate >= -maxTick && candidate <= maxTick {
			return int32(candidate), nil
		}
	}

	return 0, fmt.Errorf("tick %d outside plausible range [-%d, %d]", raw, maxTick, maxTick)
}

// decimalFactor is 10^(token0Decimals - token1Decimals).
func decimalFactor(conv model.PriceConvention) float64 {
	return math.Pow(10, float64(conv.Token0Decimals-conv.Token1Decimals))
}
