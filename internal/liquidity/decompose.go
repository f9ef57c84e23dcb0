// Package liquidity converts a position's liquidity into the token amounts
// it currently holds, across the three range regimes of a concentrated
// liquidity pool.
package liquidity

import (
	"fmt"
	"math"
	"math/big"

	"clmScope/internal/model"
	"clmScope/internal/tickmath"
)

const bigPrec = 256

// Amounts holds decomposed token quantities in decimal token units.
type Amounts struct {
	Amount0 *big.Float
	Amount1 *big.Float
}

// Decompose splits liquidity into token amounts for one position against one
// pool snapshot. currentSqrtPrice is the pool's raw fixed-point sqrt price;
// when nil, the sqrt price is derived from currentTick instead.
//
// Below the range the position is all token0, above it all token1, and in
// between it holds both. Boundary rounding can push an intermediate result
// a hair negative; those clamp to zero and never propagate.
func Decompose(liq *big.Int, tickLower, tickUpper, currentTick int32, currentSqrtPrice *big.Int, conv model.PriceConvention) (Amounts, error) {
	if err := tickmath.ValidateConvention(conv); err != nil {
		return Amounts{}, err
	}
	if tickLower >= tickUpper {
		return Amounts{}, fmt.Errorf("%w: lower %d >= upper %d", model.ErrInvalidTickRange, tickLower, tickUpper)
	}

	zero := func() Amounts {
		return Amounts{Amount0: big.NewFloat(0), Amount1: big.NewFloat(0)}
	}
	if liq == nil || liq.Sign() == 0 {
		return zero(), nil
	}
	if liq.Sign() < 0 {
		return Amounts{}, fmt.Errorf("liquidity must not be negative: %s", liq)
	}

	scale := new(big.Float).SetPrec(bigPrec).SetInt(new(big.Int).Lsh(big.NewInt(1), conv.SqrtPriceBits))
	liqF := new(big.Float).SetPrec(bigPrec).SetInt(liq)

	sqrtPL := tickmath.SqrtRatioAtTick(tickLower, conv)
	sqrtPU := tickmath.SqrtRatioAtTick(tickUpper, conv)

	var sqrtPC *big.Float
	if currentSqrtPrice != nil && currentSqrtPrice.Sign() > 0 {
		sqrtPC = new(big.Float).SetPrec(bigPrec).SetInt(currentSqrtPrice)
	} else {
		sqrtPC = tickmath.SqrtRatioAtTick(currentTick, conv)
	}

	var amount0, amount1 *big.Float
	switch {
	case currentTick < tickLower:
		amount0 = amount0Between(liqF, scale, sqrtPL, sqrtPU)
		amount1 = big.NewFloat(0)
	case currentTick >= tickUpper:
		amount0 = big.NewFloat(0)
		amount1 = amount1Between(liqF, scale, sqrtPL, sqrtPU)
	default:
		amount0 = amount0Between(liqF, scale, sqrtPC, sqrtPU)
		amount1 = amount1Between(liqF, scale, sqrtPL, sqrtPC)
	}

	clampNegative(amount0)
	clampNegative(amount1)

	// Raw integer amounts scale down by each token's own decimals,
	// independently. Mixing these up is the historical 100x bug.
	amount0.Quo(amount0, pow10(conv.Token0Decimals))
	amount1.Quo(amount1, pow10(conv.Token1Decimals))

	return Amounts{Amount0: amount0, Amount1: amount1}, nil
}

// amount0Between is L * 2^bits * (sqrtB - sqrtA) / (sqrtB * sqrtA).
func amount0Between(liq, scale, sqrtA, sqrtB *big.Float) *big.Float {
	out := new(big.Float).SetPrec(bigPrec).Mul(liq, scale)
	out.Mul(out, new(big.Float).SetPrec(bigPrec).Sub(sqrtB, sqrtA))
	out.Quo(out, sqrtB)
	out.Quo(out, sqrtA)
	return out
}

// amount1Between is L * (sqrtB - sqrtA) / 2^bits.
func amount1Between(liq, scale, sqrtA, sqrtB *big.Float) *big.Float {
	out := new(big.Float).SetPrec(bigPrec).Sub(sqrtB, sqrtA)
	out.Mul(out, liq)
	out.Quo(out, scale)
	return out
}

func clampNegative(value *big.Float) {
	if value.Sign() < 0 {
		value.SetFloat64(0)
	}
}

func pow10(decimals int) *big.Float {
	return new(big.Float).SetPrec(bigPrec).SetFloat64(math.Pow10(decimals))
}
