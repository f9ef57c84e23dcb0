// Package valuation composes tick conversion and liquidity decomposition
// into a full position valuation: token amounts, range bounds, in-range
// status, and uncollected-fee value.
package valuation

import (
	"fmt"
	"math"
	"math/big"

	"clmScope/internal/liquidity"
	"clmScope/internal/model"
	"clmScope/internal/tickmath"
)

// USDPrices carries current token USD prices and an optional independently
// reported TVL. Nil means unknown, never zero.
type USDPrices struct {
	Token0Usd      *float64
	Token1Usd      *float64
	ReportedTvlUsd *float64
}

// wideRangeFactor flags ranges whose price span exceeds 100x as a
// data-quality warning. Such ranges are valid, just suspicious.
const wideRangeFactor = 100

// tvlMismatchRatio flags a >50% gap between computed and reported TVL.
const tvlMismatchRatio = 0.5

// Valuate computes a PositionValuation from complete snapshots. Pure
// computation: no I/O, no retained state, each call returns a fresh result.
func Valuate(pos model.Position, pool model.PoolState, conv model.PriceConvention, prices USDPrices) (model.PositionValuation, error) {
	if err := pos.Range.Validate(); err != nil {
		return model.PositionValuation{}, err
	}

	priceLower, err := tickmath.TickToPrice(pos.Range.Lower, conv)
	if err != nil {
		return model.PositionValuation{}, fmt.Errorf("price at lower tick: %w", err)
	}
	priceUpper, err := tickmath.TickToPrice(pos.Range.Upper, conv)
	if err != nil {
		return model.PositionValuation{}, fmt.Errorf("price at upper tick: %w", err)
	}

	var currentPrice float64
	if pool.CurrentSqrtPrice != nil && pool.CurrentSqrtPrice.Sign() > 0 {
		currentPrice, err = tickmath.SqrtPriceToPrice(pool.CurrentSqrtPrice, conv)
	} else {
		currentPrice, err = tickmath.TickToPrice(pool.CurrentTick, conv)
	}
	if err != nil {
		return model.PositionValuation{}, fmt.Errorf("current price: %w", err)
	}

	amounts, err := liquidity.Decompose(pos.Liquidity, pos.Range.Lower, pos.Range.Upper, pool.CurrentTick, pool.CurrentSqrtPrice, conv)
	if err != nil {
		return model.PositionValuation{}, err
	}
	amount0, _ := amounts.Amount0.Float64()
	amount1, _ := amounts.Amount1.Float64()

	// Half-open interval, matching on-chain semantics: a position earns fees
	// while lower <= current < upper. An empty position earns nothing, so
	// zero liquidity is never reported as in range.
	inRange := pool.CurrentTick >= pos.Range.Lower && pool.CurrentTick < pos.Range.Upper &&
		pos.Liquidity != nil && pos.Liquidity.Sign() > 0

	fee0 := scaleFee(pos.FeeOwed0, conv.Token0Decimals)
	fee1 := scaleFee(pos.FeeOwed1, conv.Token1Decimals)

	out := model.PositionValuation{
		PositionID:         pos.ID,
		PoolID:             pos.PoolID,
		Network:            pool.Network,
		Source:             pos.Source,
		Amount0:            amount0,
		Amount1:            amount1,
		PriceLower:         priceLower,
		PriceUpper:         priceUpper,
		CurrentPrice:       currentPrice,
		InRange:            inRange,
		Fee0:               fee0,
		Fee1:               fee1,
		UncollectedFee0Usd: mulPrice(fee0, prices.Token0Usd),
		UncollectedFee1Usd: mulPrice(fee1, prices.Token1Usd),
	}

	if prices.Token0Usd != nil && prices.Token1Usd != nil {
		tvl := amount0*(*prices.Token0Usd) + amount1*(*prices.Token1Usd)
		out.TvlUsd = &tvl

		if prices.ReportedTvlUsd != nil && *prices.ReportedTvlUsd > 0 {
			gap := math.Abs(tvl-*prices.ReportedTvlUsd) / *prices.ReportedTvlUsd
			if gap > tvlMismatchRatio {
				out.Warnings = append(out.Warnings, model.NewWarning(model.WarnTvlMismatch,
					"computed tvl %.2f differs from reported %.2f by %.0f%%", tvl, *prices.ReportedTvlUsd, gap*100))
			}
		}
	}

	lo, hi := priceLower, priceUpper
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo > 0 && hi/lo > wideRangeFactor {
		out.Warnings = append(out.Warnings, model.NewWarning(model.WarnWideRange,
			"price range spans %.0fx (lower %.10g, upper %.10g)", hi/lo, lo, hi))
	}

	return out, nil
}

func scaleFee(fee *big.Int, decimals int) float64 {
	if fee == nil || fee.Sign() == 0 {
		return 0
	}
	value := new(big.Float).SetInt(fee)
	value.Quo(value, new(big.Float).SetFloat64(math.Pow10(decimals)))
	out, _ := value.Float64()
	return out
}

func mulPrice(amount float64, priceUsd *float64) *float64 {
	if priceUsd == nil {
		return nil
	}
	usd := amount * *priceUsd
	return &usd
}
