package protocol

import (
	"fmt"
	"math/big"

	"clmScope/internal/model"
	"clmScope/internal/tickmath"
)

// AdaptPool converts a loosely-typed pool record into a validated snapshot
// with a resolved convention.
func AdaptPool(raw model.RawPool) (model.PoolSnapshot, error) {
	conv, err := Convention(raw.Protocol, raw.Token0Decimals, raw.Token1Decimals, raw.InvertPair)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s: %w", raw.PoolID, err)
	}
	if err := tickmath.ValidateConvention(conv); err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s: %w", raw.PoolID, err)
	}

	currentTick, err := tickmath.NormalizeTick(raw.CurrentTick, conv)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s current tick: %w", raw.PoolID, err)
	}

	sqrtPrice, err := parseOptionalBigInt(raw.SqrtPrice)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s sqrt price: %w", raw.PoolID, err)
	}
	totalLiquidity, err := parseOptionalBigInt(raw.Liquidity)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s liquidity: %w", raw.PoolID, err)
	}

	return model.PoolSnapshot{
		State: model.PoolState{
			PoolID:           raw.PoolID,
			Network:          raw.Network,
			TickSpacing:      raw.TickSpacing,
			CurrentTick:      currentTick,
			CurrentSqrtPrice: sqrtPrice,
			TotalLiquidity:   totalLiquidity,
		},
		Convention:     conv,
		Token0PriceUsd: raw.Token0PriceUsd,
		Token1PriceUsd: raw.Token1PriceUsd,
		ReportedTvlUsd: raw.ReportedTvlUsd,
	}, nil
}

// AdaptPosition converts a loosely-typed position record. Ticks run through
// two's-complement normalization bounded by the pool's convention, and the
// range invariant is enforced before any math sees the position.
func AdaptPosition(raw model.RawPosition, conv model.PriceConvention, source string) (model.Position, error) {
	tickLower, err := tickmath.NormalizeTick(raw.TickLower, conv)
	if err != nil {
		return model.Position{}, fmt.Errorf("position %s lower tick: %w", raw.ID, err)
	}
	tickUpper, err := tickmath.NormalizeTick(raw.TickUpper, conv)
	if err != nil {
		return model.Position{}, fmt.Errorf("position %s upper tick: %w", raw.ID, err)
	}

	tickRange := model.TickRange{Lower: tickLower, Upper: tickUpper}
	if err := tickRange.Validate(); err != nil {
		return model.Position{}, fmt.Errorf("position %s: %w", raw.ID, err)
	}

	liq, err := parseOptionalBigInt(raw.Liquidity)
	if err != nil {
		return model.Position{}, fmt.Errorf("position %s liquidity: %w", raw.ID, err)
	}
	if liq == nil {
		liq = big.NewInt(0)
	}
	feeOwed0, err := parseOptionalBigInt(raw.FeeOwed0)
	if err != nil {
		return model.Position{}, fmt.Errorf("position %s fee owed0: %w", raw.ID, err)
	}
	feeOwed1, err := parseOptionalBigInt(raw.FeeOwed1)
	if err != nil {
		return model.Position{}, fmt.Errorf("position %s fee owed1: %w", raw.ID, err)
	}

	return model.Position{
		ID:        raw.ID,
		PoolID:    raw.PoolID,
		Range:     tickRange,
		Liquidity: liq,
		FeeOwed0:  feeOwed0,
		FeeOwed1:  feeOwed1,
		Source:    source,
	}, nil
}

func parseOptionalBigInt(value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", value)
	}
	return parsed, nil
}
