package model

import "math/big"

// PoolState is a wholesale pool snapshot. It is replaced, never mutated.
type PoolState struct {
	PoolID           string
	Network          string
	TickSpacing      int32
	CurrentTick      int32
	CurrentSqrtPrice *big.Int
	TotalLiquidity   *big.Int
}

// PoolSnapshot bundles a pool state with its resolved convention and the
// current token USD prices, as delivered by the pool-state collaborator.
// Nil price pointers mean the price is unknown, not zero.
type PoolSnapshot struct {
	State          PoolState
	Convention     PriceConvention
	Token0PriceUsd *float64
	Token1PriceUsd *float64
	ReportedTvlUsd *float64
}
