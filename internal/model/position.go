package model

import (
	"fmt"
	"math/big"
)

// TickRange is a position's immutable tick interval. Lower must be strictly
// below Upper; equal bounds are rejected upstream before any math runs.
type TickRange struct {
	Lower int32 `json:"lower"`
	Upper int32 `json:"upper"`
}

// Validate rejects empty or inverted ranges.
func (r TickRange) Validate() error {
	if r.Lower >= r.Upper {
		return fmt.Errorf("%w: lower %d >= upper %d", ErrInvalidTickRange, r.Lower, r.Upper)
	}
	return nil
}

// Position is one concentrated-liquidity position snapshot. Every call into
// the core treats it as fresh and complete; no derived state is cached.
type Position struct {
	ID        string
	PoolID    string
	Range     TickRange
	Liquidity *big.Int
	FeeOwed0  *big.Int
	FeeOwed1  *big.Int
	Source    string
}
