package model

import "errors"

var (
	// ErrInvalidPriceConvention marks a pool whose decimals or log base could
	// not be resolved. Fatal to that pool's valuation only.
	ErrInvalidPriceConvention = errors.New("invalid price convention")

	// ErrInvalidTickRange marks a position with lowerTick >= upperTick.
	// Fatal to that position only.
	ErrInvalidTickRange = errors.New("invalid tick range")

	// ErrPriceUnavailable marks a missing USD price for a token. The affected
	// USD field degrades to unknown; the valuation itself still succeeds.
	ErrPriceUnavailable = errors.New("usd price unavailable")
)
