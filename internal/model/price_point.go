package model

import "time"

// PricePoint is one observation in a pool's daily price or APY series.
// Series are strictly timestamp-ordered and immutable per analysis window.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	VolumeUsd float64   `json:"volume_usd"`
}
