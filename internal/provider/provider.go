// Package provider defines the collaborator boundaries the core consumes:
// position discovery, pool-state snapshots, and price series. The core never
// fetches anything itself; providers hand over complete snapshots.
package provider

import (
	"context"

	"clmScope/internal/model"
)

// PositionProvider supplies raw position records for valuation. Source tags
// the origin of the data ("file", "static", ...) and must travel with every
// record it produces, so fallback data is never mistaken for live data.
type PositionProvider interface {
	Positions(ctx context.Context) ([]model.RawPosition, error)
	Source() string
}

// PoolStateProvider resolves one pool's snapshot and convention by id.
type PoolStateProvider interface {
	PoolSnapshot(ctx context.Context, poolID string) (model.PoolSnapshot, error)
}

// SeriesProvider supplies ordered price/APY series per pool.
type SeriesProvider interface {
	Series(ctx context.Context) ([]model.RawSeries, error)
	Source() string
}
