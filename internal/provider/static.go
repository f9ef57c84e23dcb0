package provider

import (
	"context"

	"clmScope/internal/model"
)

// SourceStatic tags data from a static fallback provider.
const SourceStatic = "static"

// StaticPositionProvider serves a fixed list of position records. It stands
// in when live discovery fails; because it implements the same interface and
// carries its own source tag, static data is never silently blended with
// live data.
type StaticPositionProvider struct {
	positions []model.RawPosition
}

func NewStaticPositionProvider(positions []model.RawPosition) *StaticPositionProvider {
	return &StaticPositionProvider{positions: positions}
}

// Positions returns a fresh copy of the configured records.
func (p *StaticPositionProvider) Positions(_ context.Context) ([]model.RawPosition, error) {
	out := make([]model.RawPosition, len(p.positions))
	copy(out, p.positions)
	return out, nil
}

func (p *StaticPositionProvider) Source() string {
	return SourceStatic
}
