package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clmScope/internal/model"
)

// Store provides Postgres persistence for analytics and valuations.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPoolAnalytics inserts or updates analytics keyed by
// (pool_address, network). Records are replaced wholesale, never patched.
func (s *Store) UpsertPoolAnalytics(ctx context.Context, records []model.PoolAnalytics) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range records {
		batch.Queue(`
			INSERT INTO pool_analytics (
				pool_address, network, source, fee_apr,
				volatility_1d, volatility_7d, volatility_30d,
				fvr, il_risk_score, recommendation,
				expected_il_30d, breakeven_fee_apr, computed_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
			ON CONFLICT (pool_address, network)
			DO UPDATE SET
				source = EXCLUDED.source,
				fee_apr = EXCLUDED.fee_apr,
				volatility_1d = EXCLUDED.volatility_1d,
				volatility_7d = EXCLUDED.volatility_7d,
				volatility_30d = EXCLUDED.volatility_30d,
				fvr = EXCLUDED.fvr,
				il_risk_score = EXCLUDED.il_risk_score,
				recommendation = EXCLUDED.recommendation,
				expected_il_30d = EXCLUDED.expected_il_30d,
				breakeven_fee_apr = EXCLUDED.breakeven_fee_apr,
				computed_at = EXCLUDED.computed_at,
				updated_at = now()
		`,
			a.PoolAddress,
			a.Network,
			a.Source,
			a.FeeApr,
			a.Volatility1d,
			a.Volatility7d,
			a.Volatility30d,
			a.Fvr,
			a.IlRiskScore,
			string(a.Recommendation),
			a.ExpectedIl30d,
			a.BreakevenFeeApr,
			a.ComputedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertValuations appends valuation snapshots.
func (s *Store) InsertValuations(ctx context.Context, records []model.PositionValuation) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range records {
		batch.Queue(`
			INSERT INTO position_valuations (
				position_id, pool_id, network, source,
				amount0, amount1, price_lower, price_upper, current_price,
				in_range, fee0, fee1, uncollected_fee0_usd, uncollected_fee1_usd,
				tvl_usd, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now())
		`,
			v.PositionID,
			v.PoolID,
			v.Network,
			v.Source,
			v.Amount0,
			v.Amount1,
			v.PriceLower,
			v.PriceUpper,
			v.CurrentPrice,
			v.InRange,
			v.Fee0,
			v.Fee1,
			v.UncollectedFee0Usd,
			v.UncollectedFee1Usd,
			v.TvlUsd,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
