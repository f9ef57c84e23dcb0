// Package batch fans valuation and analytics calls out across a bounded
// worker pool. Every core call is pure and snapshot-fed, so workers need no
// coordination; the only job here is bounding concurrency and isolating
// per-item failures so one bad pool or position never blanks a batch.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"clmScope/internal/analytics"
	"clmScope/internal/model"
	"clmScope/internal/protocol"
	"clmScope/internal/provider"
	"clmScope/internal/valuation"
)

const defaultWorkers = 8

// ValuationResult is one position's outcome. Exactly one of Valuation and
// Err is set; failed items stay in the batch output as error records.
type ValuationResult struct {
	PositionID string                   `json:"position_id"`
	Valuation  *model.PositionValuation `json:"valuation,omitempty"`
	Err        string                   `json:"error,omitempty"`
}

// AnalyticsResult is one pool's outcome.
type AnalyticsResult struct {
	PoolAddress string               `json:"pool_address"`
	Analytics   *model.PoolAnalytics `json:"analytics,omitempty"`
	Err         string               `json:"error,omitempty"`
}

// Valuator runs position valuations against a pool-state provider.
type Valuator struct {
	Pools   provider.PoolStateProvider
	Workers int
	Logger  *zap.Logger
}

// Run valuates every position, preserving input order. Per-item errors are
// captured in the result slice; only a cancelled context aborts the batch.
func (v *Valuator) Run(ctx context.Context, positions []model.RawPosition, source string) []ValuationResult {
	logger := v.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]ValuationResult, len(positions))
	runBounded(ctx, len(positions), v.Workers, func(i int) {
		raw := positions[i]
		results[i] = ValuationResult{PositionID: raw.ID}

		val, err := v.valuateOne(ctx, raw, source)
		if err != nil {
			results[i].Err = err.Error()
			logger.Warn("position valuation failed",
				zap.String("position_id", raw.ID),
				zap.String("pool_id", raw.PoolID),
				zap.Error(err),
			)
			return
		}
		results[i].Valuation = val
	})
	return results
}

func (v *Valuator) valuateOne(ctx context.Context, raw model.RawPosition, source string) (val *model.PositionValuation, err error) {
	// A malformed snapshot must degrade to a per-item error record, never
	// take down the batch.
	defer func() {
		if r := recover(); r != nil {
			val = nil
			err = fmt.Errorf("valuation panic: %v", r)
		}
	}()

	snapshot, err := v.Pools.PoolSnapshot(ctx, raw.PoolID)
	if err != nil {
		return nil, err
	}

	pos, err := protocol.AdaptPosition(raw, snapshot.Convention, source)
	if err != nil {
		return nil, err
	}

	out, err := valuation.Valuate(pos, snapshot.State, snapshot.Convention, valuation.USDPrices{
		Token0Usd:      snapshot.Token0PriceUsd,
		Token1Usd:      snapshot.Token1PriceUsd,
		ReportedTvlUsd: snapshot.ReportedTvlUsd,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyzer scores pools from their raw price series.
type Analyzer struct {
	Workers int
	Logger  *zap.Logger
}

// Run analyzes every series, preserving input order.
func (a *Analyzer) Run(ctx context.Context, series []model.RawSeries) []AnalyticsResult {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	now := time.Now().UTC()
	results := make([]AnalyticsResult, len(series))
	runBounded(ctx, len(series), a.Workers, func(i int) {
		raw := series[i]
		results[i] = AnalyticsResult{PoolAddress: raw.PoolAddress}

		out, err := analyzeOne(raw, now)
		if err != nil {
			results[i].Err = err.Error()
			logger.Warn("pool analytics failed",
				zap.String("pool_address", raw.PoolAddress),
				zap.String("network", raw.Network),
				zap.Error(err),
			)
			return
		}
		results[i].Analytics = out
	})
	return results
}

func analyzeOne(raw model.RawSeries, now time.Time) (out *model.PoolAnalytics, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("analytics panic: %v", r)
		}
	}()

	result, err := analytics.AnalyzePool(raw, now)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// runBounded executes fn(0..n-1) across at most `workers` goroutines.
// Items not yet started when the context is cancelled are skipped; their
// zero-value results carry neither a valuation nor an error, which callers
// report as incomplete.
func runBounded(ctx context.Context, n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}
