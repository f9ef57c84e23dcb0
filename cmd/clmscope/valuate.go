package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clmScope/internal/batch"
	"clmScope/internal/config"
	"clmScope/internal/model"
	"clmScope/internal/provider"
	"clmScope/internal/storage"
	"clmScope/internal/storage/postgres"
)

func runValuate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadValuate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Pools == "" {
		return fmt.Errorf("pools path is required")
	}
	if cfg.Positions == "" && cfg.StaticPositions == "" {
		return fmt.Errorf("positions or static-positions path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	positionProvider, err := pickPositionProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	positions, err := positionProvider.Positions(ctx)
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	poolProvider := provider.NewFilePoolProvider(cfg.Pools, provider.NewMemoryCache())

	valuator := &batch.Valuator{
		Pools:   poolProvider,
		Workers: cfg.Workers,
		Logger:  logger,
	}

	logger.Info("valuate start",
		zap.String("positions", cfg.Positions),
		zap.String("pools", cfg.Pools),
		zap.String("source", positionProvider.Source()),
		zap.Int("count", len(positions)),
		zap.Int("workers", cfg.Workers),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	results := valuator.Run(ctx, positions, positionProvider.Source())

	sink := storage.NewJsonlStorage(cfg.Out)
	if err := sink.PutValuations(results); err != nil {
		return fmt.Errorf("write valuations: %w", err)
	}

	if cfg.PGDSN != "" {
		if err := storeValuations(ctx, cfg.PGDSN, results); err != nil {
			return fmt.Errorf("store valuations: %w", err)
		}
	}

	var failed int
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}
	logger.Info("valuate complete",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)

	return ctx.Err()
}

// pickPositionProvider prefers the live positions file and falls back to the
// static provider when the file is absent. The chosen provider's source tag
// travels with every result, so static data stays identifiable downstream.
func pickPositionProvider(ctx context.Context, cfg config.ValuateConfig, logger *zap.Logger) (provider.PositionProvider, error) {
	if cfg.Positions != "" {
		if _, err := os.Stat(cfg.Positions); err == nil {
			return provider.NewFilePositionProvider(cfg.Positions), nil
		} else if cfg.StaticPositions == "" {
			return nil, fmt.Errorf("positions file unavailable: %s", cfg.Positions)
		}
		logger.Warn("positions file unavailable, falling back to static positions",
			zap.String("positions", cfg.Positions),
			zap.String("static_positions", cfg.StaticPositions),
		)
	}

	static := provider.NewFilePositionProvider(cfg.StaticPositions)
	records, err := static.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load static positions: %w", err)
	}
	return provider.NewStaticPositionProvider(records), nil
}

func storeValuations(ctx context.Context, dsn string, results []batch.ValuationResult) error {
	store, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	valuations := make([]model.PositionValuation, 0, len(results))
	for _, r := range results {
		if r.Valuation != nil {
			valuations = append(valuations, *r.Valuation)
		}
	}
	return store.InsertValuations(ctx, valuations)
}
