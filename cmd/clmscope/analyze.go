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

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAnalyze(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Series == "" {
		return fmt.Errorf("series path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seriesProvider := provider.NewFileSeriesProvider(cfg.Series)
	series, err := seriesProvider.Series(ctx)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	for i := range series {
		if series[i].Source == "" {
			series[i].Source = seriesProvider.Source()
		}
	}

	analyzer := &batch.Analyzer{
		Workers: cfg.Workers,
		Logger:  logger,
	}

	logger.Info("analyze start",
		zap.String("series", cfg.Series),
		zap.Int("pools", len(series)),
		zap.Int("workers", cfg.Workers),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	results := analyzer.Run(ctx, series)

	sink := storage.NewJsonlStorage(cfg.Out)
	if err := sink.PutAnalytics(results); err != nil {
		return fmt.Errorf("write analytics: %w", err)
	}

	if cfg.PGDSN != "" {
		if err := storeAnalytics(ctx, cfg.PGDSN, results); err != nil {
			return fmt.Errorf("store analytics: %w", err)
		}
	}

	var failed int
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}
	logger.Info("analyze complete",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)

	return ctx.Err()
}

func storeAnalytics(ctx context.Context, dsn string, results []batch.AnalyticsResult) error {
	store, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	records := make([]model.PoolAnalytics, 0, len(results))
	for _, r := range results {
		if r.Analytics != nil {
			records = append(records, *r.Analytics)
		}
	}
	return store.UpsertPoolAnalytics(ctx, records)
}
