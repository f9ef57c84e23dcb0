package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "clmscope",
		Short:        "CLM position valuation and pool risk analytics",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	valuateCmd := &cobra.Command{
		Use:   "valuate",
		Short: "Valuate positions against pool snapshots",
		RunE:  runValuate,
	}

	valuateCmd.Flags().String("positions", "", "positions JSONL path")
	valuateCmd.Flags().String("static-positions", "", "fallback static positions JSONL path")
	valuateCmd.Flags().String("pools", "", "pool snapshots JSONL path")
	valuateCmd.Flags().String("out", "./data/valuations.jsonl", "output JSONL path")
	valuateCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	valuateCmd.Flags().Int("workers", 8, "concurrent valuations")
	valuateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(valuateCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute volatility, FVR, and IL risk per pool",
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().String("series", "", "price series JSONL path")
	analyzeCmd.Flags().String("out", "./data/analytics.jsonl", "output JSONL path")
	analyzeCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	analyzeCmd.Flags().Int("workers", 8, "concurrent pools")
	analyzeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(analyzeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
