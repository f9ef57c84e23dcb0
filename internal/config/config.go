package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ValuateConfig holds settings for the valuate command.
type ValuateConfig struct {
	Positions       string
	StaticPositions string
	Pools           string
	Out             string
	PGDSN           string
	Workers         int
	LogLevel        string
}

// AnalyzeConfig holds settings for the analyze command.
type AnalyzeConfig struct {
	Series   string
	Out      string
	PGDSN    string
	Workers  int
	LogLevel string
}

// LoadValuate merges config file, environment variables, and flags.
func LoadValuate(cfgFile string, flags *pflag.FlagSet) (ValuateConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ValuateConfig{}, err
	}

	return ValuateConfig{
		Positions:       v.GetString("positions"),
		StaticPositions: v.GetString("static-positions"),
		Pools:           v.GetString("pools"),
		Out:             v.GetString("out"),
		PGDSN:           v.GetString("pg-dsn"),
		Workers:         v.GetInt("workers"),
		LogLevel:        v.GetString("log-level"),
	}, nil
}

// LoadAnalyze merges config file, environment variables, and flags.
func LoadAnalyze(cfgFile string, flags *pflag.FlagSet) (AnalyzeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AnalyzeConfig{}, err
	}

	return AnalyzeConfig{
		Series:   v.GetString("series"),
		Out:      v.GetString("out"),
		PGDSN:    v.GetString("pg-dsn"),
		Workers:  v.GetInt("workers"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("CLMSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", 8)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
