package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RiskRange/internal/cache"
	"RiskRange/internal/collector"
	"RiskRange/internal/config"
)

// Execute wires the CLI and runs the selected command.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "riskrange",
		Short: "Volatility-adjusted risk range bands for stock tickers",
	}
	root.PersistentFlags().String("config", "configs/config.yaml", "path to yaml config")
	root.PersistentFlags().StringSlice("tickers", nil, "tickers to process (overrides config)")
	root.PersistentFlags().Int("years", 0, "lookback window in years (overrides config)")
	root.PersistentFlags().Bool("no-cache", false, "bypass the sqlite series cache")

	root.AddCommand(reportCmd(), exportCmd(), watchCmd())
	return root.ExecuteContext(ctx)
}

// loadConfig resolves config file, environment and flag overrides, validated.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if tickers, _ := cmd.Flags().GetStringSlice("tickers"); len(tickers) > 0 {
		cfg.Tickers = tickers
	}
	if years, _ := cmd.Flags().GetInt("years"); years > 0 {
		cfg.LookbackYears = years
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCollector assembles the fetcher, cache and pipeline for the config.
// The returned cache must be closed by the caller.
func newCollector(cmd *cobra.Command, cfg *config.Config) (*collector.Collector, cache.Cache) {
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	var c cache.Cache = cache.NewNoop()
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if !noCache && cfg.Cache.SQLitePath != "" {
		sc, err := cache.NewSQLiteCache(cfg.Cache.SQLitePath, cfg.Cache.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite cache unavailable, continuing without cache")
		} else {
			c = sc
		}
	}

	return collector.NewCollector(fetcher, c, cfg.LookbackYears, cfg.Params.RangeParams()), c
}
