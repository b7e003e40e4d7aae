package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"RiskRange/internal/riskrange"
)

// Config holds all application configuration.
type Config struct {
	Tickers       []string `yaml:"tickers"`
	LookbackYears int      `yaml:"lookback_years"`

	Params ParamsConfig `yaml:"params"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Output struct {
		Dir       string `yaml:"dir"`
		TableRows int    `yaml:"table_rows"`
	} `yaml:"output"`
	Proxy string `yaml:"proxy"`
}

// ParamsConfig mirrors riskrange.Params in YAML form.
type ParamsConfig struct {
	HalfLife  int     `yaml:"half_life"`
	ATRWindow int     `yaml:"atr_window"`
	VolWindow int     `yaml:"vol_window"`
	VoVWindow int     `yaml:"vov_window"`
	Z         float64 `yaml:"z"`
	WEwma     float64 `yaml:"w_ewma"`
	WGK       float64 `yaml:"w_gk"`
	WATR      float64 `yaml:"w_atr"`
	VolAdj    float64 `yaml:"vol_adj"`
	VoVAdj    float64 `yaml:"vov_adj"`
	TiltGamma float64 `yaml:"tilt_gamma"`
}

// RangeParams converts the YAML parameter block to riskrange.Params.
func (p ParamsConfig) RangeParams() riskrange.Params {
	return riskrange.Params{
		HalfLife:  p.HalfLife,
		ATRWindow: p.ATRWindow,
		VolWindow: p.VolWindow,
		VoVWindow: p.VoVWindow,
		Z:         p.Z,
		WEwma:     p.WEwma,
		WGK:       p.WGK,
		WATR:      p.WATR,
		VolAdj:    p.VolAdj,
		VoVAdj:    p.VoVAdj,
		TiltGamma: p.TiltGamma,
	}
}

func defaults() *Config {
	cfg := &Config{
		Tickers:       []string{"AAPL", "MSFT"},
		LookbackYears: 2,
	}
	p := riskrange.DefaultParams()
	cfg.Params = ParamsConfig{
		HalfLife:  p.HalfLife,
		ATRWindow: p.ATRWindow,
		VolWindow: p.VolWindow,
		VoVWindow: p.VoVWindow,
		Z:         p.Z,
		WEwma:     p.WEwma,
		WGK:       p.WGK,
		WATR:      p.WATR,
		VolAdj:    p.VolAdj,
		VoVAdj:    p.VoVAdj,
		TiltGamma: p.TiltGamma,
	}
	cfg.Cache.SQLitePath = "data/riskrange.db"
	cfg.Cache.TTL = 12 * time.Hour
	cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	cfg.Output.Dir = "out"
	cfg.Output.TableRows = 60
	return cfg
}

// Load reads config from a YAML file over the built-in defaults, then applies
// environment variable overrides. A missing file leaves the defaults intact;
// keys present in the file (including explicit zeros) win over defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RISKRANGE_TICKERS"); v != "" {
		cfg.Tickers = splitTickers(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable setup. Parameter
// validation is the riskrange package's own fail-fast check.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	for _, t := range c.Tickers {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("empty ticker in list")
		}
	}
	if c.LookbackYears <= 0 {
		return fmt.Errorf("lookback_years must be positive, got %d", c.LookbackYears)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Output.TableRows <= 0 {
		return fmt.Errorf("output.table_rows must be positive, got %d", c.Output.TableRows)
	}
	return c.Params.RangeParams().Validate()
}

func splitTickers(s string) []string {
	parts := strings.Split(strings.ToUpper(strings.ReplaceAll(s, " ", "")), ",")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
