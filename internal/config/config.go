package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/camuig/lumen-watch/internal/horizon"
)

type Config struct {
	Horizon  HorizonConfig  `yaml:"horizon"`
	Watch    WatchConfig    `yaml:"watch"`
	Fees     FeesConfig     `yaml:"fees"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Telegram TelegramConfig `yaml:"telegram"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HorizonConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type WatchConfig struct {
	Pairs         []PairConfig `yaml:"pairs"`
	Interval      string       `yaml:"interval"`
	Resolution    string       `yaml:"resolution"`
	Concurrency   int          `yaml:"concurrency"`
	MinConfidence int          `yaml:"min_confidence"`
}

// PairConfig names a market in canonical asset form: "native" or
// "CODE:ISSUER".
type PairConfig struct {
	Base    string `yaml:"base"`
	Counter string `yaml:"counter"`
}

type FeesConfig struct {
	SurgeFactor float64 `yaml:"surge_factor"`
}

type DeepSeekConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type WebConfig struct {
	Port                int `yaml:"port"`
	OrderBookTTLSeconds int `yaml:"orderbook_ttl_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

var resolutions = map[string]int64{
	"1m":  horizon.Resolution1m,
	"5m":  horizon.Resolution5m,
	"15m": horizon.Resolution15m,
	"1h":  horizon.Resolution1h,
	"1d":  horizon.Resolution1d,
	"1w":  horizon.Resolution1w,
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Horizon.URL == "" {
		cfg.Horizon.URL = "https://horizon.stellar.org"
	}
	if cfg.Horizon.TimeoutSeconds == 0 {
		cfg.Horizon.TimeoutSeconds = 30
	}
	if cfg.Watch.Interval == "" {
		cfg.Watch.Interval = "15m"
	}
	if cfg.Watch.Resolution == "" {
		cfg.Watch.Resolution = "1h"
	}
	if cfg.Watch.Concurrency == 0 {
		cfg.Watch.Concurrency = 4
	}
	if cfg.Watch.MinConfidence == 0 {
		cfg.Watch.MinConfidence = 70
	}
	if cfg.Fees.SurgeFactor == 0 {
		cfg.Fees.SurgeFactor = 5.0
	}
	if cfg.DeepSeek.Model == "" {
		cfg.DeepSeek.Model = "deepseek-reasoner"
	}
	if cfg.DeepSeek.TimeoutSeconds == 0 {
		cfg.DeepSeek.TimeoutSeconds = 120
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Web.OrderBookTTLSeconds == 0 {
		cfg.Web.OrderBookTTLSeconds = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.DeepSeek.APIKey == "" {
		return fmt.Errorf("deepseek.api_key is required")
	}
	if len(c.Watch.Pairs) == 0 {
		return fmt.Errorf("watch.pairs must list at least one pair")
	}
	if _, err := c.Pairs(); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Watch.Interval); err != nil {
		return fmt.Errorf("invalid watch.interval %q: %w", c.Watch.Interval, err)
	}
	if _, ok := resolutions[c.Watch.Resolution]; !ok {
		return fmt.Errorf("invalid watch.resolution %q: want one of 1m 5m 15m 1h 1d 1w", c.Watch.Resolution)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// Pairs parses the configured markets into horizon pairs.
func (c *Config) Pairs() ([]horizon.Pair, error) {
	pairs := make([]horizon.Pair, 0, len(c.Watch.Pairs))
	for _, pc := range c.Watch.Pairs {
		base, err := horizon.ParseAsset(pc.Base)
		if err != nil {
			return nil, fmt.Errorf("watch.pairs base: %w", err)
		}
		counter, err := horizon.ParseAsset(pc.Counter)
		if err != nil {
			return nil, fmt.Errorf("watch.pairs counter: %w", err)
		}
		pairs = append(pairs, horizon.Pair{Base: base, Counter: counter})
	}
	return pairs, nil
}

func (c *Config) WatchInterval() time.Duration {
	d, _ := time.ParseDuration(c.Watch.Interval)
	return d
}

// ResolutionMs maps the symbolic resolution to Horizon's millisecond bucket.
func (c *Config) ResolutionMs() int64 {
	return resolutions[c.Watch.Resolution]
}

func (c *Config) HorizonTimeout() time.Duration {
	return time.Duration(c.Horizon.TimeoutSeconds) * time.Second
}

func (c *Config) DeepSeekTimeout() time.Duration {
	return time.Duration(c.DeepSeek.TimeoutSeconds) * time.Second
}

func (c *Config) OrderBookTTL() time.Duration {
	return time.Duration(c.Web.OrderBookTTLSeconds) * time.Second
}
