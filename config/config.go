package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all screener configuration. It is loaded once at startup
// and passed by value into the pipeline; nothing mutates it afterwards.
type Config struct {
	Universe struct {
		URL    string `yaml:"url"`
		Suffix string `yaml:"suffix"`
	} `yaml:"universe"`
	Data struct {
		BaseURL        string `yaml:"base_url"`
		LookbackWindow string `yaml:"lookback_window"`
		Interval       string `yaml:"interval"`
		MinHistory     int    `yaml:"min_history"`
		RequestTimeout int    `yaml:"request_timeout"`
		RequestsPerSec int    `yaml:"requests_per_sec"`
	} `yaml:"data"`
	Scan struct {
		EMAWindows            []int   `yaml:"ema_windows"`
		ADXThreshold          float64 `yaml:"adx_threshold"`
		VolumeSurgeMultiplier float64 `yaml:"volume_surge_multiplier"`
		BBSqueezePct          float64 `yaml:"bb_squeeze_pct"`
		ATRStopMultiplier     float64 `yaml:"atr_stop_multiplier"`
		ATRTargetMultiplier   float64 `yaml:"atr_target_multiplier"`
		MaxRiskReward         float64 `yaml:"max_risk_reward"`
		MinScore              int     `yaml:"min_score"`
		TopN                  int     `yaml:"top_n"`
		Workers               int     `yaml:"workers"`
	} `yaml:"scan"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults alone
// give the reference behavior.
func Load(path string) (*Config, error) {
	cfg := &Config{}

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("UNIVERSE_URL"); v != "" {
		cfg.Universe.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("SCAN_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.TopN = n
		}
	}
	if v := os.Getenv("SCAN_MIN_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.MinScore = n
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Universe.URL == "" {
		c.Universe.URL = "https://archives.nseindia.com/content/indices/ind_nifty100list.csv"
	}
	if c.Universe.Suffix == "" {
		c.Universe.Suffix = ".NS"
	}
	if c.Data.BaseURL == "" {
		c.Data.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Data.LookbackWindow == "" {
		c.Data.LookbackWindow = "6mo"
	}
	if c.Data.Interval == "" {
		c.Data.Interval = "1d"
	}
	if c.Data.MinHistory == 0 {
		c.Data.MinHistory = 120
	}
	if c.Data.RequestTimeout == 0 {
		c.Data.RequestTimeout = 30
	}
	if c.Data.RequestsPerSec == 0 {
		c.Data.RequestsPerSec = 5
	}
	if len(c.Scan.EMAWindows) == 0 {
		c.Scan.EMAWindows = []int{20, 50, 100}
	}
	if c.Scan.ADXThreshold == 0 {
		c.Scan.ADXThreshold = 20
	}
	if c.Scan.VolumeSurgeMultiplier == 0 {
		c.Scan.VolumeSurgeMultiplier = 1.5
	}
	if c.Scan.BBSqueezePct == 0 {
		c.Scan.BBSqueezePct = 0.5
	}
	if c.Scan.ATRStopMultiplier == 0 {
		c.Scan.ATRStopMultiplier = 1.0
	}
	if c.Scan.ATRTargetMultiplier == 0 {
		c.Scan.ATRTargetMultiplier = 2.0
	}
	if c.Scan.MaxRiskReward == 0 {
		c.Scan.MaxRiskReward = 0.6
	}
	if c.Scan.MinScore == 0 {
		c.Scan.MinScore = 6
	}
	if c.Scan.TopN == 0 {
		c.Scan.TopN = 5
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 8
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks option ranges before a scan starts.
func (c *Config) Validate() error {
	if len(c.Scan.EMAWindows) != 3 {
		return fmt.Errorf("scan.ema_windows must list exactly 3 periods, got %d", len(c.Scan.EMAWindows))
	}
	if c.Scan.EMAWindows[0] >= c.Scan.EMAWindows[1] || c.Scan.EMAWindows[1] >= c.Scan.EMAWindows[2] {
		return fmt.Errorf("scan.ema_windows must be strictly increasing")
	}
	if c.Scan.MinScore < 0 || c.Scan.MinScore > 10 {
		return fmt.Errorf("scan.min_score must be in [0,10], got %d", c.Scan.MinScore)
	}
	if c.Scan.MaxRiskReward <= 0 {
		return fmt.Errorf("scan.max_risk_reward must be positive")
	}
	if c.Scan.ATRStopMultiplier <= 0 || c.Scan.ATRTargetMultiplier <= 0 {
		return fmt.Errorf("atr multipliers must be positive")
	}
	if c.Scan.TopN <= 0 {
		return fmt.Errorf("scan.top_n must be positive, got %d", c.Scan.TopN)
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive, got %d", c.Scan.Workers)
	}
	if c.Data.MinHistory < c.Scan.EMAWindows[2] {
		return fmt.Errorf("data.min_history %d is shorter than the longest EMA window %d",
			c.Data.MinHistory, c.Scan.EMAWindows[2])
	}
	return nil
}
