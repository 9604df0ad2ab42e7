package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Scan.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.Scan.TopN)
	}
	if cfg.Scan.MinScore != 6 {
		t.Errorf("MinScore = %d, want 6", cfg.Scan.MinScore)
	}
	if cfg.Scan.MaxRiskReward != 0.6 {
		t.Errorf("MaxRiskReward = %v, want 0.6", cfg.Scan.MaxRiskReward)
	}
	if cfg.Data.MinHistory != 120 {
		t.Errorf("MinHistory = %d, want 120", cfg.Data.MinHistory)
	}
	if got := cfg.Scan.EMAWindows; len(got) != 3 || got[0] != 20 || got[1] != 50 || got[2] != 100 {
		t.Errorf("EMAWindows = %v, want [20 50 100]", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
scan:
  top_n: 10
  min_score: 7
  max_risk_reward: 0.55
data:
  min_history: 150
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Scan.TopN != 10 {
		t.Errorf("TopN = %d, want 10", cfg.Scan.TopN)
	}
	if cfg.Scan.MinScore != 7 {
		t.Errorf("MinScore = %d, want 7", cfg.Scan.MinScore)
	}
	if cfg.Data.MinHistory != 150 {
		t.Errorf("MinHistory = %d, want 150", cfg.Data.MinHistory)
	}
	// untouched options still fall back to defaults
	if cfg.Scan.ADXThreshold != 20 {
		t.Errorf("ADXThreshold = %v, want default 20", cfg.Scan.ADXThreshold)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCAN_TOP_N", "3")
	t.Setenv("SCAN_MIN_SCORE", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Scan.TopN != 3 {
		t.Errorf("TopN = %d, want 3", cfg.Scan.TopN)
	}
	if cfg.Scan.MinScore != 8 {
		t.Errorf("MinScore = %d, want 8", cfg.Scan.MinScore)
	}
}

func TestValidateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"two ema windows", func(c *Config) { c.Scan.EMAWindows = []int{20, 50} }},
		{"non-increasing ema windows", func(c *Config) { c.Scan.EMAWindows = []int{50, 20, 100} }},
		{"min score too high", func(c *Config) { c.Scan.MinScore = 11 }},
		{"negative top n", func(c *Config) { c.Scan.TopN = -1 }},
		{"zero target multiplier", func(c *Config) { c.Scan.ATRTargetMultiplier = -2 }},
		{"history shorter than slow ema", func(c *Config) { c.Data.MinHistory = 80 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
