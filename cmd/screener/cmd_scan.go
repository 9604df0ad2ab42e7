package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpatel-labs/niftyscan/config"
	"github.com/rpatel-labs/niftyscan/internal/marketdata"
	"github.com/rpatel-labs/niftyscan/internal/notify"
	"github.com/rpatel-labs/niftyscan/internal/render"
	"github.com/rpatel-labs/niftyscan/internal/screener"
	"github.com/rpatel-labs/niftyscan/internal/universe"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the screener over the Nifty-100 universe now",
	Long: `Fetch the current Nifty-100 constituents, analyze each symbol's
daily history, and print the ranked shortlist.

Examples:
  screener scan
  screener scan --top-n 10 --min-score 7
  screener scan --notify`,
	RunE: runScan,
}

var (
	scanConfigPath string
	scanTopN       int
	scanMinScore   int
	scanWorkers    int
	scanDeadline   time.Duration
	scanNotify     bool
	scanLogLevel   string
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanConfigPath, "config", "configs/config.yaml", "Path to configuration file")
	scanCmd.Flags().IntVar(&scanTopN, "top-n", 0, "Shortlist size (overrides config)")
	scanCmd.Flags().IntVar(&scanMinScore, "min-score", 0, "Minimum composite score (overrides config)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Concurrent symbol fetches (overrides config)")
	scanCmd.Flags().DurationVar(&scanDeadline, "deadline", 10*time.Minute, "Overall scan deadline")
	scanCmd.Flags().BoolVar(&scanNotify, "notify", false, "Send the shortlist to the configured Telegram chat")
	scanCmd.Flags().StringVar(&scanLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scanConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if scanTopN > 0 {
		cfg.Scan.TopN = scanTopN
	}
	if scanMinScore > 0 {
		cfg.Scan.MinScore = scanMinScore
	}
	if scanWorkers > 0 {
		cfg.Scan.Workers = scanWorkers
	}
	if scanLogLevel != "" {
		cfg.LogLevel = scanLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithTimeout(context.Background(), scanDeadline)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Data.RequestTimeout) * time.Second

	symbols, err := universe.NewClient(cfg.Universe.URL, timeout, cfg.Data.RequestsPerSec).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch universe: %w", err)
	}
	log.Info().Int("symbols", len(symbols)).Msg("Universe fetched")

	fetcher := marketdata.NewClient(cfg.Data.BaseURL, cfg.Universe.Suffix, timeout, cfg.Data.RequestsPerSec)
	s := screener.New(fetcher, screener.OptionsFromConfig(cfg))

	started := time.Now()
	candidates := s.Scan(ctx, symbols)
	shortlist := screener.Rank(candidates, cfg.Scan.MinScore, cfg.Scan.MaxRiskReward, cfg.Scan.TopN)

	if err := render.Table(os.Stdout, shortlist); err != nil {
		return fmt.Errorf("render shortlist: %w", err)
	}

	log.Info().
		Int("min_score", cfg.Scan.MinScore).
		Float64("max_risk_reward", cfg.Scan.MaxRiskReward).
		Float64("adx_threshold", cfg.Scan.ADXThreshold).
		Int("shortlisted", len(shortlist)).
		Str("duration", time.Since(started).Round(time.Second).String()).
		Msg("Scan finished")

	if scanNotify {
		notifier, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return fmt.Errorf("init notifier: %w", err)
		}
		if err := notifier.SendShortlist(shortlist); err != nil {
			return fmt.Errorf("notify: %w", err)
		}
	}
	return nil
}
