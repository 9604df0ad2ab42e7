// Package screener runs the per-symbol analysis pipeline over a universe
// and ranks the survivors into a shortlist.
package screener

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpatel-labs/niftyscan/config"
	"github.com/rpatel-labs/niftyscan/internal/indicator"
	"github.com/rpatel-labs/niftyscan/internal/marketdata"
	"github.com/rpatel-labs/niftyscan/internal/model"
	"github.com/rpatel-labs/niftyscan/internal/risk"
	"github.com/rpatel-labs/niftyscan/internal/series"
	"github.com/rpatel-labs/niftyscan/internal/signal"
)

// ErrInsufficientHistory marks a symbol whose fetched history is shorter
// than the configured minimum. The symbol is skipped, not failed.
var ErrInsufficientHistory = errors.New("insufficient history")

// Fetcher is the narrow market-data interface the screener consumes.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol, lookback, interval string) ([]model.Candle, error)
}

// Options carries everything one scan needs. Built once from config and
// never mutated.
type Options struct {
	Lookback      string
	Interval      string
	MinHistory    int
	Indicator     indicator.Params
	Thresholds    signal.Thresholds
	Risk          risk.Params
	MinScore      int
	MaxRiskReward float64
	TopN          int
	Workers       int
}

// OptionsFromConfig maps the configuration onto scan options.
func OptionsFromConfig(cfg *config.Config) Options {
	p := indicator.DefaultParams()
	p.EMAWindows = [3]int{cfg.Scan.EMAWindows[0], cfg.Scan.EMAWindows[1], cfg.Scan.EMAWindows[2]}
	return Options{
		Lookback:   cfg.Data.LookbackWindow,
		Interval:   cfg.Data.Interval,
		MinHistory: cfg.Data.MinHistory,
		Indicator:  p,
		Thresholds: signal.Thresholds{
			ADX:             cfg.Scan.ADXThreshold,
			VolumeSurgeMult: cfg.Scan.VolumeSurgeMultiplier,
			BBSqueezePct:    cfg.Scan.BBSqueezePct,
		},
		Risk: risk.Params{
			StopMult:   cfg.Scan.ATRStopMultiplier,
			TargetMult: cfg.Scan.ATRTargetMultiplier,
		},
		MinScore:      cfg.Scan.MinScore,
		MaxRiskReward: cfg.Scan.MaxRiskReward,
		TopN:          cfg.Scan.TopN,
		Workers:       cfg.Scan.Workers,
	}
}

// Screener ties a market data fetcher to the analysis pipeline.
type Screener struct {
	fetcher Fetcher
	opts    Options
	logger  zerolog.Logger
}

// New creates a Screener.
func New(fetcher Fetcher, opts Options) *Screener {
	return &Screener{
		fetcher: fetcher,
		opts:    opts,
		logger:  log.With().Str("component", "screener").Logger(),
	}
}

// Analyze runs the full pipeline for one symbol: fetch, indicators,
// flags, score, risk levels. Skippable conditions come back as typed
// errors; the caller decides whether they abort anything.
func (s *Screener) Analyze(ctx context.Context, symbol string) (*model.Candidate, error) {
	candles, err := s.fetcher.FetchDailyBars(ctx, symbol, s.opts.Lookback, s.opts.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(candles) < s.opts.MinHistory {
		return nil, fmt.Errorf("%s has %d bars, need %d: %w",
			symbol, len(candles), s.opts.MinHistory, ErrInsufficientHistory)
	}

	set := indicator.Compute(candles, s.opts.Indicator)

	flags, err := signal.Derive(candles, set, s.opts.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("derive flags for %s: %w", symbol, err)
	}

	atr, err := set.ATR.Latest()
	if err != nil {
		return nil, fmt.Errorf("atr for %s: %w", symbol, err)
	}
	lastClose := candles[len(candles)-1].Close
	levels, err := risk.Evaluate(lastClose, atr, s.opts.Risk)
	if err != nil {
		return nil, fmt.Errorf("risk levels for %s: %w", symbol, err)
	}

	rsi, _ := set.RSI.Latest()
	adx, _ := set.ADX.Latest()

	return &model.Candidate{
		Symbol:     symbol,
		Price:      round(lastClose, 2),
		Score:      flags.Score(),
		RiskReward: levels.RiskReward,
		Target:     levels.Target,
		Stop:       levels.Stop,
		RSI:        round(rsi, 1),
		ADX:        round(adx, 1),
		VolSurge:   flags.VolumeSurge,
	}, nil
}

// Scan analyzes every symbol with a bounded worker pool and collects the
// candidates. Per-symbol failures are logged and skipped; only the caller
// treats a universe failure as fatal.
func (s *Screener) Scan(ctx context.Context, symbols []string) []model.Candidate {
	workers := s.opts.Workers
	if workers > len(symbols) {
		workers = len(symbols)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan model.Candidate, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				candidate, err := s.Analyze(ctx, symbol)
				if err != nil {
					s.logSkip(symbol, err)
					continue
				}
				results <- *candidate
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, symbol := range symbols {
			select {
			case jobs <- symbol:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	candidates := make([]model.Candidate, 0, len(symbols))
	for c := range results {
		candidates = append(candidates, c)
	}
	s.logger.Info().
		Int("universe", len(symbols)).
		Int("analyzed", len(candidates)).
		Msg("Scan complete")
	return candidates
}

func (s *Screener) logSkip(symbol string, err error) {
	switch {
	case errors.Is(err, ErrInsufficientHistory),
		errors.Is(err, marketdata.ErrNoData),
		errors.Is(err, risk.ErrZeroVolatility),
		errors.Is(err, series.ErrTooShort):
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Symbol skipped")
	default:
		s.logger.Error().Str("symbol", symbol).Err(err).Msg("Analysis failed, symbol skipped")
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
