// Package signal derives the boolean entry conditions for one symbol from
// its indicator series, all evaluated at the most recent bar.
package signal

import (
	"fmt"
	"math"

	"github.com/rpatel-labs/niftyscan/internal/indicator"
	"github.com/rpatel-labs/niftyscan/internal/model"
	"github.com/rpatel-labs/niftyscan/internal/series"
)

// Fixed flag parameters that are not exposed as configuration.
const (
	rsiBandLow       = 45.0
	rsiBandHigh      = 65.0
	rsiMidline       = 50.0
	emaNearPct       = 0.01
	emaSlowNearPct   = 0.015
	momentumLag      = 5
	breakoutWindow   = 20
	volumeSMAWindow  = 20
	bbWidthSMAWindow = 120
)

// Thresholds holds the configurable flag cutoffs.
type Thresholds struct {
	ADX             float64
	VolumeSurgeMult float64
	BBSqueezePct    float64
}

// DefaultThresholds returns the reference cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{ADX: 20, VolumeSurgeMult: 1.5, BBSqueezePct: 0.5}
}

// Flags is the fixed set of entry conditions. Each contributes exactly
// one point to the composite score.
type Flags struct {
	CloseAboveEMA20     bool `json:"close_above_ema20"`
	MACDBullishCross    bool `json:"macd_bullish_cross"`
	RSINeutralBand      bool `json:"rsi_neutral_band"`
	VolumeSurge         bool `json:"volume_surge"`
	Momentum5D          bool `json:"momentum_5d"`
	ADXTrending         bool `json:"adx_trending"`
	BBSqueezeBreakout   bool `json:"bb_squeeze_breakout"`
	RSIMidlineCross     bool `json:"rsi_midline_cross"`
	PriceNearEMACluster bool `json:"price_near_ema_cluster"`
	Breakout20DHigh     bool `json:"breakout_20d_high"`
}

// Score counts the true flags, an integer in [0,10].
func (f Flags) Score() int {
	score := 0
	for _, b := range []bool{
		f.CloseAboveEMA20,
		f.MACDBullishCross,
		f.RSINeutralBand,
		f.VolumeSurge,
		f.Momentum5D,
		f.ADXTrending,
		f.BBSqueezeBreakout,
		f.RSIMidlineCross,
		f.PriceNearEMACluster,
		f.Breakout20DHigh,
	} {
		if b {
			score++
		}
	}
	return score
}

// Derive evaluates every flag at the latest bar. It fails only when a
// series the flags strictly need has too few computed values; thresholds
// compared against a still-undefined rolling window simply come out false.
func Derive(candles []model.Candle, set *indicator.Set, th Thresholds) (Flags, error) {
	closes := model.Closes(candles)
	volumes := model.Volumes(candles)
	t := len(candles) - 1
	lastClose := closes[t]

	ema20, err := set.EMAFast.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("ema fast: %w", err)
	}
	ema50, err := set.EMAMid.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("ema mid: %w", err)
	}
	ema100, err := set.EMASlow.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("ema slow: %w", err)
	}
	macdLine, err := set.MACDLine.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("macd line: %w", err)
	}
	macdSignal, err := set.MACDSignal.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("macd signal: %w", err)
	}
	rsi, err := set.RSI.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("rsi: %w", err)
	}
	rsiPrev, err := set.RSI.Previous()
	if err != nil {
		return Flags{}, fmt.Errorf("rsi: %w", err)
	}
	adx, err := set.ADX.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("adx: %w", err)
	}
	bbWidth, err := set.BBWidth.Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("bb width: %w", err)
	}
	volSMA, err := series.Raw(volumes).RollingMean(volumeSMAWindow).Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("volume sma: %w", err)
	}
	high20, err := series.Raw(closes).RollingMax(breakoutWindow).Latest()
	if err != nil {
		return Flags{}, fmt.Errorf("trailing high: %w", err)
	}
	if t < momentumLag {
		return Flags{}, fmt.Errorf("momentum lookback: %w", series.ErrTooShort)
	}

	// The long average of the band width may still be inside its warm-up
	// on a minimum-length history; an undefined breakout base reads false.
	bbWidthAvg := set.BBWidth.RollingMean(bbWidthSMAWindow).Last()

	return Flags{
		CloseAboveEMA20:   lastClose > ema20,
		MACDBullishCross:  macdLine > macdSignal,
		RSINeutralBand:    rsi > rsiBandLow && rsi < rsiBandHigh,
		VolumeSurge:       volumes[t] > th.VolumeSurgeMult*volSMA,
		Momentum5D:        lastClose > closes[t-momentumLag],
		ADXTrending:       adx > th.ADX,
		BBSqueezeBreakout: bbWidth > th.BBSqueezePct*bbWidthAvg,
		RSIMidlineCross:   rsiPrev < rsiMidline && rsi > rsiMidline,
		PriceNearEMACluster: math.Abs(lastClose-ema20)/lastClose < emaNearPct &&
			math.Abs(lastClose-ema50)/lastClose < emaNearPct &&
			math.Abs(lastClose-ema100)/lastClose < emaSlowNearPct,
		Breakout20DHigh: lastClose >= high20,
	}, nil
}
