package indicator

import (
	"math"

	"github.com/rpatel-labs/niftyscan/internal/model"
	"github.com/rpatel-labs/niftyscan/internal/series"
)

// ATR computes the average true range with Wilder smoothing. The true
// range needs a previous close, so the first computed value sits at
// index period.
func ATR(candles []model.Candle, period int) series.Series {
	out := make([]float64, len(candles))
	if len(candles) < period+1 {
		return series.New(out, len(candles))
	}

	tr := trueRanges(candles)

	var sum float64
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	out[period] = sum / float64(period)

	for i := period + 1; i < len(candles); i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return series.New(out, period)
}

// trueRanges returns the per-bar true range, aligned with candles.
// Index 0 has no previous close and stays zero.
func trueRanges(candles []model.Candle) []float64 {
	tr := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		highLow := candles[i].High - candles[i].Low
		highPrevClose := math.Abs(candles[i].High - candles[i-1].Close)
		lowPrevClose := math.Abs(candles[i].Low - candles[i-1].Close)
		tr[i] = math.Max(highLow, math.Max(highPrevClose, lowPrevClose))
	}
	return tr
}
