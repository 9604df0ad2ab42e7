package indicator

import (
	"math"

	"github.com/rpatel-labs/niftyscan/internal/model"
	"github.com/rpatel-labs/niftyscan/internal/series"
)

// ADX computes the average directional index with Wilder smoothing.
// Directional movement needs one previous bar, the DX needs a full
// smoothing window on top of that, and the ADX itself is an average of
// period DX values, so the first computed value sits at index 2*period-1.
func ADX(candles []model.Candle, period int) series.Series {
	out := make([]float64, len(candles))
	if len(candles) < 2*period {
		return series.New(out, len(candles))
	}

	n := len(candles)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := trueRanges(candles)

	for i := 1; i < n; i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Wilder-smoothed sums seeded over the first window.
	var smPlus, smMinus, smTR float64
	for i := 1; i <= period; i++ {
		smPlus += plusDM[i]
		smMinus += minusDM[i]
		smTR += tr[i]
	}

	dx := make([]float64, n)
	dx[period] = dxValue(smPlus, smMinus, smTR)
	for i := period + 1; i < n; i++ {
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		smTR = smTR - smTR/float64(period) + tr[i]
		dx[i] = dxValue(smPlus, smMinus, smTR)
	}

	// ADX seeds with an average of the first period DX values.
	var sum float64
	for i := period; i < 2*period; i++ {
		sum += dx[i]
	}
	out[2*period-1] = sum / float64(period)
	for i := 2 * period; i < n; i++ {
		out[i] = (out[i-1]*float64(period-1) + dx[i]) / float64(period)
	}
	return series.New(out, 2*period-1)
}

func dxValue(smPlus, smMinus, smTR float64) float64 {
	if smTR == 0 {
		return 0
	}
	plusDI := smPlus / smTR * 100
	minusDI := smMinus / smTR * 100
	if plusDI+minusDI == 0 {
		return 0
	}
	return math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
}
