package indicator

import "github.com/rpatel-labs/niftyscan/internal/series"

// BollingerWidth computes (upper - lower) / middle where the bands are a
// simple moving average plus/minus stdDev population standard deviations
// over the window.
func BollingerWidth(closes []float64, period int, stdDev float64) series.Series {
	s := series.Raw(closes)
	mid := s.RollingMean(period)
	sd := s.RollingStd(period)

	out := make([]float64, len(closes))
	warmup := period - 1
	if warmup > len(closes) {
		warmup = len(closes)
	}
	for i := warmup; i < len(closes); i++ {
		out[i] = 2 * stdDev * sd.At(i) / mid.At(i)
	}
	return series.New(out, warmup)
}
