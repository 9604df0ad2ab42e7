package indicator

import "github.com/rpatel-labs/niftyscan/internal/series"

// EMA computes the exponential moving average of values. The first value
// is seeded with a simple average over the window, then the standard
// 2/(period+1) smoothing recurrence runs forward.
func EMA(values []float64, period int) series.Series {
	out := make([]float64, len(values))
	if len(values) < period {
		return series.New(out, len(values))
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return series.New(out, period-1)
}
