package indicator

import "github.com/rpatel-labs/niftyscan/internal/series"

// MACD computes the MACD line (fast EMA minus slow EMA of the closes) and
// its signal line (EMA of the MACD line). Both are aligned with the input.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal series.Series) {
	n := len(closes)
	lineVals := make([]float64, n)
	signalVals := make([]float64, n)
	if n < slowPeriod {
		return series.New(lineVals, n), series.New(signalVals, n)
	}

	fast := EMA(closes, fastPeriod)
	slow := EMA(closes, slowPeriod)

	lineWarmup := slowPeriod - 1
	for i := lineWarmup; i < n; i++ {
		lineVals[i] = fast.At(i) - slow.At(i)
	}
	line = series.New(lineVals, lineWarmup)

	// Signal line is an EMA over the computed part of the MACD line.
	defined := make([]float64, n-lineWarmup)
	for i := range defined {
		defined[i] = line.At(lineWarmup + i)
	}
	sig := EMA(defined, signalPeriod)
	sigWarmup := lineWarmup + sig.Warmup()
	for i := sig.Warmup(); i < sig.Len(); i++ {
		signalVals[lineWarmup+i] = sig.At(i)
	}
	signal = series.New(signalVals, sigWarmup)
	return line, signal
}
