package series

import (
	"errors"
	"math"
)

// ErrTooShort is returned by Latest/Previous when the series has fewer
// computed elements than the accessor needs.
var ErrTooShort = errors.New("series too short")

// Series is an indicator sequence aligned 1:1 by index with the candle
// slice it was computed from. The first warmup positions are undefined
// (NaN) because the indicator window is not yet satisfied there.
type Series struct {
	values []float64
	warmup int
}

// New builds a Series from values, marking the first warmup positions
// as undefined.
func New(values []float64, warmup int) Series {
	if warmup < 0 {
		warmup = 0
	}
	if warmup > len(values) {
		warmup = len(values)
	}
	for i := 0; i < warmup; i++ {
		values[i] = math.NaN()
	}
	return Series{values: values, warmup: warmup}
}

// Raw wraps values that are defined at every position.
func Raw(values []float64) Series {
	return Series{values: values}
}

func (s Series) Len() int    { return len(s.values) }
func (s Series) Warmup() int { return s.warmup }

// Defined reports how many trailing positions carry computed values.
func (s Series) Defined() int { return len(s.values) - s.warmup }

// At returns the value at index i; NaN inside the warm-up region.
func (s Series) At(i int) float64 { return s.values[i] }

// Last returns the final raw value without bounds checking beyond the
// slice itself. It may be NaN when the window never filled.
func (s Series) Last() float64 {
	return s.values[len(s.values)-1]
}

// Latest returns the most recent computed value.
func (s Series) Latest() (float64, error) {
	if s.Defined() < 1 {
		return 0, ErrTooShort
	}
	return s.values[len(s.values)-1], nil
}

// Previous returns the second most recent computed value.
func (s Series) Previous() (float64, error) {
	if s.Defined() < 2 {
		return 0, ErrTooShort
	}
	return s.values[len(s.values)-2], nil
}

// RollingMean computes the simple moving average over a fixed window.
// Positions before the window is full of computed inputs are undefined.
func (s Series) RollingMean(window int) Series {
	out := make([]float64, len(s.values))
	warmup := s.warmup + window - 1
	for i := warmup; i < len(s.values); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += s.values[j]
		}
		out[i] = sum / float64(window)
	}
	return New(out, warmup)
}

// RollingStd computes the population standard deviation over a fixed window.
func (s Series) RollingStd(window int) Series {
	out := make([]float64, len(s.values))
	warmup := s.warmup + window - 1
	for i := warmup; i < len(s.values); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += s.values[j]
		}
		mean := sum / float64(window)
		var variance float64
		for j := i - window + 1; j <= i; j++ {
			d := s.values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window))
	}
	return New(out, warmup)
}

// RollingMax computes the maximum over a fixed trailing window,
// inclusive of the current position.
func (s Series) RollingMax(window int) Series {
	out := make([]float64, len(s.values))
	warmup := s.warmup + window - 1
	for i := warmup; i < len(s.values); i++ {
		max := s.values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if s.values[j] > max {
				max = s.values[j]
			}
		}
		out[i] = max
	}
	return New(out, warmup)
}
