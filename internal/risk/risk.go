// Package risk derives stop, target and risk:reward levels from price
// and volatility. It is independent of the composite score.
package risk

import (
	"errors"
	"math"
)

// ErrZeroVolatility marks a symbol whose ATR is zero; the risk:reward
// ratio is undefined there and the symbol is skipped rather than scored.
var ErrZeroVolatility = errors.New("zero volatility, risk:reward undefined")

// Params sets the stop and target distances in ATR units.
type Params struct {
	StopMult   float64
	TargetMult float64
}

// DefaultParams returns the reference 1:2 geometry.
func DefaultParams() Params {
	return Params{StopMult: 1.0, TargetMult: 2.0}
}

// Levels is the stop/target/ratio triple for one symbol, rounded to two
// decimal places the way the levels are quoted.
type Levels struct {
	Stop       float64 `json:"stop"`
	Target     float64 `json:"target"`
	RiskReward float64 `json:"risk_reward"`
}

// Evaluate computes the levels from the latest close and ATR.
func Evaluate(close, atr float64, p Params) (Levels, error) {
	if atr <= 0 || math.IsNaN(atr) {
		return Levels{}, ErrZeroVolatility
	}
	return Levels{
		Stop:       round2(close - p.StopMult*atr),
		Target:     round2(close + p.TargetMult*atr),
		RiskReward: round2(p.StopMult * atr / (p.TargetMult * atr)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
