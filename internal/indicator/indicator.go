package indicator

import (
	"github.com/rpatel-labs/niftyscan/internal/model"
	"github.com/rpatel-labs/niftyscan/internal/series"
)

// Params holds the window lengths for one indicator pass.
type Params struct {
	EMAWindows [3]int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	ADXPeriod  int
	ATRPeriod  int
	BBPeriod   int
	BBStdDev   float64
}

// DefaultParams returns the conventional daily-bar windows.
func DefaultParams() Params {
	return Params{
		EMAWindows: [3]int{20, 50, 100},
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSIPeriod:  14,
		ADXPeriod:  14,
		ATRPeriod:  14,
		BBPeriod:   20,
		BBStdDev:   2.0,
	}
}

// Set holds every indicator series computed for one symbol, all aligned
// 1:1 with the candle slice they came from.
type Set struct {
	EMAFast    series.Series
	EMAMid     series.Series
	EMASlow    series.Series
	MACDLine   series.Series
	MACDSignal series.Series
	RSI        series.Series
	ADX        series.Series
	ATR        series.Series
	BBWidth    series.Series
}

// Compute runs every indicator over the candles.
func Compute(candles []model.Candle, p Params) *Set {
	closes := model.Closes(candles)

	macdLine, macdSignal := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)

	return &Set{
		EMAFast:    EMA(closes, p.EMAWindows[0]),
		EMAMid:     EMA(closes, p.EMAWindows[1]),
		EMASlow:    EMA(closes, p.EMAWindows[2]),
		MACDLine:   macdLine,
		MACDSignal: macdSignal,
		RSI:        RSI(closes, p.RSIPeriod),
		ADX:        ADX(candles, p.ADXPeriod),
		ATR:        ATR(candles, p.ATRPeriod),
		BBWidth:    BollingerWidth(closes, p.BBPeriod, p.BBStdDev),
	}
}
