package model

// Candidate is the per-symbol result of one analysis run. It is built once
// by the screener and never mutated afterwards.
type Candidate struct {
	Symbol     string  `json:"symbol"`
	Price      float64 `json:"price"`
	Score      int     `json:"score"`
	RiskReward float64 `json:"risk_reward"`
	Target     float64 `json:"target"`
	Stop       float64 `json:"stop"`
	RSI        float64 `json:"rsi"`
	ADX        float64 `json:"adx"`
	VolSurge   bool    `json:"vol_surge"`
}
