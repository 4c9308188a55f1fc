package ai

import "github.com/camuig/lumen-watch/internal/storage"

type PairAnalysis struct {
	Pair       string
	LastPrice  float64
	Change3h   float64 // percent
	Change1d   float64
	Change3d   float64
	Change1w   float64
	Volume24h  float64
	TradeCount int64
	SpreadPct  float64 // order book bid/ask spread, 0 when unknown
}

type FeeContext struct {
	BaseFee       int64
	P50FeeCharged int64
	P95FeeCharged int64
	CapacityUsage float64
}

type AnalysisRequest struct {
	Pairs         []PairAnalysis
	Fees          *FeeContext
	ActiveSignals []storage.Signal
}

type Decision struct {
	Action      string  `json:"action"` // BUY, SELL, HOLD
	Pair        string  `json:"pair"`
	TargetPrice float64 `json:"target_price"`
	Confidence  int     `json:"confidence"` // 0-100
	Reasoning   string  `json:"reasoning"`
}
