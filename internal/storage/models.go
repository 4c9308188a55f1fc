package storage

import "time"

type Signal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pair        string  `gorm:"index;not null" json:"pair"`
	Action      string  `gorm:"not null" json:"action"` // BUY or SELL
	TargetPrice float64 `json:"target_price"`
	Confidence  int     `json:"confidence"`
	Reasoning   string  `gorm:"type:text" json:"reasoning"`
	Status      string  `gorm:"not null;default:'active'" json:"status"` // active, closed
}

type FeeSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	LastLedger    int64   `json:"last_ledger"`
	BaseFee       int64   `json:"base_fee"`
	P50FeeCharged int64   `gorm:"column:p50_fee_charged" json:"p50_fee_charged"`
	P95FeeCharged int64   `gorm:"column:p95_fee_charged" json:"p95_fee_charged"`
	CapacityUsage float64 `json:"capacity_usage"`
}

type PairStat struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Pair       string  `gorm:"index;not null" json:"pair"`
	LastPrice  float64 `json:"last_price"`
	Change3h   float64 `json:"change_3h"`
	Change1d   float64 `json:"change_1d"`
	Change3d   float64 `json:"change_3d"`
	Change1w   float64 `json:"change_1w"`
	Volume24h  float64 `json:"volume_24h"`
	TradeCount int64   `json:"trade_count"`
}

type AnalysisLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PairsCount    int    `json:"pairs_count"`
	AIResponse    string `gorm:"type:text" json:"ai_response"`
	DecisionsJSON string `gorm:"type:text" json:"decisions_json"`
	Error         string `json:"error"`
}
