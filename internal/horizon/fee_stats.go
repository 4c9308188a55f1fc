package horizon

import "context"

// FeeStatsRequestBuilder targets /fee_stats. The endpoint takes no query
// parameters.
type FeeStatsRequestBuilder struct {
	requestBuilder
}

func (b *FeeStatsRequestBuilder) Execute(ctx context.Context) (*FeeStats, error) {
	stats := &FeeStats{}
	if err := b.execute(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// FeeStats mirrors Horizon's fee_stats response. Horizon encodes every
// numeric field as a decimal string.
type FeeStats struct {
	LastLedger          string          `json:"last_ledger"`
	LastLedgerBaseFee   string          `json:"last_ledger_base_fee"`
	LedgerCapacityUsage string          `json:"ledger_capacity_usage"`
	FeeCharged          FeeDistribution `json:"fee_charged"`
	MaxFee              FeeDistribution `json:"max_fee"`
}

type FeeDistribution struct {
	Max  string `json:"max"`
	Min  string `json:"min"`
	Mode string `json:"mode"`
	P10  string `json:"p10"`
	P20  string `json:"p20"`
	P30  string `json:"p30"`
	P40  string `json:"p40"`
	P50  string `json:"p50"`
	P60  string `json:"p60"`
	P70  string `json:"p70"`
	P80  string `json:"p80"`
	P90  string `json:"p90"`
	P95  string `json:"p95"`
	P99  string `json:"p99"`
}
