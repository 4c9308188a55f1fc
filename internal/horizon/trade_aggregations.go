package horizon

import (
	"context"
	"strconv"
)

// Resolution buckets accepted by Horizon, in milliseconds.
const (
	Resolution1m  int64 = 60_000
	Resolution5m  int64 = 300_000
	Resolution15m int64 = 900_000
	Resolution1h  int64 = 3_600_000
	Resolution1d  int64 = 86_400_000
	Resolution1w  int64 = 604_800_000
)

// TradeAggregationsRequestBuilder targets /trade_aggregations. Parameters are
// serialized as-is; Horizon itself rejects inconsistent ranges.
type TradeAggregationsRequestBuilder struct {
	requestBuilder
}

func (b *TradeAggregationsRequestBuilder) BaseAsset(a Asset) *TradeAggregationsRequestBuilder {
	a.addToQuery(b.params, "base")
	return b
}

func (b *TradeAggregationsRequestBuilder) CounterAsset(a Asset) *TradeAggregationsRequestBuilder {
	a.addToQuery(b.params, "counter")
	return b
}

// StartTime is the lower bound of the range, in milliseconds since epoch.
func (b *TradeAggregationsRequestBuilder) StartTime(ms int64) *TradeAggregationsRequestBuilder {
	b.setInt64Param("start_time", ms)
	return b
}

// EndTime is the upper bound of the range, in milliseconds since epoch.
func (b *TradeAggregationsRequestBuilder) EndTime(ms int64) *TradeAggregationsRequestBuilder {
	b.setInt64Param("end_time", ms)
	return b
}

// Resolution is the bucket width in milliseconds, one of the Resolution
// constants.
func (b *TradeAggregationsRequestBuilder) Resolution(ms int64) *TradeAggregationsRequestBuilder {
	b.setInt64Param("resolution", ms)
	return b
}

// Offset shifts bucket boundaries, in milliseconds. Horizon only accepts
// whole hours smaller than the resolution.
func (b *TradeAggregationsRequestBuilder) Offset(ms int64) *TradeAggregationsRequestBuilder {
	b.setInt64Param("offset", ms)
	return b
}

func (b *TradeAggregationsRequestBuilder) Limit(limit int) *TradeAggregationsRequestBuilder {
	b.setParam("limit", strconv.Itoa(limit))
	return b
}

func (b *TradeAggregationsRequestBuilder) Order(order string) *TradeAggregationsRequestBuilder {
	b.setParam("order", order)
	return b
}

func (b *TradeAggregationsRequestBuilder) Execute(ctx context.Context) (*TradeAggregationsPage, error) {
	page := &TradeAggregationsPage{}
	if err := b.execute(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

type TradeAggregationsPage struct {
	Embedded struct {
		Records []TradeAggregation `json:"records"`
	} `json:"_embedded"`
}

// TradeAggregation is one time bucket. Timestamp and TradeCount are decimal
// strings, prices and volumes are fixed-point decimal strings.
type TradeAggregation struct {
	Timestamp     string `json:"timestamp"`
	TradeCount    string `json:"trade_count"`
	BaseVolume    string `json:"base_volume"`
	CounterVolume string `json:"counter_volume"`
	Avg           string `json:"avg"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Open          string `json:"open"`
	Close         string `json:"close"`
}

// TimestampMs parses the bucket start, 0 when unparsable.
func (t TradeAggregation) TimestampMs() int64 {
	ms, _ := strconv.ParseInt(t.Timestamp, 10, 64)
	return ms
}

// CloseF parses the close price, 0 when unparsable.
func (t TradeAggregation) CloseF() float64 {
	f, _ := strconv.ParseFloat(t.Close, 64)
	return f
}

// CounterVolumeF parses the counter volume, 0 when unparsable.
func (t TradeAggregation) CounterVolumeF() float64 {
	f, _ := strconv.ParseFloat(t.CounterVolume, 64)
	return f
}
