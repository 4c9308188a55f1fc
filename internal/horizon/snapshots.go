package horizon

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Pair is one watched market, counter priced in base.
type Pair struct {
	Base    Asset
	Counter Asset
}

func (p Pair) String() string {
	return p.Base.DisplayCode() + "/" + p.Counter.DisplayCode()
}

// Canonical is the unambiguous form used as a storage key.
func (p Pair) Canonical() string {
	return p.Base.String() + "|" + p.Counter.String()
}

// PairSnapshot condenses a week of hourly trade aggregations for one pair.
type PairSnapshot struct {
	Pair       Pair
	LastPrice  float64
	Price3hAgo float64
	Price1dAgo float64
	Price3dAgo float64
	Price1wAgo float64
	Volume24h  float64
	TradeCount int64
}

// FetchPairSnapshots pulls a 7-day aggregation series at the given bucket
// resolution for every pair, with at most concurrency requests in flight.
// Pairs that fail or have no trades are skipped.
func (c *Client) FetchPairSnapshots(ctx context.Context, pairs []Pair, resolution int64, concurrency int) []PairSnapshot {
	if concurrency <= 0 {
		concurrency = 4
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, concurrency)
		results []PairSnapshot
	)

	for _, pair := range pairs {
		wg.Add(1)
		sem <- struct{}{}

		go func(p Pair) {
			defer wg.Done()
			defer func() { <-sem }()

			snap, err := c.fetchOnePair(ctx, p, resolution)
			if err != nil {
				c.logger.Error("fetch trade aggregations", "pair", p.String(), "error", err)
				return
			}
			if snap == nil {
				return
			}

			mu.Lock()
			results = append(results, *snap)
			mu.Unlock()
		}(pair)
	}

	wg.Wait()
	return results
}

func (c *Client) fetchOnePair(ctx context.Context, pair Pair, resolution int64) (*PairSnapshot, error) {
	if resolution <= 0 {
		resolution = Resolution1h
	}

	now := time.Now()
	from := now.Add(-7 * 24 * time.Hour)

	// The server caps limit at 200 buckets. A 7-day window holds far more
	// than that at sub-hour resolutions, so fetch newest-first to keep the
	// buckets closest to now.
	page, err := c.TradeAggregations().
		BaseAsset(pair.Base).
		CounterAsset(pair.Counter).
		StartTime(from.UnixMilli()).
		EndTime(now.UnixMilli()).
		Resolution(resolution).
		Limit(200).
		Order(OrderDesc).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	records := page.Embedded.Records
	if len(records) == 0 {
		return nil, nil
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	snap := &PairSnapshot{
		Pair:       pair,
		LastPrice:  closeAtOffset(records, now, 0),
		Price3hAgo: closeAtOffset(records, now, 3*time.Hour),
		Price1dAgo: closeAtOffset(records, now, 24*time.Hour),
		Price3dAgo: closeAtOffset(records, now, 3*24*time.Hour),
		Price1wAgo: closeAtOffset(records, now, 7*24*time.Hour),
		Volume24h:  sumCounterVolume24h(records, now),
		TradeCount: sumTradeCount(records),
	}
	return snap, nil
}

// closeAtOffset finds the close price of the bucket nearest to (now - offset).
func closeAtOffset(records []TradeAggregation, now time.Time, offset time.Duration) float64 {
	target := now.Add(-offset).UnixMilli()
	best := -1
	var bestDiff int64

	for i, r := range records {
		diff := r.TimestampMs() - target
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	if best < 0 {
		return 0
	}
	return records[best].CloseF()
}

func sumCounterVolume24h(records []TradeAggregation, now time.Time) float64 {
	cutoff := now.Add(-24 * time.Hour).UnixMilli()
	var total float64
	for _, r := range records {
		if r.TimestampMs() >= cutoff {
			total += r.CounterVolumeF()
		}
	}
	return total
}

func sumTradeCount(records []TradeAggregation) int64 {
	var total int64
	for _, r := range records {
		n, _ := strconv.ParseInt(r.TradeCount, 10, 64)
		total += n
	}
	return total
}
