package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/horizon"
	"github.com/camuig/lumen-watch/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	asJSON := flag.Bool("json", false, "print raw JSON instead of a table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("error")

	hc, err := horizon.NewClient(cfg.Horizon.URL, cfg.HorizonTimeout(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "horizon init error: %v\n", err)
		os.Exit(1)
	}

	pairs, err := cfg.Pairs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse pairs error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	stats, err := hc.FeeStats().Execute(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch fee stats error: %v\n", err)
		os.Exit(1)
	}

	snapshots := hc.FetchPairSnapshots(ctx, pairs, cfg.ResolutionMs(), cfg.Watch.Concurrency)

	if *asJSON {
		out := map[string]interface{}{
			"fee_stats": stats,
			"pairs":     snapshots,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Fee stats (ledger %s):\n", stats.LastLedger)
	fmt.Printf("  base fee:      %s stroops\n", stats.LastLedgerBaseFee)
	fmt.Printf("  charged p50:   %s\n", stats.FeeCharged.P50)
	fmt.Printf("  charged p95:   %s\n", stats.FeeCharged.P95)
	fmt.Printf("  capacity used: %s\n\n", stats.LedgerCapacityUsage)

	if len(snapshots) == 0 {
		fmt.Println("No trades in any watched pair.")
		return
	}

	fmt.Printf("Markets (%d pair(s), last 7 days):\n\n", len(snapshots))
	for _, s := range snapshots {
		fmt.Printf("  %-16s price %.6g, 1d %+.1f%%, 1w %+.1f%%, vol24h %.0f, trades %d\n",
			s.Pair.String(), s.LastPrice,
			pctChange(s.Price1dAgo, s.LastPrice),
			pctChange(s.Price1wAgo, s.LastPrice),
			s.Volume24h, s.TradeCount)

		printRecentTrades(ctx, hc, s.Pair)
	}
}

func printRecentTrades(ctx context.Context, hc *horizon.Client, pair horizon.Pair) {
	// Two pages of three, following the paging token of the last record
	cursor := ""
	for page := 0; page < 2; page++ {
		b := hc.Trades().
			BaseAsset(pair.Base).
			CounterAsset(pair.Counter).
			Order(horizon.OrderDesc).
			Limit(3)
		if cursor != "" {
			b = b.Cursor(cursor)
		}

		res, err := b.Execute(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "    (recent trades unavailable: %v)\n", err)
			return
		}

		records := res.Embedded.Records
		if len(records) == 0 {
			return
		}
		for _, tr := range records {
			fmt.Printf("    %s  %s base for %s counter\n",
				tr.LedgerCloseTime, tr.BaseAmount, tr.CounterAmount)
		}
		cursor = records[len(records)-1].PagingToken
	}
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
