package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/camuig/lumen-watch/internal/ai"
	"github.com/camuig/lumen-watch/internal/alerts"
	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/horizon"
	"github.com/camuig/lumen-watch/internal/logger"
	"github.com/camuig/lumen-watch/internal/metrics"
	"github.com/camuig/lumen-watch/internal/storage"
	"github.com/camuig/lumen-watch/internal/telegram"
)

type Scheduler struct {
	horizon    *horizon.Client
	analyst    *ai.Analyst
	dispatcher *alerts.Dispatcher
	repo       *storage.Repository
	notifier   *telegram.Notifier
	config     *config.Config
	logger     *logger.Logger
	pairs      []horizon.Pair
}

func NewScheduler(
	hc *horizon.Client,
	analyst *ai.Analyst,
	dispatcher *alerts.Dispatcher,
	repo *storage.Repository,
	notifier *telegram.Notifier,
	cfg *config.Config,
	log *logger.Logger,
	pairs []horizon.Pair,
) *Scheduler {
	return &Scheduler{
		horizon:    hc,
		analyst:    analyst,
		dispatcher: dispatcher,
		repo:       repo,
		notifier:   notifier,
		config:     cfg,
		logger:     log,
		pairs:      pairs,
	}
}

// Run executes one cycle immediately, then on every tick until ctx is done.
// The DEX trades around the clock, so there is no session gate.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.config.WatchInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", interval.String(), "pairs", len(s.pairs))

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in scheduler cycle", "panic", fmt.Sprint(r))
			s.notifier.NotifyError("scheduler panic", fmt.Errorf("%v", r))
		}
		metrics.ObserveCycle(time.Since(started))
	}()

	s.logger.Info("starting analysis cycle")

	// 1. Fetch and persist fee stats; compare against the previous snapshot
	feeCtx := s.collectFees(ctx)

	// 2. Fetch pair snapshots with bounded concurrency
	snapshots := s.horizon.FetchPairSnapshots(ctx, s.pairs, s.config.ResolutionMs(), s.config.Watch.Concurrency)
	s.logger.Info("pair snapshots fetched", "count", len(snapshots))

	if len(snapshots) == 0 {
		s.logger.Info("no pair data, skipping cycle")
		s.saveAnalysisLog(0, "", "", fmt.Errorf("no pair data"))
		return
	}

	// 3. Order book spreads per pair (non-fatal when unavailable)
	spreads := s.fetchSpreads(ctx)

	// 4. Build pair analyses and persist per-cycle stats
	prices := make(map[string]float64, len(snapshots))
	pairAnalyses := make([]ai.PairAnalysis, 0, len(snapshots))
	for _, snap := range snapshots {
		name := snap.Pair.String()
		prices[name] = snap.LastPrice

		pa := ai.PairAnalysis{
			Pair:       name,
			LastPrice:  snap.LastPrice,
			Change3h:   pctChange(snap.Price3hAgo, snap.LastPrice),
			Change1d:   pctChange(snap.Price1dAgo, snap.LastPrice),
			Change3d:   pctChange(snap.Price3dAgo, snap.LastPrice),
			Change1w:   pctChange(snap.Price1wAgo, snap.LastPrice),
			Volume24h:  snap.Volume24h,
			TradeCount: snap.TradeCount,
			SpreadPct:  spreads[name],
		}
		pairAnalyses = append(pairAnalyses, pa)

		s.savePairStat(snap, pa)
	}

	// 5. Active signals give the model its own prior views
	activeSignals, err := s.repo.GetActiveSignals()
	if err != nil {
		s.logger.Error("get active signals", "error", err)
	}

	// 6. AI analysis
	analysisReq := &ai.AnalysisRequest{
		Pairs:         pairAnalyses,
		Fees:          feeCtx,
		ActiveSignals: activeSignals,
	}

	decisions, rawResponse, err := s.analyst.Analyze(ctx, analysisReq)
	if err != nil {
		s.logger.Error("AI analysis", "error", err)
		s.saveAnalysisLog(len(pairAnalyses), rawResponse, "", err)
		return
	}

	s.logger.Info("AI decisions received", "count", len(decisions))
	for _, d := range decisions {
		s.logger.Debug("AI decision",
			"action", d.Action, "pair", d.Pair,
			"confidence", d.Confidence, "target", d.TargetPrice, "reasoning", d.Reasoning)
	}

	// 7. Dispatch signals
	s.dispatcher.Dispatch(decisions, prices)

	// 8. Save analysis log
	s.saveAnalysisLog(len(pairAnalyses), rawResponse, alerts.DecisionsToJSON(decisions), nil)

	s.logger.Info("analysis cycle completed", "took", time.Since(started).String())
}

// collectFees pulls /fee_stats, stores the snapshot and raises a surge alert
// against the previous one. Fee data is context for the model, so failures
// are non-fatal.
func (s *Scheduler) collectFees(ctx context.Context) *ai.FeeContext {
	stats, err := s.horizon.FeeStats().Execute(ctx)
	if err != nil {
		s.logger.Error("fetch fee stats", "error", err)
		return nil
	}

	snapshot := &storage.FeeSnapshot{
		LastLedger:    parseInt(stats.LastLedger),
		BaseFee:       parseInt(stats.LastLedgerBaseFee),
		P50FeeCharged: parseInt(stats.FeeCharged.P50),
		P95FeeCharged: parseInt(stats.FeeCharged.P95),
		CapacityUsage: parseFloat(stats.LedgerCapacityUsage),
	}

	previous, _ := s.repo.GetLatestFeeSnapshot()

	if err := s.repo.SaveFeeSnapshot(snapshot); err != nil {
		s.logger.Error("save fee snapshot", "error", err)
	}
	metrics.SetP50Fee(float64(snapshot.P50FeeCharged))

	s.dispatcher.CheckFeeSurge(snapshot, previous)

	return &ai.FeeContext{
		BaseFee:       snapshot.BaseFee,
		P50FeeCharged: snapshot.P50FeeCharged,
		P95FeeCharged: snapshot.P95FeeCharged,
		CapacityUsage: snapshot.CapacityUsage,
	}
}

func (s *Scheduler) fetchSpreads(ctx context.Context) map[string]float64 {
	spreads := make(map[string]float64, len(s.pairs))
	for _, pair := range s.pairs {
		book, err := s.horizon.OrderBook().
			SellingAsset(pair.Base).
			BuyingAsset(pair.Counter).
			Limit(1).
			Execute(ctx)
		if err != nil {
			s.logger.Debug("fetch order book", "pair", pair.String(), "error", err)
			continue
		}
		spreads[pair.String()] = book.SpreadPct()
	}
	return spreads
}

func (s *Scheduler) savePairStat(snap horizon.PairSnapshot, pa ai.PairAnalysis) {
	stat := &storage.PairStat{
		Pair:       pa.Pair,
		LastPrice:  pa.LastPrice,
		Change3h:   pa.Change3h,
		Change1d:   pa.Change1d,
		Change3d:   pa.Change3d,
		Change1w:   pa.Change1w,
		Volume24h:  pa.Volume24h,
		TradeCount: snap.TradeCount,
	}
	if err := s.repo.SavePairStat(stat); err != nil {
		s.logger.Error("save pair stat", "error", err)
	}
}

func (s *Scheduler) saveAnalysisLog(pairsCount int, rawResponse, decisionsJSON string, err error) {
	log := &storage.AnalysisLog{
		PairsCount:    pairsCount,
		AIResponse:    rawResponse,
		DecisionsJSON: decisionsJSON,
	}
	if err != nil {
		log.Error = err.Error()
	}
	if dbErr := s.repo.SaveAnalysisLog(log); dbErr != nil {
		s.logger.Error("save analysis log", "error", dbErr)
	}
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
