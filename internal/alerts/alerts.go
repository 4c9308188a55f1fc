package alerts

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camuig/lumen-watch/internal/ai"
	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/logger"
	"github.com/camuig/lumen-watch/internal/metrics"
	"github.com/camuig/lumen-watch/internal/storage"
	"github.com/camuig/lumen-watch/internal/telegram"
)

// Dispatcher turns AI decisions into persisted signals and Telegram alerts.
// Signals are advisory; nothing is ever submitted to the network.
type Dispatcher struct {
	repo     *storage.Repository
	notifier *telegram.Notifier
	config   *config.Config
	logger   *logger.Logger
}

func NewDispatcher(
	repo *storage.Repository,
	notifier *telegram.Notifier,
	cfg *config.Config,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		notifier: notifier,
		config:   cfg,
		logger:   log,
	}
}

// Dispatch processes decisions one by one; a panic in one decision does not
// abort the rest.
func (d *Dispatcher) Dispatch(decisions []ai.Decision, prices map[string]float64) {
	for _, dec := range decisions {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("panic in dispatcher", "pair", dec.Pair, "panic", fmt.Sprint(r))
				}
			}()

			switch dec.Action {
			case "BUY":
				d.dispatchBuy(dec, prices[dec.Pair])
			case "SELL":
				d.dispatchSell(dec, prices[dec.Pair])
			case "HOLD":
				d.logger.Info("HOLD decision", "pair", dec.Pair, "reasoning", dec.Reasoning)
			default:
				d.logger.Info("unknown action", "action", dec.Action, "pair", dec.Pair)
			}
		}()
	}
}

func (d *Dispatcher) dispatchBuy(dec ai.Decision, price float64) {
	if dec.Confidence < d.config.Watch.MinConfidence {
		d.logger.Info("BUY skipped: low confidence",
			"pair", dec.Pair, "confidence", dec.Confidence, "min", d.config.Watch.MinConfidence)
		return
	}

	// Suppress duplicates while a BUY view is still active. An inconclusive
	// lookup must not raise a possibly duplicate signal.
	existing, err := d.repo.GetActiveSignal(dec.Pair, "BUY")
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Error("look up active signal", "pair", dec.Pair, "error", err)
		return
	}
	if existing != nil {
		d.logger.Info("BUY skipped: signal already active", "pair", dec.Pair)
		return
	}

	signal := &storage.Signal{
		Pair:        dec.Pair,
		Action:      "BUY",
		TargetPrice: dec.TargetPrice,
		Confidence:  dec.Confidence,
		Reasoning:   dec.Reasoning,
		Status:      "active",
	}
	if err := d.repo.SaveSignal(signal); err != nil {
		d.logger.Error("save signal", "error", err)
		return
	}

	metrics.IncSignal("BUY")
	d.notifier.NotifySignal("BUY", dec.Pair, price, dec.TargetPrice, dec.Confidence, dec.Reasoning)
	d.logger.Info("BUY signal raised",
		"pair", dec.Pair, "price", price, "target", dec.TargetPrice, "confidence", dec.Confidence)
}

func (d *Dispatcher) dispatchSell(dec ai.Decision, price float64) {
	// A SELL reverses an active BUY view; without one there is nothing to do
	active, err := d.repo.GetActiveSignal(dec.Pair, "BUY")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Info("SELL skipped: no active BUY signal", "pair", dec.Pair)
		return
	}
	if err != nil {
		d.logger.Error("look up active signal", "pair", dec.Pair, "error", err)
		return
	}

	active.Status = "closed"
	if err := d.repo.UpdateSignal(active); err != nil {
		d.logger.Error("close signal", "error", err)
	}

	signal := &storage.Signal{
		Pair:        dec.Pair,
		Action:      "SELL",
		TargetPrice: dec.TargetPrice,
		Confidence:  dec.Confidence,
		Reasoning:   dec.Reasoning,
		Status:      "closed",
	}
	if err := d.repo.SaveSignal(signal); err != nil {
		d.logger.Error("save sell signal", "error", err)
	}

	metrics.IncSignal("SELL")
	d.notifier.NotifySignal("SELL", dec.Pair, price, dec.TargetPrice, dec.Confidence, dec.Reasoning)
	d.logger.Info("SELL signal raised", "pair", dec.Pair, "price", price, "confidence", dec.Confidence)
}

// CheckFeeSurge compares the fresh snapshot against the previous one and
// alerts when p50 charged fees jump by the configured factor.
func (d *Dispatcher) CheckFeeSurge(current, previous *storage.FeeSnapshot) {
	if current == nil || previous == nil || previous.P50FeeCharged <= 0 {
		return
	}

	factor := float64(current.P50FeeCharged) / float64(previous.P50FeeCharged)
	if factor < d.config.Fees.SurgeFactor {
		return
	}

	d.notifier.NotifyFeeSurge(current.P50FeeCharged, previous.P50FeeCharged, current.CapacityUsage)
	d.logger.Info("fee surge detected",
		"p50", current.P50FeeCharged, "previous", previous.P50FeeCharged, "factor", factor)
}

func DecisionsToJSON(decisions []ai.Decision) string {
	data, err := json.Marshal(decisions)
	if err != nil {
		return "[]"
	}
	return string(data)
}
