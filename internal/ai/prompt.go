package ai

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced trader on the Stellar decentralized exchange.
You analyze market movement, trading volume, order book spreads and network fee
conditions for a fixed set of asset pairs, and issue signals: BUY (expect the
counter asset to appreciate against the base), SELL (close a previously issued
BUY view) or HOLD. Signals are advisory only; no orders are placed.

You are given:
- Per-pair last price, percent changes over 3h/1d/3d/1w, 24h counter volume,
  trade count and current bid/ask spread
- Current network fee statistics (base fee, p50/p95 charged, ledger capacity usage)
- The list of currently active signals

Rules:
1. Weigh momentum across all time windows against volume confirmation.
2. Do not issue BUY for a pair that already has an active BUY signal.
3. Wide spreads or thin volume reduce confidence.
4. High ledger capacity usage with surging fees signals network congestion; be cautious.
5. For SELL, name the active signal being reversed in reasoning.
6. Confidence is 0-100.

Answer strictly as a JSON array:
[
  {
    "action": "BUY",
    "pair": "XLM/USDC",
    "target_price": 0.105,
    "confidence": 75,
    "reasoning": "why"
  }
]

Return an empty array [] when there is nothing actionable.`

func BuildUserPrompt(req *AnalysisRequest) string {
	var sb strings.Builder

	sb.WriteString("## Network fees\n")
	if req.Fees != nil {
		sb.WriteString(fmt.Sprintf("Base fee: %d stroops / p50 charged: %d / p95 charged: %d / capacity usage: %.2f\n\n",
			req.Fees.BaseFee, req.Fees.P50FeeCharged, req.Fees.P95FeeCharged, req.Fees.CapacityUsage))
	} else {
		sb.WriteString("No fee data this cycle.\n\n")
	}

	if len(req.ActiveSignals) > 0 {
		sb.WriteString("## Active signals\n")
		for _, s := range req.ActiveSignals {
			sb.WriteString(fmt.Sprintf("- %s %s: target %.6g, confidence %d\n",
				s.Action, s.Pair, s.TargetPrice, s.Confidence))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No active signals.\n\n")
	}

	sb.WriteString("## Market data (watched pairs)\n")
	sb.WriteString("| Pair | Price | 3h% | 1d% | 3d% | 1w% | Vol24h | Trades | Spread% |\n")
	sb.WriteString("|------|-------|-----|-----|-----|-----|--------|--------|---------|\n")
	for _, p := range req.Pairs {
		sb.WriteString(fmt.Sprintf("| %s | %.6g | %+.1f | %+.1f | %+.1f | %+.1f | %.0f | %d | %.2f |\n",
			p.Pair, p.LastPrice, p.Change3h, p.Change1d, p.Change3d, p.Change1w,
			p.Volume24h, p.TradeCount, p.SpreadPct))
	}
	sb.WriteString("\nAnalyze and return decisions as JSON.")

	return sb.String()
}
