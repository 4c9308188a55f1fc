package web

import (
	"html/template"
	"net/http"

	"github.com/camuig/lumen-watch/internal/storage"
)

type PairView struct {
	Pair      string
	LastPrice float64
	Change1d  float64
	Change1w  float64
	Volume24h float64
	BestBid   float64
	BestAsk   float64
	SpreadPct float64
}

type DashboardData struct {
	ServerURL      string
	Fee            *storage.FeeSnapshot
	Pairs          []PairView
	ActiveSignals  []storage.Signal
	RecentSignals  []storage.Signal
	RecentAnalyses []storage.AnalysisLog
	SignalsToday   int64
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>lumen-watch</title>
<style>
body { font-family: monospace; margin: 2em; background: #101418; color: #d8dee9; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #2e3440; padding: 0.4em 0.8em; text-align: right; }
th { background: #1b2128; }
td:first-child, th:first-child { text-align: left; }
h2 { color: #88c0d0; }
.neg { color: #bf616a; } .pos { color: #a3be8c; }
</style>
</head>
<body>
<h1>lumen-watch</h1>
<p>Horizon: {{.ServerURL}} &middot; signals today: {{.SignalsToday}}</p>

<h2>Network fees</h2>
{{if .Fee}}
<table>
<tr><th>Last ledger</th><th>Base fee</th><th>p50 charged</th><th>p95 charged</th><th>Capacity</th></tr>
<tr><td>{{.Fee.LastLedger}}</td><td>{{.Fee.BaseFee}}</td><td>{{.Fee.P50FeeCharged}}</td><td>{{.Fee.P95FeeCharged}}</td><td>{{printf "%.2f" .Fee.CapacityUsage}}</td></tr>
</table>
{{else}}<p>No fee data yet.</p>{{end}}

<h2>Markets</h2>
<table>
<tr><th>Pair</th><th>Price</th><th>1d%</th><th>1w%</th><th>Vol 24h</th><th>Bid</th><th>Ask</th><th>Spread%</th></tr>
{{range .Pairs}}
<tr><td>{{.Pair}}</td><td>{{printf "%.6g" .LastPrice}}</td>
<td class="{{if lt .Change1d 0.0}}neg{{else}}pos{{end}}">{{printf "%+.1f" .Change1d}}</td>
<td class="{{if lt .Change1w 0.0}}neg{{else}}pos{{end}}">{{printf "%+.1f" .Change1w}}</td>
<td>{{printf "%.0f" .Volume24h}}</td>
<td>{{printf "%.6g" .BestBid}}</td><td>{{printf "%.6g" .BestAsk}}</td>
<td>{{printf "%.2f" .SpreadPct}}</td></tr>
{{end}}
</table>

<h2>Active signals</h2>
{{if .ActiveSignals}}
<table>
<tr><th>Pair</th><th>Action</th><th>Target</th><th>Confidence</th><th>Since</th></tr>
{{range .ActiveSignals}}
<tr><td>{{.Pair}}</td><td>{{.Action}}</td><td>{{printf "%.6g" .TargetPrice}}</td><td>{{.Confidence}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>
{{end}}
</table>
{{else}}<p>None.</p>{{end}}

<h2>Recent signals</h2>
<table>
<tr><th>Pair</th><th>Action</th><th>Status</th><th>Confidence</th><th>At</th></tr>
{{range .RecentSignals}}
<tr><td>{{.Pair}}</td><td>{{.Action}}</td><td>{{.Status}}</td><td>{{.Confidence}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td></tr>
{{end}}
</table>

<h2>Analysis runs</h2>
<table>
<tr><th>At</th><th>Pairs</th><th>Decisions</th><th>Error</th></tr>
{{range .RecentAnalyses}}
<tr><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td><td>{{.PairsCount}}</td><td>{{.DecisionsJSON}}</td><td>{{.Error}}</td></tr>
{{end}}
</table>
</body>
</html>`))

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := DashboardData{ServerURL: s.horizon.ServerURL()}

	if fee, err := s.repo.GetLatestFeeSnapshot(); err == nil {
		data.Fee = fee
	}
	if signals, err := s.repo.GetActiveSignals(); err == nil {
		data.ActiveSignals = signals
	}
	if signals, err := s.repo.GetRecentSignals(20); err == nil {
		data.RecentSignals = signals
	}
	if count, err := s.repo.CountTodaySignals(); err == nil {
		data.SignalsToday = count
	}
	if logs, err := s.repo.GetRecentAnalysisLogs(10); err == nil {
		data.RecentAnalyses = logs
	}

	data.Pairs = s.buildPairViews(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.Error("execute template", "error", err)
	}
}

// buildPairViews merges the latest stored stats with live order book data.
func (s *Server) buildPairViews(r *http.Request) []PairView {
	statByPair := make(map[string]storage.PairStat)
	if stats, err := s.repo.GetLatestPairStats(); err != nil {
		s.logger.Error("get pair stats for dashboard", "error", err)
	} else {
		for _, st := range stats {
			statByPair[st.Pair] = st
		}
	}

	views := make([]PairView, 0, len(s.pairs))
	for _, pair := range s.pairs {
		view := PairView{Pair: pair.String()}

		if st, ok := statByPair[view.Pair]; ok {
			view.LastPrice = st.LastPrice
			view.Change1d = st.Change1d
			view.Change1w = st.Change1w
			view.Volume24h = st.Volume24h
		}

		if book, err := s.orderBook(r.Context(), pair); err != nil {
			s.logger.Debug("order book for dashboard", "pair", view.Pair, "error", err)
		} else {
			view.BestBid = book.BestBid()
			view.BestAsk = book.BestAsk()
			view.SpreadPct = book.SpreadPct()
		}

		views = append(views, view)
	}
	return views
}
