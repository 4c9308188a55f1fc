package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	horizonRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumenwatch",
		Name:      "horizon_requests_total",
		Help:      "Horizon requests by endpoint and HTTP status.",
	}, []string{"endpoint", "status"})

	horizonRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumenwatch",
		Name:      "horizon_request_errors_total",
		Help:      "Horizon requests that failed before a status was received.",
	}, []string{"endpoint"})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lumenwatch",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of full analysis cycles.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	signalsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumenwatch",
		Name:      "signals_total",
		Help:      "AI signals raised, by action.",
	}, []string{"action"})

	lastP50Fee = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lumenwatch",
		Name:      "fee_charged_p50_stroops",
		Help:      "Most recently observed p50 charged fee.",
	})
)

func IncRequest(endpoint string, statusCode int) {
	horizonRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

func IncRequestError(endpoint string) {
	horizonRequestErrors.WithLabelValues(endpoint).Inc()
}

func ObserveCycle(d time.Duration) {
	cycleDuration.Observe(d.Seconds())
}

func IncSignal(action string) {
	signalsRaised.WithLabelValues(action).Inc()
}

func SetP50Fee(stroops float64) {
	lastP50Fee.Set(stroops)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
