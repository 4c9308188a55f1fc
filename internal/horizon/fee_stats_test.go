package horizon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/lumen-watch/internal/logger"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(serverURL, 5*time.Second, logger.New("error"))
	require.NoError(t, err)
	return c
}

const feeStatsBody = `{
	"last_ledger": "51990713",
	"last_ledger_base_fee": "100",
	"ledger_capacity_usage": "0.97",
	"fee_charged": {
		"max": "5000", "min": "100", "mode": "100",
		"p10": "100", "p20": "100", "p30": "100", "p40": "100", "p50": "100",
		"p60": "150", "p70": "200", "p80": "300", "p90": "1000", "p95": "2000", "p99": "5000"
	},
	"max_fee": {
		"max": "100000", "min": "100", "mode": "10000",
		"p10": "100", "p20": "150", "p30": "200", "p40": "500", "p50": "1000",
		"p60": "2000", "p70": "5000", "p80": "10000", "p90": "50000", "p95": "80000", "p99": "100000"
	}
}`

func TestFeeStatsRequestBuilder(t *testing.T) {
	t.Run("url has fee_stats segment and no query", func(t *testing.T) {
		c := testClient(t, "https://horizon.stellar.org")
		assert.Equal(t, "https://horizon.stellar.org/fee_stats", c.FeeStats().BuildURL())
	})

	t.Run("url keeps base path prefix", func(t *testing.T) {
		c := testClient(t, "https://example.com/horizon")
		assert.Equal(t, "https://example.com/horizon/fee_stats", c.FeeStats().BuildURL())
	})

	t.Run("execute decodes response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fee_stats", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feeStatsBody))
		}))
		defer srv.Close()

		stats, err := testClient(t, srv.URL).FeeStats().Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "51990713", stats.LastLedger)
		assert.Equal(t, "100", stats.LastLedgerBaseFee)
		assert.Equal(t, "0.97", stats.LedgerCapacityUsage)
		assert.Equal(t, "100", stats.FeeCharged.P50)
		assert.Equal(t, "2000", stats.FeeCharged.P95)
		assert.Equal(t, "100000", stats.MaxFee.P99)
	})

	t.Run("problem response becomes typed error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"type":"https://stellar.org/horizon-errors/rate_limit_exceeded","title":"Rate Limit Exceeded","status":429,"detail":"too many requests"}`))
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).FeeStats().Execute(context.Background())
		require.Error(t, err)

		var problem *Problem
		require.ErrorAs(t, err, &problem)
		assert.Equal(t, 429, problem.Status)
		assert.Equal(t, "Rate Limit Exceeded", problem.Title)
	})

	t.Run("non-json error body falls back to status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream gone"))
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).FeeStats().Execute(context.Background())
		require.Error(t, err)

		var problem *Problem
		require.ErrorAs(t, err, &problem)
		assert.Equal(t, http.StatusBadGateway, problem.Status)
	})
}
