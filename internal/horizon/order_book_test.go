package horizon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBookRequestBuilder(t *testing.T) {
	usdc, err := CreditAsset("USDC", testIssuer)
	require.NoError(t, err)

	t.Run("url params", func(t *testing.T) {
		c := testClient(t, "https://horizon.stellar.org")
		b := c.OrderBook().SellingAsset(NativeAsset()).BuyingAsset(usdc).Limit(10)

		u := mustParse(t, b.BuildURL())
		assert.Equal(t, "/order_book", u.Path)

		q := u.Query()
		assert.Equal(t, "native", q.Get("selling_asset_type"))
		assert.Equal(t, "credit_alphanum4", q.Get("buying_asset_type"))
		assert.Equal(t, "USDC", q.Get("buying_asset_code"))
		assert.Equal(t, "10", q.Get("limit"))
	})

	t.Run("execute and spread", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"bids": [{"price_r": {"n": 10, "d": 100}, "price": "0.1000000", "amount": "500.0"}],
				"asks": [{"price_r": {"n": 11, "d": 100}, "price": "0.1100000", "amount": "300.0"}],
				"base": {"asset_type": "native"},
				"counter": {"asset_type": "credit_alphanum4", "asset_code": "USDC", "asset_issuer": "` + testIssuer + `"}
			}`))
		}))
		defer srv.Close()

		book, err := testClient(t, srv.URL).OrderBook().
			SellingAsset(NativeAsset()).
			BuyingAsset(usdc).
			Execute(context.Background())
		require.NoError(t, err)

		assert.True(t, book.Selling.IsNative())
		assert.Equal(t, "USDC", book.Buying.Code)
		assert.Equal(t, PriceR{N: 11, D: 100}, book.Asks[0].PriceR)
		assert.InDelta(t, 0.11, book.BestAsk(), 1e-9)
		assert.InDelta(t, 0.10, book.BestBid(), 1e-9)
		assert.InDelta(t, (0.11-0.10)/0.11*100, book.SpreadPct(), 1e-9)
	})

	t.Run("numeric rational prices", func(t *testing.T) {
		// Order book n/d are JSON numbers; seven-digit stroop-scale values
		// must survive the round trip exactly.
		var book OrderBookSummary
		err := json.Unmarshal([]byte(`{
			"bids": [{"price_r": {"n": 10000000, "d": 139999999}, "price": "0.0714286", "amount": "12.5"}],
			"asks": [],
			"base": {"asset_type": "native"},
			"counter": {"asset_type": "native"}
		}`), &book)
		require.NoError(t, err)
		require.Len(t, book.Bids, 1)

		assert.Equal(t, int32(10000000), book.Bids[0].PriceR.N)
		assert.Equal(t, int32(139999999), book.Bids[0].PriceR.D)
		assert.InDelta(t, 10000000.0/139999999.0, book.Bids[0].PriceR.Float(), 1e-12)
		assert.Zero(t, PriceR{}.Float())
	})

	t.Run("empty sides yield zero spread", func(t *testing.T) {
		book := &OrderBookSummary{}
		assert.Zero(t, book.BestBid())
		assert.Zero(t, book.BestAsk())
		assert.Zero(t, book.SpreadPct())
	})
}
