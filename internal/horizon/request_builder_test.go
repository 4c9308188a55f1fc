package horizon

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestBuildURL(t *testing.T) {
	t.Run("appends segment to bare host", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://horizon.stellar.org"), "fee_stats")
		assert.Equal(t, "https://horizon.stellar.org/fee_stats", b.BuildURL())
	})

	t.Run("preserves existing path prefix", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://example.com/api/v2"), "trade_aggregations")
		assert.Equal(t, "https://example.com/api/v2/trade_aggregations", b.BuildURL())
	})

	t.Run("trailing slash on base does not double up", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://example.com/api/"), "fee_stats")
		assert.Equal(t, "https://example.com/api/fee_stats", b.BuildURL())
	})

	t.Run("port survives", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "http://localhost:8000"), "trades")
		assert.Equal(t, "http://localhost:8000/trades", b.BuildURL())
	})

	t.Run("no segments yields root path", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://horizon.stellar.org"))
		assert.Equal(t, "https://horizon.stellar.org/", b.BuildURL())
	})

	t.Run("no params yields empty query", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://horizon.stellar.org"), "fee_stats")
		u := mustParse(t, b.BuildURL())
		assert.Empty(t, u.RawQuery)
	})

	t.Run("params use standard encoding", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://horizon.stellar.org"), "trades")
		b.setParam("order", "desc")
		b.setParam("cursor", "now")

		u := mustParse(t, b.BuildURL())
		assert.Equal(t, "desc", u.Query().Get("order"))
		assert.Equal(t, "now", u.Query().Get("cursor"))
	})

	t.Run("repeated calls yield equal strings", func(t *testing.T) {
		b := newRequestBuilder(nil, mustParse(t, "https://example.com/api"), "trade_aggregations")
		b.setInt64Param("resolution", 3600000)

		first := b.BuildURL()
		second := b.BuildURL()
		assert.Equal(t, first, second)
	})

	t.Run("does not mutate the server URL", func(t *testing.T) {
		base := mustParse(t, "https://example.com/api")
		b := newRequestBuilder(nil, base, "fee_stats")
		b.setParam("x", "y")
		_ = b.BuildURL()

		assert.Equal(t, "/api", base.Path)
		assert.Empty(t, base.RawQuery)
	})
}

func TestBuilderEndpoint(t *testing.T) {
	root := newRequestBuilder(nil, mustParse(t, "https://example.com"))
	assert.Equal(t, "root", root.endpoint())

	fees := newRequestBuilder(nil, mustParse(t, "https://example.com"), "fee_stats")
	assert.Equal(t, "fee_stats", fees.endpoint())
}
