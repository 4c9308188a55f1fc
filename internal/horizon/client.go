package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/camuig/lumen-watch/internal/logger"
	"github.com/camuig/lumen-watch/internal/metrics"
)

// Client talks to a Horizon server. Endpoint builders derived from it share
// its base URL and transport handle; deriving a builder never mutates the
// client.
type Client struct {
	serverURL  *url.URL
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(serverURL string, timeout time.Duration, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse horizon url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("horizon url %q: scheme and host required", serverURL)
	}

	return &Client{
		serverURL:  u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}, nil
}

func (c *Client) ServerURL() string {
	return c.serverURL.String()
}

func (c *Client) Root() *RootRequestBuilder {
	return &RootRequestBuilder{newRequestBuilder(c.httpClient, c.serverURL)}
}

func (c *Client) FeeStats() *FeeStatsRequestBuilder {
	return &FeeStatsRequestBuilder{newRequestBuilder(c.httpClient, c.serverURL, "fee_stats")}
}

func (c *Client) TradeAggregations() *TradeAggregationsRequestBuilder {
	return &TradeAggregationsRequestBuilder{newRequestBuilder(c.httpClient, c.serverURL, "trade_aggregations")}
}

func (c *Client) Trades() *TradesRequestBuilder {
	return &TradesRequestBuilder{newRequestBuilder(c.httpClient, c.serverURL, "trades")}
}

func (c *Client) OrderBook() *OrderBookRequestBuilder {
	return &OrderBookRequestBuilder{newRequestBuilder(c.httpClient, c.serverURL, "order_book")}
}

// execute issues the GET described by the builder and decodes the JSON body
// into out. Non-2xx responses are returned as *Problem.
func (b *requestBuilder) execute(ctx context.Context, out interface{}) error {
	endpoint := b.endpoint()
	reqURL := b.BuildURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		metrics.IncRequestError(endpoint)
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncRequestError(endpoint)
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	metrics.IncRequest(endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return problemFromBody(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", endpoint, err)
	}
	return nil
}
