package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	defaultTimeout = 10 * time.Second
)

// Client is a thin CoinGecko API client covering the coin catalog and
// the market_chart/range history endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// New creates a new CoinGecko client. apiKey may be empty for the free tier.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the upstream identifier.
func (c *Client) Name() string {
	return "coingecko"
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrUpstreamStatus, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.WrapError(core.ErrUpstreamStatus,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrUpstreamDecode, err)
	}
	return nil
}

// Coins fetches the full catalog of supported coins in upstream order.
func (c *Client) Coins(ctx context.Context) ([]core.Coin, error) {
	var coins []core.Coin
	if err := c.get(ctx, c.baseURL+"/coins/list", &coins); err != nil {
		return nil, fmt.Errorf("fetching coin list: %w", err)
	}
	return coins, nil
}

// MarketRange fetches USD prices for a coin between from and to and
// normalizes them to daily points. Timestamps are truncated to the UTC
// calendar day; samples collapsing to the same day are passed through
// untouched.
func (c *Client) MarketRange(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error) {
	u := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		c.baseURL, url.PathEscape(coinID), from.Unix(), to.Unix())

	// CoinGecko returns {"prices": [[timestamp_ms, price], ...]}
	var result struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := c.get(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("fetching market range for %s: %w", coinID, err)
	}

	series := make(core.PriceSeries, 0, len(result.Prices))
	for _, pair := range result.Prices {
		if len(pair) < 2 {
			continue
		}
		series = append(series, core.PricePoint{
			Date:  core.DayUTC(int64(pair[0])),
			Price: pair[1],
		})
	}

	return series, nil
}
