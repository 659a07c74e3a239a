// Package dataapi provides access to the Polymarket data API trade feed.
// It implements single-page fetches plus the paginate/deduplicate loop
// used by every analysis command: pages are requested sequentially,
// records are deduplicated by transaction hash, and pagination stops on
// an empty page, a short page, an all-duplicate page (the API wraps
// around to old data once the server-side result set is exhausted), or
// the documented offset ceiling.
package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

const DefaultURL = "https://data-api.polymarket.com"

// DefaultUserAgent mimics a browser UA to avoid Cloudflare 403s.
const DefaultUserAgent = "Mozilla/5.0"

// MaxOffset is the server-enforced pagination ceiling. Offsets at or
// beyond it return repeated data, so the fetch loop never crosses it.
const MaxOffset = 10000

// DefaultPageSize is used for unfiltered fetches; FilteredPageSize is
// used when a cash filter is set (the filtered endpoint accepts larger
// pages).
const (
	DefaultPageSize  = 500
	FilteredPageSize = 1000
)

// FilterTypeCash selects the minimum-cash-value trade filter.
const FilterTypeCash = "CASH"

// Client queries the Polymarket data API.
type Client struct {
	host       string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a data API client. An empty host selects the public
// endpoint.
func NewClient(host string, timeout time.Duration) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultURL
	}
	host = strings.TrimRight(host, "/")

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("data api url parse %q: %w", host, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("data api url must be http(s), got %q", host)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		host: host,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: DefaultUserAgent,
	}, nil
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	if strings.TrimSpace(ua) != "" {
		c.userAgent = ua
	}
}

// TradesParams are the query parameters for a single trades page.
type TradesParams struct {
	Market       string
	Limit        int
	Offset       int
	FilterType   string
	FilterAmount float64
}

// FetchTrades requests one page of trades. Any non-2xx response is a
// hard failure; callers never see a partial page.
func (c *Client) FetchTrades(ctx context.Context, params TradesParams) ([]models.Trade, error) {
	if c == nil {
		return nil, fmt.Errorf("data api client nil")
	}
	if strings.TrimSpace(params.Market) == "" {
		return nil, fmt.Errorf("trades market (condition ID) required")
	}

	q := url.Values{}
	q.Set("market", strings.TrimSpace(params.Market))
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if strings.TrimSpace(params.FilterType) != "" {
		q.Set("filterType", strings.TrimSpace(params.FilterType))
		q.Set("filterAmount", strconv.FormatFloat(params.FilterAmount, 'f', -1, 64))
	}

	endpoint := c.host + "/trades?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("data api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyLimit(resp.Body, 8<<10)
		return nil, fmt.Errorf("data api %s: status=%d body=%q", endpoint, resp.StatusCode, body)
	}

	var trades []models.Trade
	if err := json.NewDecoder(resp.Body).Decode(&trades); err != nil {
		return nil, fmt.Errorf("data api decode: %w", err)
	}
	return trades, nil
}

func readBodyLimit(r io.Reader, limit int64) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, limit))
	return string(b)
}
