// Package gamma provides market search against the Polymarket Gamma API.
// The public-search endpoint returns events that each wrap one or more
// markets; the client flattens them into a market list and can detect a
// resolved outcome from the market's outcome prices.
//
// Gamma has a quirk worth knowing about: list-valued fields such as
// outcomePrices commonly arrive as a JSON string that itself contains a
// JSON array, so the field types here carry custom unmarshalers.
package gamma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

const DefaultURL = "https://gamma-api.polymarket.com"

// DefaultUserAgent mimics a browser UA to avoid Cloudflare 403s.
const DefaultUserAgent = "Mozilla/5.0"

// Client queries the Polymarket Gamma API.
type Client struct {
	host       string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a Gamma client. An empty host selects the public
// endpoint.
func NewClient(host string, timeout time.Duration) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultURL
	}
	host = strings.TrimRight(host, "/")

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("gamma url parse %q: %w", host, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("gamma url must be http(s), got %q", host)
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

// stringList handles Gamma's string-encoded JSON arrays.
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}

	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*s = nil
			return nil
		}
		var vals []string
		if err := json.Unmarshal([]byte(raw), &vals); err != nil {
			return err
		}
		*s = vals
		return nil
	}

	var vals []string
	if err := json.Unmarshal(b, &vals); err != nil {
		return err
	}
	*s = vals
	return nil
}

// volume handles Gamma volume fields showing up as either a JSON number
// or a numeric string.
type volume float64

func (v *volume) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = 0
		return nil
	}
	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*v = 0
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Unparseable volume strings are treated as unknown, not fatal.
			*v = 0
			return nil
		}
		*v = volume(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = volume(f)
	return nil
}

// Market is a search result entry.
type Market struct {
	ID            string     `json:"id"`
	ConditionID   string     `json:"conditionId"`
	Question      string     `json:"question"`
	Slug          string     `json:"slug"`
	OutcomePrices stringList `json:"outcomePrices"`
	Volume        volume     `json:"volume"`
	Active        bool       `json:"active"`
	Closed        bool       `json:"closed"`
	EventTitle    string     `json:"-"`
}

type searchEvent struct {
	Title   string   `json:"title"`
	Volume  volume   `json:"volume"`
	Markets []Market `json:"markets"`
}

type searchResponse struct {
	Events []searchEvent `json:"events"`
}

// SearchMarkets queries public-search by market name and returns the
// flattened market list sorted by volume descending. Markets missing a
// condition ID or question are dropped; a market without its own volume
// inherits the event-level volume.
func (c *Client) SearchMarkets(ctx context.Context, query string, limit int) ([]Market, error) {
	if c == nil {
		return nil, fmt.Errorf("gamma client nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query required")
	}
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	endpoint := c.host + "/public-search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gamma request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gamma %s: status=%d", endpoint, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("gamma decode: %w", err)
	}

	var markets []Market
	for _, ev := range sr.Events {
		for _, m := range ev.Markets {
			if m.ConditionID == "" || m.Question == "" {
				continue
			}
			if m.Volume == 0 && ev.Volume > 0 {
				m.Volume = ev.Volume
			}
			m.EventTitle = ev.Title
			markets = append(markets, m)
		}
	}

	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].Volume > markets[j].Volume
	})

	if len(markets) > limit {
		markets = markets[:limit]
	}
	return markets, nil
}

// DetectResolution infers a resolved outcome from the outcome prices: a
// price of exactly "1" marks the winning side. The second return value
// is false while the market is unresolved.
func DetectResolution(m Market) (models.Outcome, bool) {
	if len(m.OutcomePrices) < 2 {
		return "", false
	}
	if m.OutcomePrices[0] == "1" {
		return models.OutcomeYes, true
	}
	if m.OutcomePrices[1] == "1" {
		return models.OutcomeNo, true
	}
	return "", false
}
