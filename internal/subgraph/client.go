// Package subgraph queries the Goldsky-hosted Polymarket orderbook
// subgraph over GraphQL. It bypasses the data API's offset ceiling for
// historical trade data and exposes the schema-introspection queries
// used to explore the subgraph.
//
// Every response arrives in the standard GraphQL envelope; the errors
// array is always checked before data is touched.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultURL is the public Goldsky orderbook subgraph (no API key needed).
const DefaultURL = "https://api.goldsky.com/api/public/project_cl6mb8i9h0003e201j6li0diw/subgraphs/orderbook-subgraph/0.0.1/gn"

// DefaultBatchSize is the maximum records per GraphQL query.
const DefaultBatchSize = 1000

// Client queries the orderbook subgraph.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a subgraph client. An empty endpoint selects the
// public Goldsky deployment.
func NewClient(endpoint string, timeout time.Duration) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MatchedEvent is one ordersMatchedEvent record. The subgraph returns
// every numeric field as a string.
type MatchedEvent struct {
	ID                string `json:"id"`
	Timestamp         string `json:"timestamp"`
	ConditionID       string `json:"conditionId"`
	TokenID           string `json:"tokenId"`
	MakerAssetID      string `json:"makerAssetId"`
	TakerAssetID      string `json:"takerAssetId"`
	MakerAmountFilled string `json:"makerAmountFilled"`
	TakerAmountFilled string `json:"takerAmountFilled"`
	Maker             string `json:"maker"`
	Taker             string `json:"taker"`
	TransactionHash   string `json:"transactionHash"`
	BlockNumber       string `json:"blockNumber"`
}

// Time parses the string timestamp into a time.Time.
func (e *MatchedEvent) Time() time.Time {
	secs, err := strconv.ParseInt(e.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

// amountUnits converts a raw on-chain amount string to whole units.
func amountUnits(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f / 1e18
}

// EstimatedPrice approximates the trade price from the maker/taker fill
// ratio. The direction of the match is unknown, so the ratio is flipped
// when it lands above 1.
func (e *MatchedEvent) EstimatedPrice() float64 {
	maker := amountUnits(e.MakerAmountFilled)
	taker := amountUnits(e.TakerAmountFilled)
	if maker <= 0 {
		return 0
	}
	ratio := taker / maker
	if ratio < 1 {
		return ratio
	}
	if taker <= 0 {
		return 0
	}
	return maker / taker
}

// EstimatedSize approximates the trade size as the larger fill amount.
func (e *MatchedEvent) EstimatedSize() float64 {
	maker := amountUnits(e.MakerAmountFilled)
	taker := amountUnits(e.TakerAmountFilled)
	if maker > taker {
		return maker
	}
	return taker
}

const matchedEventsQuery = `
query GetTrades($conditionId: String!, $first: Int!, $skip: Int!) {
  ordersMatchedEvents(
    where: { conditionId: $conditionId }
    first: $first
    skip: $skip
    orderBy: timestamp
    orderDirection: desc
  ) {
    id
    timestamp
    conditionId
    tokenId
    makerAssetId
    takerAssetId
    makerAmountFilled
    takerAmountFilled
    maker
    taker
    transactionHash
    blockNumber
  }
}
`

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts a GraphQL query and decodes the data payload into out after
// checking the errors array.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("subgraph marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("subgraph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("subgraph %s: status=%d", c.endpoint, resp.StatusCode)
	}

	var envelope gqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("subgraph decode: %w", err)
	}

	// The errors key must be checked before data: a response can carry
	// errors alongside an absent or partial data payload.
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("subgraph errors: %s", strings.Join(messages, "; "))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("subgraph unmarshal data: %w", err)
		}
	}
	return nil
}

// FetchMatchedEvents requests one batch of ordersMatchedEvents for a
// market, ordered by timestamp descending. The condition ID is
// lowercased; the subgraph indexes lowercase hex strings.
func (c *Client) FetchMatchedEvents(ctx context.Context, conditionID string, first, skip int) ([]MatchedEvent, error) {
	if strings.TrimSpace(conditionID) == "" {
		return nil, fmt.Errorf("condition ID required")
	}
	if first <= 0 {
		first = DefaultBatchSize
	}

	var data struct {
		OrdersMatchedEvents []MatchedEvent `json:"ordersMatchedEvents"`
	}
	err := c.do(ctx, matchedEventsQuery, map[string]interface{}{
		"conditionId": strings.ToLower(strings.TrimSpace(conditionID)),
		"first":       first,
		"skip":        skip,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.OrdersMatchedEvents, nil
}

// FetchAllMatchedEvents pages through ordersMatchedEvents with
// first/skip until an empty or short batch.
func (c *Client) FetchAllMatchedEvents(ctx context.Context, conditionID string, progress func(batch, total int)) ([]MatchedEvent, error) {
	var all []MatchedEvent
	skip := 0

	for {
		events, err := c.FetchMatchedEvents(ctx, conditionID, DefaultBatchSize, skip)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			break
		}

		all = append(all, events...)
		if progress != nil {
			progress(len(events), len(all))
		}

		if len(events) < DefaultBatchSize {
			break
		}
		skip += DefaultBatchSize
	}

	return all, nil
}
