package dataapi

import (
	"context"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// FetchAllOptions controls the pagination loop.
type FetchAllOptions struct {
	// PageSize is the per-request limit. Zero selects DefaultPageSize,
	// or FilteredPageSize when MinCash is set.
	PageSize int
	// MaxOffset caps the pagination offset. Zero selects MaxOffset.
	MaxOffset int
	// MinCash, when positive, requests only trades whose cash value
	// meets the threshold (filterType=CASH).
	MinCash float64
	// PageDelay inserts a pause between page requests to stay under
	// rate limits.
	PageDelay time.Duration
	// Progress, when set, is invoked after each kept page.
	Progress func(PageResult)
}

// PageResult describes one fetched page for progress reporting.
type PageResult struct {
	Page       int
	Offset     int
	Fetched    int // records in the page, pre-dedup
	Kept       int
	Duplicates int
	Total      int // running total of kept trades
}

// FetchAllTrades retrieves the complete set of distinct trades for a
// market. Trades are concatenated in fetch order (the API returns pages
// in descending timestamp order); the returned list contains no two
// entries with the same transaction hash. Records without a transaction
// hash are dropped and counted as duplicates, so a page of hashless
// records terminates pagination like an all-duplicate page.
//
// Any page-level fetch error aborts the whole operation; there is no
// partial-result recovery.
func (c *Client) FetchAllTrades(ctx context.Context, conditionID string, opts FetchAllOptions) ([]models.Trade, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		if opts.MinCash > 0 {
			pageSize = FilteredPageSize
		} else {
			pageSize = DefaultPageSize
		}
	}
	maxOffset := opts.MaxOffset
	if maxOffset <= 0 {
		maxOffset = MaxOffset
	}

	seen := make(map[string]struct{})
	var all []models.Trade

	offset := 0
	page := 1

	for offset < maxOffset {
		params := TradesParams{
			Market: conditionID,
			Limit:  pageSize,
			Offset: offset,
		}
		if opts.MinCash > 0 {
			params.FilterType = FilterTypeCash
			params.FilterAmount = opts.MinCash
		}

		trades, err := c.FetchTrades(ctx, params)
		if err != nil {
			return nil, err
		}

		if len(trades) == 0 {
			logger.Debug("page %d (offset=%d): no more trades", page, offset)
			break
		}

		var kept []models.Trade
		duplicates := 0
		for _, t := range trades {
			if t.TransactionHash == "" {
				duplicates++
				continue
			}
			if _, ok := seen[t.TransactionHash]; ok {
				duplicates++
				continue
			}
			seen[t.TransactionHash] = struct{}{}
			kept = append(kept, t)
		}

		if len(kept) == 0 {
			// All duplicates: the API wrapped around to old data, the
			// server-side result set is exhausted.
			logger.Debug("page %d (offset=%d): all %d trades are duplicates, reached end of data", page, offset, len(trades))
			break
		}

		all = append(all, kept...)

		if opts.Progress != nil {
			opts.Progress(PageResult{
				Page:       page,
				Offset:     offset,
				Fetched:    len(trades),
				Kept:       len(kept),
				Duplicates: duplicates,
				Total:      len(all),
			})
		}

		if len(trades) < pageSize {
			// Short page: last page of the result set.
			break
		}

		offset += pageSize
		page++

		if opts.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.PageDelay):
			}
		}
	}

	return all, nil
}
