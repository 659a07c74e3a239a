package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
	"github.com/shlomota/PolymarketAnalyzer/internal/config"
	"github.com/shlomota/PolymarketAnalyzer/internal/dataapi"
	"github.com/shlomota/PolymarketAnalyzer/internal/gamma"
	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
	"github.com/shlomota/PolymarketAnalyzer/internal/subgraph"
)

// loadConfig resolves configuration from the --config flag or defaults,
// validates it, and initializes logging.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDataClient(cfg *config.Config) (*dataapi.Client, error) {
	client, err := dataapi.NewClient(cfg.Polymarket.DataAPIURL, cfg.Polymarket.Timeout)
	if err != nil {
		return nil, err
	}
	client.SetUserAgent(cfg.Polymarket.UserAgent)
	return client, nil
}

func newGammaClient(cfg *config.Config) (*gamma.Client, error) {
	return gamma.NewClient(cfg.Polymarket.GammaAPIURL, cfg.Polymarket.Timeout)
}

func newSubgraphClient(cfg *config.Config) *subgraph.Client {
	return subgraph.NewClient(cfg.Polymarket.SubgraphURL, cfg.Polymarket.Timeout)
}

// resolveMarket turns the --market / --condition-id flag pair into a
// concrete market. A free-text market query goes through Gamma search
// and picks the highest-volume match.
func resolveMarket(ctx context.Context, cmd *cli.Command, cfg *config.Config) (conditionID, marketName string, detected *models.Outcome, err error) {
	conditionID = strings.TrimSpace(cmd.String("condition-id"))
	query := strings.TrimSpace(cmd.String("market"))

	if conditionID != "" {
		return conditionID, query, nil, nil
	}
	if query == "" {
		return "", "", nil, fmt.Errorf("either --market or --condition-id is required")
	}

	gc, err := newGammaClient(cfg)
	if err != nil {
		return "", "", nil, err
	}
	markets, err := gc.SearchMarkets(ctx, query, 10)
	if err != nil {
		return "", "", nil, fmt.Errorf("market search failed: %w", err)
	}
	if len(markets) == 0 {
		return "", "", nil, fmt.Errorf("no markets found for %q", query)
	}

	best := markets[0]
	logger.Info("matched market %q (condition %s, volume $%.0f)", best.Question, best.ConditionID, float64(best.Volume))

	if outcome, ok := gamma.DetectResolution(best); ok {
		detected = &outcome
	}
	return best.ConditionID, best.Question, detected, nil
}

// fetchTrades runs the full paginate/dedupe fetch with a progress bar
// on stderr.
func fetchTrades(ctx context.Context, cfg *config.Config, conditionID string, minCash float64) ([]models.Trade, error) {
	client, err := newDataClient(cfg)
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("fetching trades"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	opts := dataapi.FetchAllOptions{
		MaxOffset: cfg.Polymarket.MaxOffset,
		MinCash:   minCash,
		PageDelay: cfg.Polymarket.PageDelay,
		Progress: func(pr dataapi.PageResult) {
			_ = bar.Add(pr.Kept)
		},
	}
	if minCash > 0 {
		opts.PageSize = cfg.Polymarket.FilteredPageSize
	} else {
		opts.PageSize = cfg.Polymarket.PageSize
	}

	trades, err := client.FetchAllTrades(ctx, conditionID, opts)
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	// The filterType=CASH parameter is applied server-side; the
	// threshold is enforced locally too so borderline records never
	// slip into the aggregation.
	trades = analysis.FilterMinCash(trades, minCash)
	logger.Info("fetched %d distinct trades for %s", len(trades), conditionID)
	return trades, nil
}
