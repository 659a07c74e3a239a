package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
	"github.com/shlomota/PolymarketAnalyzer/internal/config"
	"github.com/shlomota/PolymarketAnalyzer/internal/dataapi"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
	"github.com/shlomota/PolymarketAnalyzer/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Listen address (overrides server.listen_addr)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr := cmd.String("listen"); addr != "" {
		cfg.Server.ListenAddr = addr
	}

	dataClient, err := newDataClient(cfg)
	if err != nil {
		return err
	}
	gammaClient, err := newGammaClient(cfg)
	if err != nil {
		return err
	}

	fetcher := &tradeFetcher{client: dataClient, polymarket: cfg.Polymarket}
	srv := server.New(cfg.Server, fetcher, gammaClient)
	return srv.Run(ctx)
}

// tradeFetcher adapts the data API client to the server's fetch
// interface, carrying the configured pagination settings.
type tradeFetcher struct {
	client     *dataapi.Client
	polymarket config.PolymarketConfig
}

func (f *tradeFetcher) FetchAll(ctx context.Context, conditionID string, minCash float64) ([]models.Trade, error) {
	opts := dataapi.FetchAllOptions{
		MaxOffset: f.polymarket.MaxOffset,
		MinCash:   minCash,
		PageDelay: f.polymarket.PageDelay,
	}
	if minCash > 0 {
		opts.PageSize = f.polymarket.FilteredPageSize
	} else {
		opts.PageSize = f.polymarket.PageSize
	}
	trades, err := f.client.FetchAllTrades(ctx, conditionID, opts)
	if err != nil {
		return nil, err
	}
	return analysis.FilterMinCash(trades, minCash), nil
}
