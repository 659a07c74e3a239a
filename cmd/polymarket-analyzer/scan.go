package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
)

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan a market's trades for price patterns and large entries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "market",
				Aliases: []string{"m"},
				Usage:   "Market search query (the best match by volume is scanned)",
			},
			&cli.StringFlag{
				Name:  "condition-id",
				Usage: "Condition ID, skips the market search",
			},
			&cli.FloatFlag{
				Name:  "min-cash",
				Usage: "Only fetch trades with at least this cash value in dollars",
			},
			&cli.FloatFlag{
				Name:  "low",
				Usage: "Lower bound of the mid-range price band (0 uses the configured default)",
			},
			&cli.FloatFlag{
				Name:  "high",
				Usage: "Upper bound of the mid-range price band (0 uses the configured default)",
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Rows per section (0 uses the configured default)",
			},
		},
		Action: scanAction,
	}
}

func scanAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conditionID, marketName, _, err := resolveMarket(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	minCash := cmd.Float("min-cash")
	if minCash <= 0 {
		minCash = cfg.Analysis.MinCash
	}

	trades, err := fetchTrades(ctx, cfg, conditionID, minCash)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No trades found for this market.")
		return nil
	}

	lo := cmd.Float("low")
	if lo <= 0 {
		lo = cfg.Analysis.MidRangeLow
	}
	hi := cmd.Float("high")
	if hi <= 0 {
		hi = cfg.Analysis.MidRangeHigh
	}
	topN := int(cmd.Int("top"))
	if topN <= 0 {
		topN = cfg.Analysis.TopN
	}

	fmt.Printf("\nMarket: %s\nCondition ID: %s\n", marketName, conditionID)
	if earliest, latest, ok := analysis.DateRange(trades); ok {
		printDateRange(earliest, latest, len(trades))
	}

	printDistribution(analysis.PriceDistribution(trades), len(trades))

	midRange := analysis.MidRange(trades, lo, hi)
	printMidRange(midRange, lo, hi, topN)

	printTopTrades(analysis.TopByValue(trades, topN))

	return nil
}
