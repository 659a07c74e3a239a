package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
	"github.com/shlomota/PolymarketAnalyzer/internal/report"
	"github.com/shlomota/PolymarketAnalyzer/internal/telegram"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Fetch a market's trades and rank every wallet by P&L",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "market",
				Aliases: []string{"m"},
				Usage:   "Market search query (the best match by volume is analyzed)",
			},
			&cli.StringFlag{
				Name:  "condition-id",
				Usage: "Condition ID, skips the market search",
			},
			&cli.StringFlag{
				Name:    "resolution",
				Aliases: []string{"r"},
				Usage:   "Assumed resolution (Yes or No); auto-detected for resolved markets",
			},
			&cli.FloatFlag{
				Name:  "min-cash",
				Usage: "Only fetch trades with at least this cash value in dollars",
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Rows to print (0 uses the configured default)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the full leaderboard as a JSON report with this file name (\"auto\" derives one)",
			},
			&cli.BoolFlag{
				Name:  "notify",
				Usage: "Send the top of the leaderboard to Telegram",
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conditionID, marketName, detected, err := resolveMarket(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	resolvesTo, err := pickResolution(cmd.String("resolution"), detected, cfg.Analysis.Resolution)
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

	entries := leaderboard.Build(trades, resolvesTo)
	summary := leaderboard.Summarize(entries)

	topN := int(cmd.Int("top"))
	if topN <= 0 {
		topN = cfg.Analysis.TopN
	}

	printHeader(marketName, conditionID, resolvesTo)
	if earliest, latest, ok := analysis.DateRange(trades); ok {
		printDateRange(earliest, latest, len(trades))
	}
	printLeaderboard(leaderboard.Top(entries, topN))
	printSummary(summary)

	if out := cmd.String("output"); out != "" {
		if out == "auto" {
			out = ""
		}
		writer := report.NewWriter(cfg.Report.OutputDir,
			os.FileMode(cfg.Report.FilePermissions), os.FileMode(cfg.Report.DirPermissions))
		r := report.New(marketName, conditionID, resolvesTo, len(trades), entries)
		path, err := writer.Write(r, out)
		if err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", path)
	}

	if cmd.Bool("notify") {
		if !cfg.Telegram.Enabled {
			return fmt.Errorf("--notify requires telegram.enabled in the config")
		}
		tc, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelay)
		if err != nil {
			return err
		}
		if err := tc.SendLeaderboard(marketName, string(resolvesTo), entries, cfg.Telegram.TopN); err != nil {
			return err
		}
		logger.Info("leaderboard sent to Telegram chat %s", cfg.Telegram.ChatID)
	}

	return nil
}

// pickResolution applies the precedence: explicit flag, auto-detected
// outcome, configured default.
func pickResolution(flag string, detected *models.Outcome, fallback string) (models.Outcome, error) {
	if flag != "" {
		return models.ParseOutcome(flag)
	}
	if detected != nil {
		logger.Info("market already resolved to %s", *detected)
		return *detected, nil
	}
	return models.ParseOutcome(fallback)
}
