// Command polymarket-analyzer fetches trade histories for Polymarket
// markets and ranks every participating wallet by profit and loss under
// an assumed resolution. It also ships scan commands for trade-pattern
// analysis, raw subgraph access, and an HTTP dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "polymarket-analyzer",
		Usage: "P&L leaderboards and trade analysis for Polymarket markets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (defaults apply without one)",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			scanCommand(),
			subgraphCommand(),
			introspectCommand(),
			probeCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}
