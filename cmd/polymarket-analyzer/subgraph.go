package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
	"github.com/shlomota/PolymarketAnalyzer/internal/report"
	"github.com/shlomota/PolymarketAnalyzer/internal/subgraph"
)

func subgraphCommand() *cli.Command {
	return &cli.Command{
		Name:  "subgraph",
		Usage: "Fetch raw matched-order events from the orderbook subgraph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "condition-id",
				Usage:    "Condition ID of the market",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write the raw events to this JSON file in the report directory",
			},
			&cli.IntFlag{
				Name:    "sample",
				Aliases: []string{"n"},
				Usage:   "Sample rows to print",
				Value:   10,
			},
		},
		Action: subgraphAction,
	}
}

func subgraphAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client := newSubgraphClient(cfg)
	conditionID := cmd.String("condition-id")

	events, err := client.FetchAllMatchedEvents(ctx, conditionID, func(batch, total int) {
		logger.Debug("subgraph batch of %d events, %d total", batch, total)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %d matched-order events for %s\n", len(events), conditionID)
	printMatchedEvents(events, int(cmd.Int("sample")))

	lo, hi := cfg.Analysis.MidRangeLow, cfg.Analysis.MidRangeHigh
	var midRange []subgraph.MatchedEvent
	for _, e := range events {
		if p := e.EstimatedPrice(); p >= lo && p <= hi {
			midRange = append(midRange, e)
		}
	}
	if len(midRange) > 0 {
		fmt.Printf("\n%d events with estimated price between %.2f and %.2f:\n", len(midRange), lo, hi)
		printMatchedEvents(midRange, int(cmd.Int("sample")))
	}

	if out := cmd.String("out"); out != "" {
		writer := report.NewWriter(cfg.Report.OutputDir,
			os.FileMode(cfg.Report.FilePermissions), os.FileMode(cfg.Report.DirPermissions))
		path, err := writer.WriteRaw(out, events)
		if err != nil {
			return err
		}
		fmt.Printf("Events written to %s\n", path)
	}
	return nil
}

func introspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "introspect",
		Usage: "Explore the subgraph schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Show the fields of this type instead of the root query fields",
			},
		},
		Action: introspectAction,
	}
}

func introspectAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client := newSubgraphClient(cfg)

	if typeName := cmd.String("type"); typeName != "" {
		fields, err := client.IntrospectType(ctx, typeName)
		if err != nil {
			return err
		}
		if fields == nil {
			return fmt.Errorf("type %q not found in schema", typeName)
		}
		fmt.Printf("Fields of %s:\n", typeName)
		for _, f := range fields {
			fmt.Printf("  %-28s %s (%s)\n", f.Name, f.Type.Name, f.Type.Kind)
		}
		return nil
	}

	fields, err := client.IntrospectSchema(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Root query fields:")
	for _, f := range fields {
		if f.Description != "" {
			fmt.Printf("  %-36s %s\n", f.Name, f.Description)
		} else {
			fmt.Printf("  %s\n", f.Name)
		}
	}
	return nil
}
