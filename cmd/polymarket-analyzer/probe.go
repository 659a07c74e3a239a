package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/shlomota/PolymarketAnalyzer/internal/dataapi"
)

// probePageSize keeps probe requests tiny; five records are enough to
// tell two offsets apart.
const probePageSize = 5

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Probe the data API for a hard pagination ceiling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "condition-id",
				Usage:    "Condition ID of the market",
				Required: true,
			},
			&cli.IntSliceFlag{
				Name:  "offsets",
				Usage: "Offsets to sample",
				Value: []int64{990, 1000, 1001, 1010, 1500, 2000, 5000, 9995, 10000},
			},
		},
		Action: probeAction,
	}
}

// probeAction fetches a small page at each offset and compares
// consecutive pages by transaction hash. Identical pages at increasing
// offsets mean the API stopped advancing, which is how the documented
// ceiling was found.
func probeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newDataClient(cfg)
	if err != nil {
		return err
	}

	conditionID := cmd.String("condition-id")
	offsets := cmd.IntSlice("offsets")
	if len(offsets) < 2 {
		return fmt.Errorf("at least two offsets are required")
	}

	pages := make(map[int64][]string)
	for _, offset := range offsets {
		trades, err := client.FetchTrades(ctx, dataapi.TradesParams{
			Market: conditionID,
			Limit:  probePageSize,
			Offset: int(offset),
		})
		if err != nil {
			return err
		}
		hashes := make([]string, 0, len(trades))
		for _, t := range trades {
			hashes = append(hashes, t.TransactionHash)
		}
		pages[offset] = hashes
		fmt.Printf("offset=%-6d %d trades\n", offset, len(trades))
	}

	fmt.Println("\nConsecutive page comparison:")
	var ceilingAt int64 = -1
	for i := 0; i < len(offsets)-1; i++ {
		a, b := offsets[i], offsets[i+1]
		overlap := countOverlap(pages[a], pages[b])
		switch {
		case overlap == len(pages[a]) && overlap > 0 && len(pages[a]) == len(pages[b]):
			fmt.Printf("  offset=%d and offset=%d return IDENTICAL trades\n", a, b)
			if ceilingAt < 0 {
				ceilingAt = a
			}
		case overlap > 0:
			fmt.Printf("  offset=%d and offset=%d share %d of %d trades\n", a, b, overlap, len(pages[a]))
		default:
			fmt.Printf("  offset=%d and offset=%d return distinct trades\n", a, b)
		}
	}

	fmt.Println()
	if ceilingAt >= 0 {
		fmt.Printf("Pagination stops advancing near offset=%d; records beyond it repeat.\n", ceilingAt)
	} else {
		fmt.Println("No pagination ceiling detected in the sampled offsets.")
	}
	return nil
}

func countOverlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, h := range a {
		set[h] = struct{}{}
	}
	n := 0
	for _, h := range b {
		if _, ok := set[h]; ok {
			n++
		}
	}
	return n
}
