package main

import (
	"fmt"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
	"github.com/shlomota/PolymarketAnalyzer/internal/subgraph"
)

func printHeader(marketName, conditionID string, resolvesTo models.Outcome) {
	fmt.Println()
	if marketName != "" {
		fmt.Printf("Market: %s\n", marketName)
	}
	fmt.Printf("Condition ID: %s\n", conditionID)
	fmt.Printf("Assumed resolution: %s\n", resolvesTo)
}

func printDateRange(earliest, latest time.Time, total int) {
	fmt.Printf("Trades: %d between %s and %s\n", total,
		earliest.Format("2006-01-02 15:04"), latest.Format("2006-01-02 15:04"))
}

func printLeaderboard(entries []leaderboard.Entry) {
	fmt.Println()
	fmt.Printf("%4s  %-24s %12s %12s %12s %8s %7s  %s\n",
		"#", "TRADER", "P&L", "SPENT", "RECEIVED", "ROI", "TRADES", "PROFILE")
	for i, e := range entries {
		name := e.Username
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("%4d  %-24s %12.2f %12.2f %12.2f %7.1f%% %7d  %s\n",
			i+1, name, e.PnL, e.TotalSpent, e.TotalReceived, e.ROI, e.NumTrades, e.ProfileURL())
	}
}

func printSummary(s leaderboard.Summary) {
	fmt.Println()
	fmt.Printf("Traders: %d (%d winners, %d losers)\n", s.TotalUsers, s.Winners, s.Losers)
	fmt.Printf("Winners P&L: $%.2f   Losers P&L: $%.2f   Net: $%.2f\n",
		s.WinnersPnL, s.LosersPnL, s.NetPnL)
}

func printDistribution(buckets []analysis.Bucket, total int) {
	fmt.Println("\nPrice distribution:")
	for _, b := range buckets {
		pct := 0.0
		if total > 0 {
			pct = float64(b.Count) / float64(total) * 100
		}
		barLen := int(pct / 2)
		bar := ""
		for i := 0; i < barLen; i++ {
			bar += "#"
		}
		fmt.Printf("  %.2f-%.2f %8d (%5.1f%%) %12.0f sh %12.2f $  %s\n",
			b.Low, b.High, b.Count, pct, b.TotalSize, b.TotalCash, bar)
	}
}

func printMidRange(trades []models.Trade, lo, hi float64, topN int) {
	fmt.Printf("\nLargest trades between $%.2f and $%.2f:\n", lo, hi)
	if len(trades) == 0 {
		fmt.Println("  none")
		return
	}
	if topN > 0 && topN < len(trades) {
		trades = trades[:topN]
	}
	fmt.Printf("  %-24s %5s %10s %8s %10s  %s\n", "TRADER", "SIDE", "SHARES", "PRICE", "VALUE", "DATE")
	for _, t := range trades {
		fmt.Printf("  %-24s %5s %10.1f %8.3f %10.2f  %s\n",
			t.DisplayName(), t.Side, t.Size, t.Price, t.CashValue(), t.Time().Format("2006-01-02"))
	}
}

func printTopTrades(trades []models.Trade) {
	fmt.Println("\nLargest trades by value:")
	fmt.Printf("  %-24s %5s %-4s %10s %8s %10s  %s\n",
		"TRADER", "SIDE", "OUT", "SHARES", "PRICE", "VALUE", "DATE")
	for _, t := range trades {
		fmt.Printf("  %-24s %5s %-4s %10.1f %8.3f %10.2f  %s\n",
			t.DisplayName(), t.Side, t.Outcome, t.Size, t.Price, t.CashValue(),
			t.Time().Format("2006-01-02"))
	}
}

func printMatchedEvents(events []subgraph.MatchedEvent, sample int) {
	if len(events) == 0 {
		return
	}
	if sample > 0 && sample < len(events) {
		events = events[:sample]
	}
	fmt.Printf("\n%-20s %10s %10s  %s\n", "TIME", "EST SIZE", "EST PRICE", "TX")
	for _, e := range events {
		tx := e.TransactionHash
		if len(tx) > 18 {
			tx = tx[:18] + "..."
		}
		fmt.Printf("%-20s %10.1f %10.3f  %s\n",
			e.Time().Format("2006-01-02 15:04:05"), e.EstimatedSize(), e.EstimatedPrice(), tx)
	}
}
