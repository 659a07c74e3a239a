package server

import (
	"sort"

	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
)

// sortBySpent reorders entries by total spend descending, keeping the
// P&L order for ties.
func sortBySpent(entries []leaderboard.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalSpent > entries[j].TotalSpent
	})
}
