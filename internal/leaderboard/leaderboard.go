// Package leaderboard folds a flat trade list into a per-wallet P&L
// ranking under an assumed market resolution. The whole computation is
// a pure in-memory pass; nothing here talks to the network.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// Entry is one wallet's row in the ranking. Field names match the JSON
// report schema.
type Entry struct {
	Wallet        string  `json:"wallet"`
	Username      string  `json:"username"`
	PnL           float64 `json:"pnl"`
	TotalSpent    float64 `json:"total_spent"`
	TotalReceived float64 `json:"total_received"`
	FinalShares   float64 `json:"final_shares"`
	YesShares     float64 `json:"yes_shares"`
	NoShares      float64 `json:"no_shares"`
	AvgEntryPrice float64 `json:"avg_entry_price"`
	ROI           float64 `json:"roi"`
	TotalVolume   float64 `json:"total_volume"`
	NumTrades     int     `json:"num_trades"`
	FirstTradeAt  int64   `json:"first_trade_at"`
}

// ProfileURL is the wallet's public Polymarket profile, opened on the
// activity tab.
func (e *Entry) ProfileURL() string {
	return fmt.Sprintf("https://polymarket.com/@%s?tab=activity", e.Wallet)
}

// FirstTradeTime converts the first-trade timestamp to a time.Time.
func (e *Entry) FirstTradeTime() time.Time {
	return time.Unix(e.FirstTradeAt, 0)
}

// Build aggregates trades into ranked entries assuming the market
// resolves to the given outcome. Entries are sorted by P&L descending;
// wallets with equal P&L keep the order their first trades appeared in
// the input.
func Build(trades []models.Trade, resolvesTo models.Outcome) []Entry {
	positions := make(map[string]*models.TraderPosition)
	var order []string

	for _, t := range trades {
		pos, ok := positions[t.ProxyWallet]
		if !ok {
			pos = models.NewTraderPosition(t)
			positions[t.ProxyWallet] = pos
			order = append(order, t.ProxyWallet)
		}
		pos.Apply(t)
	}

	entries := make([]Entry, 0, len(order))
	for _, wallet := range order {
		pos := positions[wallet]
		pnl := pos.PnL(resolvesTo)

		roi := 0.0
		if pos.TotalSpent > 0 {
			roi = pnl / pos.TotalSpent * 100
		}

		entries = append(entries, Entry{
			Wallet:        pos.Wallet,
			Username:      pos.DisplayName,
			PnL:           pnl,
			TotalSpent:    pos.TotalSpent,
			TotalReceived: pos.TotalReceived,
			FinalShares:   pos.FinalShares(resolvesTo),
			YesShares:     pos.YesShares,
			NoShares:      pos.NoShares,
			AvgEntryPrice: pos.AvgEntryPrice(),
			ROI:           roi,
			TotalVolume:   pos.TotalSpent + pos.TotalReceived,
			NumTrades:     pos.TradeCount,
			FirstTradeAt:  pos.FirstTradeAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PnL > entries[j].PnL
	})
	return entries
}

// Summary totals a ranking's wins and losses.
type Summary struct {
	TotalUsers int     `json:"total_users"`
	Winners    int     `json:"winners"`
	Losers     int     `json:"losers"`
	WinnersPnL float64 `json:"winners_pnl"`
	LosersPnL  float64 `json:"losers_pnl"`
	NetPnL     float64 `json:"net_pnl"`
}

// Summarize counts winners (P&L > 0) and losers (P&L < 0) and their
// aggregate P&L. Break-even wallets count toward TotalUsers only.
func Summarize(entries []Entry) Summary {
	s := Summary{TotalUsers: len(entries)}
	for _, e := range entries {
		switch {
		case e.PnL > 0:
			s.Winners++
			s.WinnersPnL += e.PnL
		case e.PnL < 0:
			s.Losers++
			s.LosersPnL += e.PnL
		}
		s.NetPnL += e.PnL
	}
	return s
}

// Top returns the first n entries, or all of them when n is larger than
// the ranking.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
