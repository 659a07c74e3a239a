package leaderboard

import (
	"math"
	"testing"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

func trade(wallet string, side models.Side, outcome models.Outcome, size, price float64, ts int64) models.Trade {
	return models.Trade{
		TransactionHash: wallet + string(side) + string(outcome),
		ProxyWallet:     wallet,
		Side:            side,
		Outcome:         outcome,
		Size:            size,
		Price:           price,
		Timestamp:       ts,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildSingleWallet(t *testing.T) {
	trades := []models.Trade{
		trade("0xaaa", models.SideBuy, models.OutcomeYes, 10, 0.20, 100),
		trade("0xaaa", models.SideSell, models.OutcomeYes, 4, 0.30, 200),
		trade("0xaaa", models.SideBuy, models.OutcomeNo, 5, 0.10, 300),
	}

	entries := Build(trades, models.OutcomeYes)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if !approx(e.PnL, 4.7) {
		t.Errorf("PnL = %v, want 4.7", e.PnL)
	}
	if !approx(e.TotalSpent, 2.5) {
		t.Errorf("TotalSpent = %v, want 2.5", e.TotalSpent)
	}
	if !approx(e.TotalReceived, 1.2) {
		t.Errorf("TotalReceived = %v, want 1.2", e.TotalReceived)
	}
	if !approx(e.FinalShares, 6) {
		t.Errorf("FinalShares = %v, want 6", e.FinalShares)
	}
	if !approx(e.AvgEntryPrice, 2.5/15) {
		t.Errorf("AvgEntryPrice = %v, want %v", e.AvgEntryPrice, 2.5/15)
	}
	if !approx(e.ROI, 4.7/2.5*100) {
		t.Errorf("ROI = %v, want %v", e.ROI, 4.7/2.5*100)
	}
	if !approx(e.TotalVolume, 3.7) {
		t.Errorf("TotalVolume = %v, want 3.7", e.TotalVolume)
	}
	if e.NumTrades != 3 {
		t.Errorf("NumTrades = %d, want 3", e.NumTrades)
	}
	if e.FirstTradeAt != 100 {
		t.Errorf("FirstTradeAt = %d, want 100", e.FirstTradeAt)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	entries := Build(nil, models.OutcomeYes)
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
	s := Summarize(entries)
	if s.TotalUsers != 0 || s.NetPnL != 0 {
		t.Errorf("summary of empty ranking = %+v", s)
	}
}

func TestBuildSortsByPnLDescending(t *testing.T) {
	trades := []models.Trade{
		trade("0xloser", models.SideBuy, models.OutcomeNo, 10, 0.50, 100),
		trade("0xwinner", models.SideBuy, models.OutcomeYes, 10, 0.50, 200),
	}

	entries := Build(trades, models.OutcomeYes)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Wallet != "0xwinner" || entries[1].Wallet != "0xloser" {
		t.Errorf("order = [%s, %s], want winner first", entries[0].Wallet, entries[1].Wallet)
	}
}

func TestBuildStableTieOrder(t *testing.T) {
	// Three wallets with identical trades produce identical P&L; the
	// ranking must keep their first-trade encounter order.
	trades := []models.Trade{
		trade("0xccc", models.SideBuy, models.OutcomeYes, 5, 0.40, 100),
		trade("0xaaa", models.SideBuy, models.OutcomeYes, 5, 0.40, 200),
		trade("0xbbb", models.SideBuy, models.OutcomeYes, 5, 0.40, 300),
	}

	for i := 0; i < 20; i++ {
		entries := Build(trades, models.OutcomeYes)
		want := []string{"0xccc", "0xaaa", "0xbbb"}
		for j, w := range want {
			if entries[j].Wallet != w {
				t.Fatalf("run %d: entries[%d].Wallet = %s, want %s", i, j, entries[j].Wallet, w)
			}
		}
	}
}

func TestBuildNetShortWallet(t *testing.T) {
	// A wallet that only sells ends up net short the winning outcome.
	trades := []models.Trade{
		trade("0xshort", models.SideSell, models.OutcomeYes, 10, 0.60, 100),
	}

	entries := Build(trades, models.OutcomeYes)
	e := entries[0]
	if !approx(e.FinalShares, -10) {
		t.Errorf("FinalShares = %v, want -10", e.FinalShares)
	}
	if !approx(e.PnL, -4) {
		t.Errorf("PnL(Yes) = %v, want -4", e.PnL)
	}
	if e.ROI != 0 {
		t.Errorf("ROI = %v, want 0 with zero spend", e.ROI)
	}

	entries = Build(trades, models.OutcomeNo)
	if !approx(entries[0].PnL, 6) {
		t.Errorf("PnL(No) = %v, want 6", entries[0].PnL)
	}
}

func TestBuildOrderIndependentPerWallet(t *testing.T) {
	// The aggregation must produce the same totals no matter the order
	// a wallet's trades arrive in.
	forward := []models.Trade{
		{TransactionHash: "0x1", ProxyWallet: "0xw", Side: models.SideBuy, Outcome: models.OutcomeYes, Size: 10, Price: 0.20, Timestamp: 100},
		{TransactionHash: "0x2", ProxyWallet: "0xw", Side: models.SideSell, Outcome: models.OutcomeYes, Size: 4, Price: 0.30, Timestamp: 200},
		{TransactionHash: "0x3", ProxyWallet: "0xw", Side: models.SideBuy, Outcome: models.OutcomeNo, Size: 5, Price: 0.10, Timestamp: 300},
	}
	reversed := []models.Trade{forward[2], forward[0], forward[1]}

	a := Build(forward, models.OutcomeYes)
	b := Build(reversed, models.OutcomeYes)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("lengths = %d/%d, want 1/1", len(a), len(b))
	}

	if !approx(a[0].PnL, b[0].PnL) {
		t.Errorf("PnL differs by order: %v vs %v", a[0].PnL, b[0].PnL)
	}
	if !approx(a[0].TotalSpent, b[0].TotalSpent) {
		t.Errorf("TotalSpent differs by order: %v vs %v", a[0].TotalSpent, b[0].TotalSpent)
	}
	if !approx(a[0].TotalReceived, b[0].TotalReceived) {
		t.Errorf("TotalReceived differs by order: %v vs %v", a[0].TotalReceived, b[0].TotalReceived)
	}
	if !approx(a[0].FinalShares, b[0].FinalShares) {
		t.Errorf("FinalShares differs by order: %v vs %v", a[0].FinalShares, b[0].FinalShares)
	}
	if !approx(a[0].AvgEntryPrice, b[0].AvgEntryPrice) {
		t.Errorf("AvgEntryPrice differs by order: %v vs %v", a[0].AvgEntryPrice, b[0].AvgEntryPrice)
	}
}

func TestBuildIdempotent(t *testing.T) {
	trades := []models.Trade{
		trade("0xaaa", models.SideBuy, models.OutcomeYes, 10, 0.20, 100),
		trade("0xbbb", models.SideSell, models.OutcomeNo, 3, 0.70, 200),
	}

	first := Build(trades, models.OutcomeYes)
	second := Build(trades, models.OutcomeYes)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	entries := []Entry{
		{Wallet: "0xa", PnL: 10},
		{Wallet: "0xb", PnL: -4},
		{Wallet: "0xc", PnL: 0},
		{Wallet: "0xd", PnL: 2.5},
	}

	s := Summarize(entries)
	if s.TotalUsers != 4 {
		t.Errorf("TotalUsers = %d, want 4", s.TotalUsers)
	}
	if s.Winners != 2 || s.Losers != 1 {
		t.Errorf("Winners/Losers = %d/%d, want 2/1", s.Winners, s.Losers)
	}
	if !approx(s.WinnersPnL, 12.5) {
		t.Errorf("WinnersPnL = %v, want 12.5", s.WinnersPnL)
	}
	if !approx(s.LosersPnL, -4) {
		t.Errorf("LosersPnL = %v, want -4", s.LosersPnL)
	}
	if !approx(s.NetPnL, 8.5) {
		t.Errorf("NetPnL = %v, want 8.5", s.NetPnL)
	}
}

func TestTop(t *testing.T) {
	entries := []Entry{{Wallet: "0xa"}, {Wallet: "0xb"}, {Wallet: "0xc"}}
	if got := Top(entries, 2); len(got) != 2 {
		t.Errorf("Top(2) len = %d, want 2", len(got))
	}
	if got := Top(entries, 10); len(got) != 3 {
		t.Errorf("Top(10) len = %d, want 3", len(got))
	}
	if got := Top(entries, 0); len(got) != 3 {
		t.Errorf("Top(0) len = %d, want 3", len(got))
	}
}

func TestProfileURL(t *testing.T) {
	e := Entry{Wallet: "0xdeadbeef"}
	want := "https://polymarket.com/@0xdeadbeef?tab=activity"
	if got := e.ProfileURL(); got != want {
		t.Errorf("ProfileURL = %s, want %s", got, want)
	}
}
