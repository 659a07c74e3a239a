package analysis

import (
	"testing"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

func trade(side models.Side, size, price float64, ts int64) models.Trade {
	return models.Trade{
		TransactionHash: "0xhash",
		ProxyWallet:     "0xwallet",
		Side:            side,
		Outcome:         models.OutcomeYes,
		Size:            size,
		Price:           price,
		Timestamp:       ts,
	}
}

func TestPriceDistribution(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideBuy, 1, 0.02, 1),
		trade(models.SideBuy, 1, 0.04, 2),
		trade(models.SideBuy, 1, 0.07, 3),
		trade(models.SideBuy, 1, 0.97, 4),
		trade(models.SideBuy, 1, 1.00, 5), // clamps into the top bucket
	}

	buckets := PriceDistribution(trades)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3: %+v", len(buckets), buckets)
	}
	if buckets[0].Low != 0 || buckets[0].Count != 2 {
		t.Errorf("bucket[0] = %+v, want [0,0.05) count 2", buckets[0])
	}
	if buckets[0].TotalSize != 2 {
		t.Errorf("bucket[0].TotalSize = %v, want 2", buckets[0].TotalSize)
	}
	if got, want := buckets[0].TotalCash, 0.02+0.04; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("bucket[0].TotalCash = %v, want %v", got, want)
	}
	if buckets[1].Count != 1 {
		t.Errorf("bucket[1] = %+v, want count 1", buckets[1])
	}
	if buckets[2].Count != 2 {
		t.Errorf("top bucket = %+v, want count 2", buckets[2])
	}
}

func TestPriceDistributionEmpty(t *testing.T) {
	if buckets := PriceDistribution(nil); len(buckets) != 0 {
		t.Errorf("got %d buckets for empty input", len(buckets))
	}
}

func TestMidRange(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideBuy, 100, 0.10, 1),
		trade(models.SideBuy, 500, 0.05, 2),
		trade(models.SideSell, 900, 0.10, 3), // sells count too
		trade(models.SideBuy, 50, 0.30, 4),   // above the band
		trade(models.SideBuy, 200, 0.15, 5),  // inclusive upper bound
	}

	got := MidRange(trades, 0.04, 0.15)
	if len(got) != 4 {
		t.Fatalf("got %d trades, want 4", len(got))
	}
	if got[0].Size != 900 || got[1].Size != 500 || got[2].Size != 200 || got[3].Size != 100 {
		t.Errorf("sizes = [%v, %v, %v, %v], want descending [900, 500, 200, 100]",
			got[0].Size, got[1].Size, got[2].Size, got[3].Size)
	}
	if got[0].Side != models.SideSell {
		t.Errorf("largest trade side = %s, want SELL kept in the band", got[0].Side)
	}
}

func TestTopByValue(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideBuy, 10, 0.50, 1), // $5
		trade(models.SideBuy, 100, 0.20, 2), // $20
		trade(models.SideSell, 30, 0.30, 3), // $9
	}

	got := TopByValue(trades, 2)
	if len(got) != 2 {
		t.Fatalf("got %d trades, want 2", len(got))
	}
	if got[0].Size != 100 || got[1].Size != 30 {
		t.Errorf("top trades = [%v, %v], want sizes [100, 30]", got[0].Size, got[1].Size)
	}

	// input untouched
	if trades[0].Size != 10 {
		t.Error("TopByValue modified the input slice")
	}
}

func TestFilterMinCash(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideBuy, 10, 0.50, 1), // $5
		trade(models.SideBuy, 100, 0.20, 2), // $20
	}

	got := FilterMinCash(trades, 10)
	if len(got) != 1 || got[0].Size != 100 {
		t.Errorf("FilterMinCash = %+v, want single $20 trade", got)
	}
	if got := FilterMinCash(trades, 0); len(got) != 2 {
		t.Errorf("zero threshold should keep all trades, got %d", len(got))
	}
}

func TestDateRange(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideBuy, 1, 0.5, 300),
		trade(models.SideBuy, 1, 0.5, 100),
		trade(models.SideBuy, 1, 0.5, 200),
	}

	earliest, latest, ok := DateRange(trades)
	if !ok {
		t.Fatal("expected ok for non-empty input")
	}
	if earliest.Unix() != 100 || latest.Unix() != 300 {
		t.Errorf("range = [%d, %d], want [100, 300]", earliest.Unix(), latest.Unix())
	}

	if _, _, ok := DateRange(nil); ok {
		t.Error("expected ok=false for empty input")
	}
}
