// Package analysis provides read-only scans over a fetched trade list:
// price distribution buckets, mid-range entry detection, and largest
// trades by cash value.
package analysis

import (
	"sort"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// Bucket is one 5-cent price band with its trade count and totals.
type Bucket struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Count     int     `json:"count"`
	TotalSize float64 `json:"total_size"`
	TotalCash float64 `json:"total_cash"`
}

// PriceDistribution folds trades into 5-cent price buckets, returned
// in ascending price order. Empty buckets are omitted.
func PriceDistribution(trades []models.Trade) []Bucket {
	byIdx := make(map[int]*Bucket)
	for _, t := range trades {
		idx := int(t.Price * 20)
		if idx > 19 {
			idx = 19
		}
		if idx < 0 {
			idx = 0
		}
		b, ok := byIdx[idx]
		if !ok {
			b = &Bucket{
				Low:  float64(idx) * 0.05,
				High: float64(idx+1) * 0.05,
			}
			byIdx[idx] = b
		}
		b.Count++
		b.TotalSize += t.Size
		b.TotalCash += t.CashValue()
	}

	buckets := make([]Bucket, 0, len(byIdx))
	for _, b := range byIdx {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Low < buckets[j].Low })
	return buckets
}

// MidRange returns trades priced inside [lo, hi], largest size first.
// These are positions taken while the market was still uncertain but
// cheap, the band where early conviction shows. Both sides count: a
// large sell at a low price is as informative as a large buy.
func MidRange(trades []models.Trade, lo, hi float64) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if t.Price >= lo && t.Price <= hi {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}

// TopByValue returns the n trades with the largest cash value
// (size × price), largest first. The input slice is not modified.
func TopByValue(trades []models.Trade, n int) []models.Trade {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CashValue() > sorted[j].CashValue()
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterMinCash drops trades below the given cash value threshold.
func FilterMinCash(trades []models.Trade, minCash float64) []models.Trade {
	if minCash <= 0 {
		return trades
	}
	var out []models.Trade
	for _, t := range trades {
		if t.CashValue() >= minCash {
			out = append(out, t)
		}
	}
	return out
}

// DateRange reports the earliest and latest trade timestamps. ok is
// false when the list is empty.
func DateRange(trades []models.Trade) (earliest, latest time.Time, ok bool) {
	if len(trades) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minTS, maxTS := trades[0].Timestamp, trades[0].Timestamp
	for _, t := range trades[1:] {
		if t.Timestamp < minTS {
			minTS = t.Timestamp
		}
		if t.Timestamp > maxTS {
			maxTS = t.Timestamp
		}
	}
	return time.Unix(minTS, 0), time.Unix(maxTS, 0), true
}
