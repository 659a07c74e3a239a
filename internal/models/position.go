package models

// TraderPosition accumulates one wallet's trades into signed share
// counters and cash totals. It is rebuilt from the raw trade list on
// every run and never persisted.
//
// YesShares and NoShares may go negative: a wallet can sell more shares
// than the tracked buys cover (net short relative to the fetched
// window), and that is deliberately not forbidden here. TotalSpent and
// TotalReceived only ever grow.
type TraderPosition struct {
	Wallet        string
	DisplayName   string
	FirstTradeAt  int64
	YesShares     float64
	NoShares      float64
	TotalSpent    float64
	TotalReceived float64
	SharesBought  float64
	TradeCount    int
}

// NewTraderPosition seeds a position from the wallet's first trade seen,
// which supplies the display name and first-trade timestamp.
func NewTraderPosition(first Trade) *TraderPosition {
	return &TraderPosition{
		Wallet:       first.ProxyWallet,
		DisplayName:  first.DisplayName(),
		FirstTradeAt: first.Timestamp,
	}
}

// Apply folds a single trade into the position.
func (p *TraderPosition) Apply(t Trade) {
	cash := t.Size * t.Price
	switch t.Side {
	case SideBuy:
		p.TotalSpent += cash
		p.SharesBought += t.Size
		if t.Outcome == OutcomeYes {
			p.YesShares += t.Size
		} else {
			p.NoShares += t.Size
		}
	case SideSell:
		p.TotalReceived += cash
		if t.Outcome == OutcomeYes {
			p.YesShares -= t.Size
		} else {
			p.NoShares -= t.Size
		}
	}
	p.TradeCount++
}

// FinalShares selects the share counter for the winning outcome. The
// result is not floored at zero: a net-short position in the winning
// outcome produces a negative settlement contribution that exactly
// offsets the proceeds collected earlier.
func (p *TraderPosition) FinalShares(resolvesTo Outcome) float64 {
	if resolvesTo == OutcomeYes {
		return p.YesShares
	}
	return p.NoShares
}

// PnL computes profit and loss assuming the market resolves to the given
// outcome, with winning shares settling at $1 and losing shares at $0.
func (p *TraderPosition) PnL(resolvesTo Outcome) float64 {
	return p.FinalShares(resolvesTo) - p.TotalSpent + p.TotalReceived
}

// AvgEntryPrice is the volume-weighted average purchase price across all
// buys. It is 0 when the wallet never bought anything, not a division
// fault.
func (p *TraderPosition) AvgEntryPrice() float64 {
	if p.SharesBought <= 0 {
		return 0
	}
	return p.TotalSpent / p.SharesBought
}
