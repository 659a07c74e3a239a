// Package models defines the core domain entities for the Polymarket analyzer.
// These models represent individual trades pulled from the data API, the
// per-trader positions derived from them, and supporting enums.
//
// Terminology (matching Polymarket's own naming):
//   - Condition ID: the on-chain identifier selecting a binary market.
//   - Outcome: one of the two sides (Yes/No) a share can represent.
//   - Proxy wallet: the address trades are attributed to.
package models

import (
	"errors"
	"strings"
	"time"
)

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Outcome is one of the two sides of a binary market.
type Outcome string

const (
	OutcomeYes Outcome = "Yes"
	OutcomeNo  Outcome = "No"
)

// ParseOutcome normalizes a user-supplied outcome string.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return OutcomeYes, nil
	case "no":
		return OutcomeNo, nil
	default:
		return "", errors.New("outcome must be Yes or No")
	}
}

// Trade represents a single matched trade as returned by the Polymarket
// data API. Trades are immutable once fetched; transactionHash is the
// uniqueness key used for deduplication across pages.
type Trade struct {
	TransactionHash string  `json:"transactionHash"`
	ProxyWallet     string  `json:"proxyWallet"`
	Side            Side    `json:"side"`
	Outcome         Outcome `json:"outcome"`
	Size            float64 `json:"size"`
	Price           float64 `json:"price"`
	Timestamp       int64   `json:"timestamp"`
	Name            string  `json:"name,omitempty"`
	Pseudonym       string  `json:"pseudonym,omitempty"`
	ConditionID     string  `json:"conditionId,omitempty"`
	Title           string  `json:"title,omitempty"`
	Slug            string  `json:"slug,omitempty"`
}

// CashValue is the dollar value of the trade (size × price).
func (t *Trade) CashValue() float64 {
	return t.Size * t.Price
}

// Time converts the unix-seconds timestamp to a time.Time.
func (t *Trade) Time() time.Time {
	return time.Unix(t.Timestamp, 0)
}

// DisplayName returns a human-readable trader name with the fallback
// precedence: name, else pseudonym, else the truncated wallet address.
func (t *Trade) DisplayName() string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	if pseudonym := strings.TrimSpace(t.Pseudonym); pseudonym != "" {
		return pseudonym
	}
	return TruncateWallet(t.ProxyWallet)
}

// TruncateWallet shortens a wallet address for display.
func TruncateWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:10]
}

// Validate checks that all trade fields are valid.
func (t *Trade) Validate() error {
	if t.TransactionHash == "" {
		return errors.New("transaction hash must not be empty")
	}
	if t.ProxyWallet == "" {
		return errors.New("proxy wallet must not be empty")
	}
	if t.Side != SideBuy && t.Side != SideSell {
		return errors.New("side must be BUY or SELL")
	}
	if t.Outcome != OutcomeYes && t.Outcome != OutcomeNo {
		return errors.New("outcome must be Yes or No")
	}
	if t.Size < 0 {
		return errors.New("size must not be negative")
	}
	if t.Price < 0.0 || t.Price > 1.0 {
		return errors.New("price must be between 0.0 and 1.0")
	}
	if t.Timestamp <= 0 {
		return errors.New("timestamp must be positive")
	}
	return nil
}
