package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shlomota/PolymarketAnalyzer/internal/analysis"
	"github.com/shlomota/PolymarketAnalyzer/internal/gamma"
	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// sampleSize caps the trade and leaderboard slices returned to the
// dashboard; full results belong in JSON reports, not browser payloads.
const sampleSize = 50

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	markets, err := s.searcher.SearchMarkets(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	results := make([]searchResult, 0, len(markets))
	for _, m := range markets {
		r := searchResult{Market: m}
		if outcome, ok := gamma.DetectResolution(m); ok {
			r.ResolvesTo = string(outcome)
		}
		results = append(results, r)
	}
	c.JSON(http.StatusOK, gin.H{"markets": results})
}

// searchResult decorates a market with its detected resolution so the
// dashboard can preselect the outcome.
type searchResult struct {
	gamma.Market
	ResolvesTo string `json:"resolvesTo,omitempty"`
}

type analyzeRequest struct {
	ConditionID string  `json:"condition_id" binding:"required"`
	MarketName  string  `json:"market_name"`
	Resolution  string  `json:"resolution" binding:"required"`
	MinCash     float64 `json:"min_cash"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolvesTo, err := models.ParseOutcome(req.Resolution)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades, err := s.fetcher.FetchAll(c.Request.Context(), req.ConditionID, req.MinCash)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	entries := leaderboard.Build(trades, resolvesTo)
	bySpent := make([]leaderboard.Entry, len(entries))
	copy(bySpent, entries)
	sortBySpent(bySpent)

	resp := gin.H{
		"market_name":   req.MarketName,
		"condition_id":  req.ConditionID,
		"resolves_to":   resolvesTo,
		"total_trades":  len(trades),
		"summary":       leaderboard.Summarize(entries),
		"by_gain":       leaderboard.Top(entries, sampleSize),
		"by_spent":      leaderboard.Top(bySpent, sampleSize),
		"sample_trades": analysis.TopByValue(trades, sampleSize),
	}
	if earliest, latest, ok := analysis.DateRange(trades); ok {
		resp["earliest_trade"] = earliest.Unix()
		resp["latest_trade"] = latest.Unix()
	}
	c.JSON(http.StatusOK, resp)
}
