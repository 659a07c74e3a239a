// Package server exposes the analyzer over HTTP: a small embedded
// dashboard page, market search, and on-demand leaderboard analysis.
// Handlers take their Polymarket access through narrow interfaces so
// tests can run against fakes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shlomota/PolymarketAnalyzer/internal/config"
	"github.com/shlomota/PolymarketAnalyzer/internal/gamma"
	"github.com/shlomota/PolymarketAnalyzer/internal/logger"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// TradeFetcher pulls the full deduplicated trade list for a market.
type TradeFetcher interface {
	FetchAll(ctx context.Context, conditionID string, minCash float64) ([]models.Trade, error)
}

// MarketSearcher finds markets matching a free-text query.
type MarketSearcher interface {
	SearchMarkets(ctx context.Context, query string, limit int) ([]gamma.Market, error)
}

// Server is the HTTP dashboard.
type Server struct {
	cfg      config.ServerConfig
	engine   *gin.Engine
	fetcher  TradeFetcher
	searcher MarketSearcher
}

// New builds the server and registers all routes.
func New(cfg config.ServerConfig, fetcher TradeFetcher, searcher MarketSearcher) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		fetcher:  fetcher,
		searcher: searcher,
	}

	engine.GET("/", s.handleIndex)
	engine.GET("/ping", s.handlePing)
	engine.GET("/api/search", s.handleSearch)
	engine.POST("/api/analyze", s.handleAnalyze)

	return s
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening on %s", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// requestLogger logs each request through the application logger
// instead of gin's default writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s status=%d duration=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
