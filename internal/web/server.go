package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/horizon"
	"github.com/camuig/lumen-watch/internal/logger"
	"github.com/camuig/lumen-watch/internal/metrics"
	"github.com/camuig/lumen-watch/internal/storage"
)

type Server struct {
	httpServer *http.Server
	horizon    *horizon.Client
	repo       *storage.Repository
	config     *config.Config
	logger     *logger.Logger
	pairs      []horizon.Pair

	// Order books are fetched live per page view; the TTL cache keeps the
	// dashboard from hammering Horizon.
	bookCache *expirable.LRU[string, *horizon.OrderBookSummary]
}

func NewServer(hc *horizon.Client, repo *storage.Repository, cfg *config.Config, log *logger.Logger, pairs []horizon.Pair) *Server {
	s := &Server{
		horizon:   hc,
		repo:      repo,
		config:    cfg,
		logger:    log,
		pairs:     pairs,
		bookCache: expirable.NewLRU[string, *horizon.OrderBookSummary](64, nil, cfg.OrderBookTTL()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.Handle("/metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) orderBook(ctx context.Context, pair horizon.Pair) (*horizon.OrderBookSummary, error) {
	key := pair.Canonical()
	if book, ok := s.bookCache.Get(key); ok {
		return book, nil
	}

	book, err := s.horizon.OrderBook().
		SellingAsset(pair.Base).
		BuyingAsset(pair.Counter).
		Limit(10).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	s.bookCache.Add(key, book)
	return book, nil
}
