package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camuig/lumen-watch/internal/ai"
	"github.com/camuig/lumen-watch/internal/alerts"
	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/horizon"
	"github.com/camuig/lumen-watch/internal/logger"
	"github.com/camuig/lumen-watch/internal/scheduler"
	"github.com/camuig/lumen-watch/internal/storage"
	"github.com/camuig/lumen-watch/internal/telegram"
	"github.com/camuig/lumen-watch/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/lumen-watch.db", "path to SQLite database")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)

	log.Info("starting lumen-watch", "horizon", cfg.Horizon.URL)

	// Init database
	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	// Context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init horizon client
	hc, err := horizon.NewClient(cfg.Horizon.URL, cfg.HorizonTimeout(), log)
	if err != nil {
		log.Error("horizon client init failed", "error", err)
		os.Exit(1)
	}

	root, err := hc.Root().Execute(ctx)
	if err != nil {
		log.Error("horizon unreachable", "error", err)
		os.Exit(1)
	}
	log.Info("horizon connected",
		"version", root.HorizonVersion, "latest_ledger", root.HistoryLatestLedger)

	pairs, err := cfg.Pairs()
	if err != nil {
		log.Error("parse pairs", "error", err)
		os.Exit(1)
	}

	// Init services
	analyst := ai.NewAnalyst(cfg, log)
	notifier := telegram.NewNotifier(cfg, log)
	dispatcher := alerts.NewDispatcher(repo, notifier, cfg, log)
	sched := scheduler.NewScheduler(hc, analyst, dispatcher, repo, notifier, cfg, log, pairs)
	webServer := web.NewServer(hc, repo, cfg, log, pairs)

	// Start scheduler in goroutine
	go sched.Run(ctx)

	// Start web server in goroutine
	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	notifier.NotifyStatus(fmt.Sprintf("🛰 lumen-watch started (%d pairs)", len(pairs)))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	// Graceful shutdown
	cancel() // stop scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.NotifyStatus("🛑 lumen-watch stopped")
	log.Info("lumen-watch stopped")
}
