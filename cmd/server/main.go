package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"grammarguide/internal/config"
	"grammarguide/internal/db"
	"grammarguide/internal/handler"
	transport "grammarguide/internal/http"
	"grammarguide/internal/logger"
	"grammarguide/internal/repository"
	"grammarguide/internal/scheduler"
	"grammarguide/internal/service"
	"grammarguide/internal/snowflake"
)

// @title Grammar Guide API
// @version 1.0
// @description Reference entries for English grammar topics.
// @BasePath /
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := run(cfg); err != nil {
		logger.Error("server exited", "module", "main", "action", "run", "resource", "server", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return err
	}

	dbConn, err := db.Open(ctx, db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return err
	}
	defer dbConn.Close()
	logger.Info("store ready", "module", "main", "action", "open", "resource", "store", "result", "ok", "driver", cfg.DBDriver)

	entryRepo := repository.NewEntryRepository(dbConn)

	grammarService, err := service.NewGrammarService(entryRepo)
	if err != nil {
		return err
	}
	grammarHandler := handler.NewGrammarHandler(grammarService)

	if cfg.ProbeInterval > 0 {
		probe := scheduler.New(grammarService, cfg.ProbeInterval)
		probe.Start()
		defer probe.Stop()
		grammarHandler.WithProbe(probe)
	}

	router := transport.NewRouter(grammarHandler, transport.RouterConfig{
		StaticDir:      cfg.StaticDir,
		CORSOrigins:    cfg.CORSOrigins,
		WritePerSecond: cfg.WriteRate,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "module", "main", "action", "start", "resource", "server", "result", "ok", "addr", cfg.Addr)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "server", "result", "ok")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
