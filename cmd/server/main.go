package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/youruser/outfitapp/internal/api"
	"github.com/youruser/outfitapp/internal/config"
	imagepkg "github.com/youruser/outfitapp/internal/image"
	"github.com/youruser/outfitapp/internal/logging"
	"github.com/youruser/outfitapp/internal/outfit"
	"github.com/youruser/outfitapp/internal/player"
	"github.com/youruser/outfitapp/internal/util"
	"github.com/youruser/outfitapp/internal/workerpool"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	pool := workerpool.New(cfg.Pool.Workers, cfg.Pool.QueueSize, logger)

	client := util.NewClient(cfg.Upstream.Timeout)
	players := player.NewClient(client, cfg.Upstream.PlayerInfoURL, logger)
	renderer := outfit.NewRenderer(imagepkg.NewFetcher(client, logger), pool, cfg.Upstream, logger)
	handler := api.NewHandler(cfg, players, renderer, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewEngine(cfg.Server.Mode, handler, logger),
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	pool.Shutdown()
	logger.Info("Server stopped")
}
