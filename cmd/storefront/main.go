package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/boleteria/storefront/internal/api"
	"github.com/boleteria/storefront/internal/backend"
	"github.com/boleteria/storefront/internal/core/service"
	"github.com/boleteria/storefront/internal/infrastructure/config"
	redisdb "github.com/boleteria/storefront/internal/infrastructure/db/redis"
	"github.com/boleteria/storefront/pkg/logger"
)

func main() {
	// Missing .env is fine: configuration also comes straight from the
	// environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Backend adapters share one HTTP core.
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	authBackend := backend.NewAuthAdapter(client)
	catalogBackend := backend.NewCatalogAdapter(client, backend.EventDefaults{
		Price:    cfg.Catalog.DefaultPrice,
		Category: cfg.Catalog.DefaultCategory,
	})
	inventoryBackend := backend.NewInventoryAdapter(client)
	cartBackend := backend.NewCartAdapter(client)

	sessionRepo := redisdb.NewSessionRepository(rdb, cfg.Session.TTL)
	purchaseRepo := redisdb.NewPurchaseRepository(rdb)

	monitor := service.NewCartMonitor(cartBackend, cfg.Cart.TTL, cfg.Cart.RefreshInterval, log)
	defer monitor.StopAll()

	sessions := service.NewSessionService(authBackend, sessionRepo, monitor, log)
	catalog := service.NewCatalogService(catalogBackend, log)
	inventory := service.NewInventoryService(inventoryBackend, log)
	carts := service.NewCartService(cartBackend, catalogBackend, inventoryBackend, purchaseRepo, monitor, log)

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		SessionRepo: sessionRepo,
		Catalog:     catalog,
		Inventory:   inventory,
		Carts:       carts,
		Monitor:     monitor,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		SessionTTL:  cfg.Session.TTL,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("storefront listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
