package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tunakleague/collabin-backend/config"
	"github.com/tunakleague/collabin-backend/internal/auth"
	authmw "github.com/tunakleague/collabin-backend/internal/auth/middleware"
	"github.com/tunakleague/collabin-backend/internal/bootstrap"
	"github.com/tunakleague/collabin-backend/internal/media"
	"github.com/tunakleague/collabin-backend/internal/observability"
	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
	"github.com/tunakleague/collabin-backend/internal/tags"
)

const serviceName = "collabin-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	stores := bootstrap.MemoryStores()
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()

		if err := bootstrap.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema: %v", err)
		}
		stores = bootstrap.PostgresStores(pool)
	} else {
		log.Println("Using in-memory store; data is lost on restart")
	}

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	client, err := auth.NewFirebaseAuth(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	var verifier authmw.TokenVerifier
	if client != nil {
		verifier = client
	}

	presigner, err := media.FromConfig(ctx, &cfg.Media)
	if err != nil {
		log.Fatalf("media: %v", err)
	}

	catalog := tags.NewCatalog(rdb, stores.Tags, cfg.Catalog.TTL)
	scheduler := tags.NewScheduler(catalog, cfg.Catalog.RefreshSpec)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("catalog scheduler: %v", err)
	}
	defer scheduler.Stop()

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		Stores:      stores,
		Redis:       rdb,
		Catalog:     catalog,
		Verifier:    verifier,
		Presigner:   presigner,
		Metrics:     observability.NewMetrics(),
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s (storage=%s auth=%s)", serviceName, cfg.Server.Port, cfg.Storage.Driver, cfg.Auth.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}
