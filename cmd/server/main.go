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

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BhautikKhunt0/resin-store/internal/auth"
	"github.com/BhautikKhunt0/resin-store/internal/cache"
	"github.com/BhautikKhunt0/resin-store/internal/config"
	h "github.com/BhautikKhunt0/resin-store/internal/http"
	"github.com/BhautikKhunt0/resin-store/internal/repository"
	"github.com/BhautikKhunt0/resin-store/internal/service"
)

type indexer interface {
	CreateIndexes(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.Printf("failed to disconnect from MongoDB: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cartRepo := repository.NewMongoCartRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	catalogRepo := repository.NewMongoCatalogRepository(db)
	settingsRepo := repository.NewMongoSettingsRepository(db)

	for _, repo := range []interface{}{cartRepo, orderRepo, catalogRepo, settingsRepo} {
		if idx, ok := repo.(indexer); ok {
			if err := idx.CreateIndexes(ctx); err != nil {
				log.Fatalf("Failed to create indexes: %v", err)
			}
		}
	}

	cartCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(cartRepo, catalogRepo, cartCache)
	checkoutService := service.NewCheckoutService(cartService, orderRepo, settingsRepo)

	authManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	router := h.NewRouter(h.RouterDeps{
		Auth:     h.NewAuthHandler(authManager, cfg.AdminEmail, cfg.AdminPassHash),
		Cart:     h.NewCartHandler(cartService, cfg.RequestTimeout),
		Catalog:  h.NewCatalogHandler(catalogRepo, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(orderRepo, cfg.RequestTimeout),
		Settings: h.NewSettingsHandler(settingsRepo, cfg.RequestTimeout),

		AuthManager:    authManager,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "resin-store"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Store server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
