package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/broadcast"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/cache"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/config"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/fetch"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/hub"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/odds"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/ufcweb"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/snapshot"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/basketball"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/fight"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/football"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/golf"
)

func main() {
	log.Println("Starting Live Sports API...")

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache: Redis primary with in-memory fail-open. A dead Redis costs
	// freshness, never availability.
	store := buildStore(ctx, cfg.Redis.URL)

	// Snapshot persistence (optional).
	var persister fetch.Persister
	if cfg.Snapshot.Enabled {
		snapStore, err := snapshot.Open(cfg.Snapshot.Path)
		if err != nil {
			log.Printf("⚠ Snapshot store unavailable, persistence disabled: %v", err)
		} else {
			defer snapStore.Close()
			persister = snapStore
			log.Printf("✓ Snapshot store open at %s", cfg.Snapshot.Path)
		}
	}

	// Upstream clients and per-sport normalizers.
	espnClient := espn.New()
	resolver := odds.New(time.Now().UnixNano())

	svc := fetch.NewService(
		store,
		fight.New(ufcweb.New(), espnClient),
		football.New(espnClient, resolver),
		basketball.New(espnClient, resolver),
		golf.New(espnClient),
		persister,
	)

	// Websocket hub and periodic feed.
	h := hub.New()
	go h.Run(ctx)
	go broadcast.New(svc, h).Run(ctx)

	handler := handlers.New(svc, h, ctx)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handler.HandleRoot)
	r.Get("/health", handler.HandleHealth)
	r.Get("/api/fight", handler.HandleFight)
	r.Get("/api/football", handler.HandleFootball)
	r.Get("/api/basketball", handler.HandleBasketball)
	r.Get("/api/golf", handler.HandleGolf)
	r.Get("/api/all", handler.HandleAll)
	r.Get("/ws", handler.HandleWebSocket)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("✓ Listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✓ Shutdown complete")
}

// buildStore connects to Redis and wraps it with an in-memory fallback.
// When Redis is unreachable at startup the service runs on the memory
// store alone.
func buildStore(ctx context.Context, redisURL string) cache.Store {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("⚠ Invalid Redis URL, using in-memory cache: %v", err)
		return cache.NewMemory()
	}

	client := redis.NewClient(opts)

	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("⚠ Redis unreachable, using in-memory cache: %v", err)
		client.Close()
		return cache.NewMemory()
	}

	log.Println("✓ Connected to Redis")
	return cache.NewFallback(cache.NewRedis(client))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
