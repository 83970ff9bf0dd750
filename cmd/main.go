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

	"github.com/Kosench/shortlink/internal/cache"
	"github.com/Kosench/shortlink/internal/config"
	"github.com/Kosench/shortlink/internal/database"
	"github.com/Kosench/shortlink/internal/handler"
	"github.com/Kosench/shortlink/internal/keygen"
	"github.com/Kosench/shortlink/internal/middleware"
	"github.com/Kosench/shortlink/internal/repository"
	"github.com/Kosench/shortlink/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	dialect, err := database.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Invalid database driver: ", err)
	}

	db, err := database.Connect(dialect, cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("Failed to connect database: ", err)
	}
	defer db.Close()

	log.Printf("Successfully connected to database (%s)", dialect)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Redis нужен только для общих счетчиков rate limiting
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			Namespace:    cfg.Redis.Namespace,
		})
		if err != nil {
			log.Printf("⚠️  Failed to connect to Redis (using in-memory rate limit): %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Successfully connected to Redis")
		}
	}

	keys := keygen.NewGenerator(cfg.App.KeyLength, cfg.App.MaxRetries)
	store := repository.NewSQLLinkStore(db, keys)
	linkService := service.NewLinkService(store, cfg.GetBaseURL(), cfg.App.QRSize)

	var (
		pinger      handler.Pinger
		rateLimiter gin.HandlerFunc
	)
	if redisClient != nil {
		pinger = redisClient
		rateLimiter = middleware.RedisRateLimit(redisClient, cfg.App.RateLimitRequests, cfg.App.RateLimitWindow)
	} else {
		rateLimiter = middleware.InMemoryRateLimit(cfg.App.RateLimitRequests, cfg.App.RateLimitWindow)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterOptions{
		Links:          handler.NewLinkHandler(linkService),
		Health:         handler.NewHealthHandler(db, pinger),
		AllowedOrigins: cfg.GetAllowedOrigins(),
		RateLimiter:    rateLimiter,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Запускаем сервер
	go func() {
		log.Printf("🚀 Server starting on %s", cfg.GetServerAddress())
		log.Printf("📝 API endpoints: POST /url, GET|DELETE /admin/{secret_key}")
		log.Printf("🔗 Redirect endpoint: GET /{key}, QR: GET /qr/{key}")
		log.Printf("🌐 Base URL: %s", cfg.GetBaseURL())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("✅ Server gracefully stopped")
}
