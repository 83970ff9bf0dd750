package handler

import (
	"time"

	"github.com/Kosench/shortlink/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	Links          *LinkHandler
	Health         *HealthHandler
	AllowedOrigins []string
	// RateLimiter опционален, nil отключает ограничение
	RateLimiter gin.HandlerFunc
}

func NewRouter(opts RouterOptions) *gin.Engine {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter)
	}

	router.GET("/", opts.Links.Root)

	if opts.Health != nil {
		router.GET("/health", opts.Health.Health)
		router.GET("/info", opts.Health.Info)
	}

	router.POST("/url", opts.Links.CreateLink)
	router.GET("/qr/:key", opts.Links.QRCode)
	router.GET("/admin/:secret_key", opts.Links.AdminInfo)
	router.DELETE("/admin/:secret_key", opts.Links.DeleteLink)
	router.GET("/:key", opts.Links.Redirect)

	return router
}
