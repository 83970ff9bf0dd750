package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/Kosench/shortlink/internal/database"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Pinger - зависимость, о состоянии которой сообщает /health
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	db    *database.DB
	cache Pinger
}

// NewHealthHandler принимает nil cache, если Redis отключен
func NewHealthHandler(db *database.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	services := gin.H{}

	// Проверяем БД
	if err := database.HealthCheck(h.db); err != nil {
		services["database"] = "unhealthy"
		status = "degraded"
	} else {
		services["database"] = "healthy"
	}

	// Проверяем Redis
	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			services["cache"] = "unhealthy"
			status = "degraded"
		} else {
			services["cache"] = "healthy"
		}
	} else {
		services["cache"] = "disabled"
	}

	statusCode := http.StatusOK
	if status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":   status,
		"services": services,
	})
}

func (h *HealthHandler) Info(c *gin.Context) {
	version, err := database.GetVersion(h.db)
	if err != nil {
		log.Printf("Failed to get database version: %v", err)
		version = "unknown"
	}
	info := gin.H{
		"service":          "URL Shortener",
		"version":          Version,
		"database_driver":  h.db.Dialect.DriverName(),
		"database_version": version,
		"cache_enabled":    h.cache != nil,
	}

	if h.cache != nil {
		info["cache_driver"] = "redis"
	}

	c.JSON(http.StatusOK, info)
}
