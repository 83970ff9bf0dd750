package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Kosench/shortlink/internal/cache"
	"github.com/gin-gonic/gin"
)

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":  "rate_limit_exceeded",
		"detail": "Too many requests. Please try again later.",
	})
}

// RedisRateLimit - rate limiter с использованием Redis
func RedisRateLimit(counter cache.RateCounter, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := counter.IncrementRateLimit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			log.Printf("Rate limit error: %v", err)
			// При ошибке Redis пропускаем запрос
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

// memoryLimiter - скользящее окно запросов по IP в памяти процесса
type memoryLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	lastSweep   time.Time
	maxRequests int
	window      time.Duration
}

func newMemoryLimiter(maxRequests int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		requests:    make(map[string][]time.Time),
		lastSweep:   time.Now(),
		maxRequests: maxRequests,
		window:      window,
	}
}

func (l *memoryLimiter) allow(clientIP string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Раз в окно удаляем клиентов без свежих запросов
	if now.Sub(l.lastSweep) >= l.window {
		for ip, times := range l.requests {
			if len(times) == 0 || now.Sub(times[len(times)-1]) >= l.window {
				delete(l.requests, ip)
			}
		}
		l.lastSweep = now
	}

	// Очищаем старые записи
	valid := l.requests[clientIP][:0]
	for _, t := range l.requests[clientIP] {
		if now.Sub(t) < l.window {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.maxRequests {
		l.requests[clientIP] = valid
		return false
	}

	l.requests[clientIP] = append(valid, now)
	return true
}

// InMemoryRateLimit - fallback rate limiter без Redis
func InMemoryRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newMemoryLimiter(maxRequests, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}
