package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Проверяем, что RedisClient реализует интерфейс счетчиков
var _ RateCounter = (*RedisClient)(nil)

// RateCounter - счетчик запросов в окне фиксированной длины
type RateCounter interface {
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisClient хранит счетчики rate limiting в Redis, чтобы лимит был общим для всех инстансов
type RedisClient struct {
	client     *redis.Client
	keyBuilder *KeyBuilder
}

// RedisConfig - конфигурация для Redis
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	Namespace    string // опциональный namespace для ключей
}

// NewRedisClient создает новый Redis клиент
func NewRedisClient(cfg RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Проверяем подключение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, NewCacheError("connect", "", fmt.Errorf("failed to connect to Redis: %w", err))
	}

	return &RedisClient{
		client:     client,
		keyBuilder: NewKeyBuilder(cfg.Namespace),
	}, nil
}

// IncrementRateLimit увеличивает счетчик клиента и продлевает окно
func (r *RedisClient) IncrementRateLimit(ctx context.Context, clientID string, window time.Duration) (int64, error) {
	key := r.keyBuilder.RateLimit(clientID)
	if clientID == "" {
		return 0, NewCacheError("increment", key, ErrInvalidCacheKey)
	}

	// Используем pipeline для атомарности
	pipe := r.client.TxPipeline()

	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, NewCacheError("increment", key, err)
	}

	return incr.Val(), nil
}

// HealthCheck проверяет соединение с Redis
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return NewCacheError("ping", "", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisClient) Close() error {
	if err := r.client.Close(); err != nil {
		return NewCacheError("close", "", err)
	}
	return nil
}
