package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	DSN      string `mapstructure:"dsn"`
}

type AppConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	KeyLength         int           `mapstructure:"key_length"`
	MaxRetries        int           `mapstructure:"max_retries"`
	QRSize            int           `mapstructure:"qr_size"`
	Environment       string        `mapstructure:"environment"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retry"`
	Namespace    string `mapstructure:"namespace"`
}

const defaultSQLitePath = "shortlink.db"

func Load() (*Config, error) {
	// .env не обязателен, переменные окружения могут прийти из docker/CI
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "urlshortener")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "urlshortener")
	v.SetDefault("database.dsn", "")

	// App defaults
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.key_length", 5)
	v.SetDefault("app.max_retries", 5)
	v.SetDefault("app.qr_size", 256)
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("app.rate_limit_requests", 100)
	v.SetDefault("app.rate_limit_window", time.Minute)

	// Redis defaults
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.max_retry", 3)
	v.SetDefault("redis.namespace", "shortlink")

	v.SetEnvPrefix("URLSHORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.App.BaseURL == "" {
		scheme := "http"
		if config.IsProduction() {
			scheme = "https"
		}
		config.App.BaseURL = fmt.Sprintf("%s://%s:%s", scheme, config.Server.Host, config.Server.Port)
	}
	config.App.BaseURL = strings.TrimRight(config.App.BaseURL, "/")

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "postgresql", "pgx", "sqlite":
	case "libsql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for libsql")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.App.RateLimitRequests <= 0 {
		return fmt.Errorf("app.rate_limit_requests must be positive, got %d", c.App.RateLimitRequests)
	}
	if c.App.RateLimitWindow <= 0 {
		return fmt.Errorf("app.rate_limit_window must be positive, got %s", c.App.RateLimitWindow)
	}
	return nil
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) GetBaseURL() string {
	return c.App.BaseURL
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.App.Environment) == "production"
}

func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.App.Environment) == "development"
}

func (c *Config) GetAllowedOrigins() []string {
	if len(c.App.AllowedOrigins) == 0 {
		if c.IsProduction() {
			// В продакшене требуем явного указания origins
			return []string{c.App.BaseURL}
		}
		return []string{"*"}
	}
	return c.App.AllowedOrigins
}

// DatabaseDSN возвращает строку подключения для выбранного драйвера.
// Явный database.dsn всегда имеет приоритет.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}

	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "postgresql", "pgx":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Database.User, c.Database.Password),
			Host:     fmt.Sprintf("%s:%s", c.Database.Host, c.Database.Port),
			Path:     "/" + c.Database.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return defaultSQLitePath
	}
}
