package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GetServerAddress() != "localhost:8080" {
		t.Errorf("GetServerAddress() = %s", cfg.GetServerAddress())
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.DatabaseDSN() != defaultSQLitePath {
		t.Errorf("DatabaseDSN() = %s, want %s", cfg.DatabaseDSN(), defaultSQLitePath)
	}
	if cfg.App.KeyLength != 5 || cfg.App.MaxRetries != 5 {
		t.Errorf("KeyLength = %d, MaxRetries = %d", cfg.App.KeyLength, cfg.App.MaxRetries)
	}
	if cfg.App.QRSize != 256 {
		t.Errorf("QRSize = %d, want 256", cfg.App.QRSize)
	}
	if cfg.App.RateLimitRequests != 100 || cfg.App.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %s", cfg.App.RateLimitRequests, cfg.App.RateLimitWindow)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis.Enabled = false, want true")
	}
	if cfg.IsProduction() || !cfg.IsDevelopment() {
		t.Errorf("Environment = %s", cfg.App.Environment)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("URLSHORT_SERVER_PORT", "9090")
	t.Setenv("URLSHORT_APP_BASE_URL", "https://sho.rt/")
	t.Setenv("URLSHORT_APP_KEY_LENGTH", "7")
	t.Setenv("URLSHORT_APP_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("URLSHORT_REDIS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.GetBaseURL() != "https://sho.rt" {
		t.Errorf("GetBaseURL() = %s, want trailing slash trimmed", cfg.GetBaseURL())
	}
	if cfg.App.KeyLength != 7 {
		t.Errorf("KeyLength = %d, want 7", cfg.App.KeyLength)
	}
	if cfg.App.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %s, want 30s", cfg.App.RateLimitWindow)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false")
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("URLSHORT_DATABASE_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for unsupported driver")
	}
}

func TestLoad_LibSQLRequiresDSN(t *testing.T) {
	t.Setenv("URLSHORT_DATABASE_DRIVER", "libsql")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for libsql without dsn")
	}

	t.Setenv("URLSHORT_DATABASE_DSN", "libsql://shortlink.turso.io?authToken=x")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseDSN() != "libsql://shortlink.turso.io?authToken=x" {
		t.Errorf("DatabaseDSN() = %s", cfg.DatabaseDSN())
	}
}

func TestConfig_DatabaseDSN_Postgres(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "p@ss",
		DBName:   "links",
	}}

	want := "postgres://app:p%40ss@db:5432/links?sslmode=disable"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DatabaseDSN() = %s, want %s", got, want)
	}
}

func TestConfig_GetAllowedOrigins(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "explicit",
			cfg:  Config{App: AppConfig{AllowedOrigins: []string{"https://a.example"}}},
			want: "https://a.example",
		},
		{
			name: "development wildcard",
			cfg:  Config{App: AppConfig{Environment: "development"}},
			want: "*",
		},
		{
			name: "production falls back to base URL",
			cfg:  Config{App: AppConfig{Environment: "production", BaseURL: "https://sho.rt"}},
			want: "https://sho.rt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.GetAllowedOrigins()
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("GetAllowedOrigins() = %v, want [%s]", got, tt.want)
			}
		})
	}
}
