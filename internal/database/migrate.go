package database

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS urls (
		id              BIGSERIAL PRIMARY KEY,
		"key"           TEXT NOT NULL UNIQUE,
		secret_key      TEXT NOT NULL UNIQUE,
		target_url      TEXT NOT NULL,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		clicks          BIGINT NOT NULL DEFAULT 0,
		expiration_date TIMESTAMPTZ NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_urls_target_url ON urls (target_url)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS urls (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		"key"           TEXT NOT NULL UNIQUE,
		secret_key      TEXT NOT NULL UNIQUE,
		target_url      TEXT NOT NULL,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		clicks          INTEGER NOT NULL DEFAULT 0,
		expiration_date TIMESTAMP NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_urls_target_url ON urls (target_url)`,
}

// Migrate создает таблицу urls, если ее еще нет. UNIQUE на key и secret_key
// дает индексы по ним.
func Migrate(ctx context.Context, db *DB) error {
	schema := sqliteSchema
	if db.Dialect == Postgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
