package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Dialect - поддерживаемые СУБД
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
	LibSQL   Dialect = "libsql"
)

func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case Postgres, SQLite, LibSQL:
		return d, nil
	case "pgx", "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// DriverName возвращает имя драйвера database/sql для диалекта
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case LibSQL:
		return "libsql"
	default:
		return "sqlite"
	}
}

// Rebind переписывает плейсхолдеры '?' в $1, $2... для Postgres
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}

	return b.String()
}

type DB struct {
	*sql.DB
	Dialect Dialect
}

func Connect(dialect Dialect, dsn string) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == Postgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	} else {
		// SQLite пишет одним соединением; :memory: живет пока живо соединение
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == SQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

func HealthCheck(db *DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

func GetVersion(db *DB) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	query := "SELECT sqlite_version()"
	if db.Dialect == Postgres {
		query = "SELECT version()"
	}

	var version string
	err := db.QueryRowContext(ctx, query).Scan(&version)
	return version, err
}
