// Package storage opens bun database handles for the delivery API
// repositories. Callers register the database/sql driver they deploy with
// (mattn/go-sqlite3, lib/pq) and name it here; the matching bun dialect is
// selected from the driver identifier.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// ErrDriverUnsupported is returned for drivers without a bun dialect mapping.
var ErrDriverUnsupported = errors.New("storage: unsupported driver")

// Config captures the connection settings for one database handle.
type Config struct {
	Driver string
	DSN    string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens a database connection and wraps it in bun with the dialect
// matching the configured driver.
func Open(cfg Config) (*bun.DB, error) {
	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(driverName(cfg.Driver), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return bun.NewDB(sqldb, dialect), nil
}

// NewDB wraps an existing connection in bun, selecting the dialect from the
// driver identifier. Useful when the host manages the sql.DB lifecycle.
func NewDB(sqldb *sql.DB, driver string) (*bun.DB, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, dialect), nil
}

func dialectFor(driver string) (schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return sqlitedialect.New(), nil
	case "postgres", "postgresql", "pg", "pgx":
		return pgdialect.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrDriverUnsupported, driver)
	}
}

// driverName maps dialect shorthands onto the names drivers register with
// database/sql.
func driverName(driver string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(driver)); normalized {
	case "sqlite":
		return "sqlite3"
	case "postgresql", "pg":
		return "postgres"
	default:
		return normalized
	}
}
