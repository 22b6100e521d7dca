// Package database opens the SQL backends the state store runs on and
// prepares their schema.
//
// Three drivers are supported: "sqlite3" (github.com/mattn/go-sqlite3,
// the default), "sqlite" (modernc.org/sqlite, no cgo) and "pgx"
// (github.com/jackc/pgx/v5/stdlib, PostgreSQL). The driver decides which
// catalog dialect the store binds against.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/roach88/chatstate/internal/catalog"
	"github.com/roach88/chatstate/internal/store"
)

// Driver names accepted by Open.
const (
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Drivers lists the accepted driver names.
var Drivers = []string{DriverSQLite3, DriverSQLite, DriverPostgres}

// ErrUnknownDriver is returned for a driver name Open does not know.
var ErrUnknownDriver = errors.New("unknown database driver")

// Config selects the backend to open.
type Config struct {
	// Driver is one of Drivers. Empty means DriverSQLite3.
	Driver string

	// DSN is a file path (or ":memory:") for SQLite and a connection
	// string for PostgreSQL.
	DSN string
}

// DialectFor maps a driver name to the catalog dialect it speaks.
func DialectFor(driver string) (catalog.Dialect, error) {
	switch driver {
	case "", DriverSQLite3, DriverSQLite:
		return catalog.SQLite, nil
	case DriverPostgres:
		return catalog.Postgres, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDriver, driver, strings.Join(Drivers, ", "))
	}
}

// DB is an open backend together with the catalog for its dialect.
type DB struct {
	SQL     *sql.DB
	Catalog catalog.Catalog
	Driver  string

	logger *slog.Logger
}

// Option configures Open.
type Option func(*DB)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// Open connects to the configured backend and applies the schema.
//
// SQLite connections are configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// SQLite allows one writer at a time, so the pool is limited to a single
// connection. While a transaction is open, reads must go through it rather
// than through SQL.
//
// Open is idempotent: opening an existing database leaves its rows intact.
func Open(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite3
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("open %s: dsn is required", driver)
	}

	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	db := &DB{
		SQL:     sqlDB,
		Catalog: catalog.MustNew(dialect),
		Driver:  driver,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(db)
	}

	if dialect == catalog.SQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)

		if err := applyPragmas(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := db.ApplySchema(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	db.logger.Debug("database opened",
		slog.String("driver", driver),
		slog.String("dialect", string(dialect)),
	)
	return db, nil
}

// Store returns a state store reading through the shared handle.
func (db *DB) Store(opts ...store.Option) *store.Store {
	return store.New(db.SQL, db.Catalog, opts...)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}
