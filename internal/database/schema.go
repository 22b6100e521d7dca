package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Schema version tracking:
// 1 - rooms, memberships, profiles, state, account data, presence, receipts
const CurrentSchemaVersion = 1

// Both dialects accept these statements unchanged.
const (
	createSchemaVersion = "CREATE TABLE IF NOT EXISTS schema_version (id INTEGER PRIMARY KEY CHECK (id = 1), version INTEGER NOT NULL)"
	upsertSchemaVersion = "INSERT INTO schema_version (id, version) VALUES (1, %d) ON CONFLICT (id) DO UPDATE SET version = excluded.version"
	selectSchemaVersion = "SELECT version FROM schema_version WHERE id = 1"
)

// ApplySchema creates the catalog's tables and indexes if they do not exist
// and records CurrentSchemaVersion. It runs in one transaction and is safe
// to call on a database that is already up to date.
func (db *DB) ApplySchema(ctx context.Context) error {
	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range db.Catalog.Schema() {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, createSchemaVersion); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(upsertSchemaVersion, CurrentSchemaVersion)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	db.logger.Debug("schema applied", slog.Int("version", CurrentSchemaVersion))
	return nil
}

// SchemaVersion returns the recorded schema version, or 0 if the schema has
// never been applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.SQL.QueryRowContext(ctx, selectSchemaVersion).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return version, nil
}
