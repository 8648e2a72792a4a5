package sqldb

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Migration is one versioned schema change. Statements are executed in order
// inside a single transaction.
type Migration struct {
	Version    string
	Statements []string
}

// Schema placeholders resolved per dialect.
var dialectTypes = map[Dialect]*strings.Replacer{
	DialectSQLite: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{timestamp}}", "TIMESTAMP",
	),
	DialectPostgres: strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{timestamp}}", "TIMESTAMPTZ",
	),
}

const createSchemaVersion = `CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at {{timestamp}} NOT NULL
)`

// Migrations is the schema of the restaurant database, oldest first.
var Migrations = []Migration{
	{
		Version: "1.0.0",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS staff (
    id {{pk}},
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS dining_tables (
    id {{pk}},
    number INTEGER NOT NULL UNIQUE,
    seats INTEGER NOT NULL,
    created_at {{timestamp}} NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS menu_items (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    price_amount BIGINT NOT NULL,
    currency TEXT NOT NULL,
    available BOOLEAN NOT NULL DEFAULT TRUE,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    server_id BIGINT NOT NULL REFERENCES staff(id),
    table_id BIGINT NOT NULL REFERENCES dining_tables(id),
    status TEXT NOT NULL,
    total_amount BIGINT NOT NULL,
    currency TEXT NOT NULL,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
			`CREATE TABLE IF NOT EXISTS order_items (
    order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    line_no INTEGER NOT NULL,
    menu_item_id BIGINT NOT NULL REFERENCES menu_items(id),
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    unit_amount BIGINT NOT NULL,
    currency TEXT NOT NULL,
    PRIMARY KEY (order_id, line_no)
)`,
		},
	},
	{
		Version: "1.1.0",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS order_status_log (
    id {{pk}},
    order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    old_status TEXT NOT NULL DEFAULT '',
    new_status TEXT NOT NULL,
    changed_at {{timestamp}} NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_order_status_log_order ON order_status_log(order_id)`,
		},
	},
}

// ApplyMigrations applies every migration newer than the recorded schema version.
func ApplyMigrations(ctx context.Context, db *DB) error {
	return applyMigrations(ctx, db, Migrations)
}

func applyMigrations(ctx context.Context, db *DB, migrations []Migration) error {
	replacer, ok := dialectTypes[db.dialect]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, db.dialect)
	}

	if _, err := db.db.ExecContext(ctx, replacer.Replace(createSchemaVersion)); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}

	sorted, err := sortMigrations(migrations)
	if err != nil {
		return err
	}

	for _, m := range sorted {
		if current != nil && !m.version.GreaterThan(current) {
			continue
		}

		err := db.WithinTx(ctx, func(ctx context.Context) error {
			q := db.Querier(ctx)
			for _, stmt := range m.Statements {
				if _, err := q.ExecContext(ctx, replacer.Replace(stmt)); err != nil {
					return fmt.Errorf("executing statement: %w", err)
				}
			}
			_, err := q.ExecContext(ctx,
				db.Rebind(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`),
				m.version.String(), time.Now().UTC(),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("applying migration %s: %w", m.Version, err)
		}

		db.logger.Info("applied schema migration",
			slog.String("version", m.version.String()),
			slog.String("dialect", db.dialect.String()),
		)
	}

	return nil
}

type versionedMigration struct {
	Migration
	version *semver.Version
}

func sortMigrations(migrations []Migration) ([]versionedMigration, error) {
	sorted := make([]versionedMigration, 0, len(migrations))
	for _, m := range migrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version %q: %w", m.Version, err)
		}
		sorted = append(sorted, versionedMigration{Migration: m, version: v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].version.LessThan(sorted[j].version)
	})
	return sorted, nil
}

// CurrentVersion returns the highest applied schema version, or nil on an empty database.
func CurrentVersion(ctx context.Context, db *DB) (*semver.Version, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return nil, fmt.Errorf("reading schema versions: %w", err)
	}
	defer rows.Close()

	var current *semver.Version
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning schema version: %w", err)
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid recorded schema version %q: %w", raw, err)
		}
		if current == nil || v.GreaterThan(current) {
			current = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schema versions: %w", err)
	}

	return current, nil
}
