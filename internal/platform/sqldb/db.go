// Package sqldb provides database/sql infrastructure shared by the SQL repositories:
// connection setup for SQLite and PostgreSQL, transaction scopes carried in
// context, and schema migrations.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Dialect selects SQL syntax differences between the supported databases.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) String() string { return string(d) }

// ErrUnsupportedDialect is returned by Open for unknown dialects.
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

// Config holds connection settings.
type Config struct {
	Dialect Dialect
	// DSN is a file path (or ":memory:") for SQLite and a libpq-style
	// connection string for PostgreSQL.
	DSN          string
	MaxOpenConns int
	// ConnectRetries and RetryDelay control the PostgreSQL startup ping loop.
	ConnectRetries int
	RetryDelay     time.Duration
}

// Querier is implemented by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps *sql.DB with its dialect.
type DB struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Open connects to the configured database. The caller must Close it.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Dialect {
	case DialectSQLite:
		db, err = openSQLite(cfg.DSN)
	case DialectPostgres:
		db, err = openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, cfg.Dialect)
	}
	if err != nil {
		return nil, err
	}

	return &DB{db: db, dialect: cfg.Dialect, logger: logger}, nil
}

// openSQLite opens a SQLite database with a single writer connection.
func openSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open(SQLiteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// openPostgres opens a pgx-backed pool and waits until the server answers a ping.
func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 10
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	const pingTimeout = 5 * time.Second

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	for attempt := 1; attempt <= retries; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return db, nil
		}

		logger.Warn("postgres not reachable yet",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", retries),
			slog.Any("error", err),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("waiting for postgres: %w", ctx.Err())
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", retries, err)
}

// Dialect returns the database dialect.
func (db *DB) Dialect() Dialect { return db.dialect }

// Close closes the underlying pool.
func (db *DB) Close() error { return db.db.Close() }

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error { return db.db.PingContext(ctx) }

// Querier returns the transaction bound to ctx, or the pool when there is none.
func (db *DB) Querier(ctx context.Context) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db.db
}

// Rebind converts '?' placeholders into the dialect's positional form.
// Queries are written with '?' and must not contain literal question marks.
func (db *DB) Rebind(query string) string {
	return rebind(db.dialect, query)
}

func rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// Placeholders returns n comma separated '?' markers for IN lists.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
