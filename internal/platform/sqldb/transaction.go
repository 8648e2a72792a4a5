package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNestedTransaction is returned when a scope is started inside an active one.
// database/sql has no nested transactions; a second BeginTx would run
// independently and break atomicity.
var ErrNestedTransaction = errors.New("nested transaction detected")

var tracer = otel.Tracer("github.com/edinson0810/pruebaCasa/internal/platform/sqldb")

// txKey is the context key for storing SQL transactions.
type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext extracts the SQL transaction from context.
// Returns (nil, false) if no transaction is present.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// ReadWriteScope runs functions inside a read-write SQL transaction.
type ReadWriteScope struct {
	db *DB
}

// NewReadWriteScope creates a read-write transaction scope.
func NewReadWriteScope(db *DB) *ReadWriteScope {
	return &ReadWriteScope{db: db}
}

// Execute runs fn within a transaction. The transaction is committed if fn
// returns nil and rolled back on error or panic.
func (s *ReadWriteScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.run(ctx, "sqldb.ReadWriteTransaction", nil, fn)
}

// ReadOnlyScope runs functions inside a read-only snapshot, so multi-statement
// reads (order headers, then their items) observe one consistent state.
type ReadOnlyScope struct {
	db *DB
}

// NewReadOnlyScope creates a read-only transaction scope.
func NewReadOnlyScope(db *DB) *ReadOnlyScope {
	return &ReadOnlyScope{db: db}
}

// Execute runs fn within a read-only transaction. If ctx already carries a
// transaction, fn joins it.
func (s *ReadOnlyScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}
	return s.db.run(ctx, "sqldb.ReadOnlyTransaction", s.db.readOnlyOptions(), fn)
}

// WithinTx joins the transaction in ctx, or runs fn in a new read-write
// transaction when there is none. Repositories use it for multi-statement writes.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}
	return db.run(ctx, "sqldb.ImplicitTransaction", nil, fn)
}

func (db *DB) readOnlyOptions() *sql.TxOptions {
	// SQLite drivers reject read-only/isolation options; a deferred
	// transaction already reads from one snapshot.
	if db.dialect != DialectPostgres {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

func (db *DB) run(ctx context.Context, spanName string, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return ErrNestedTransaction
	}

	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", db.dialect.String())),
	)
	defer span.End()

	tx, err := db.db.BeginTx(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rolled back")
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true

	return nil
}
