package spanner

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
)

// ReadTransaction is the read surface shared by read-write and read-only
// transactions, so repositories can read inside either.
type ReadTransaction interface {
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

var (
	_ ReadTransaction = (*spanner.ReadWriteTransaction)(nil)
	_ ReadTransaction = (*spanner.ReadOnlyTransaction)(nil)
)

type readWriteTxKey struct{}
type readOnlyTxKey struct{}

func withReadWriteTx(ctx context.Context, tx *spanner.ReadWriteTransaction) (context.Context, error) {
	if hasTx(ctx) {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, readWriteTxKey{}, tx), nil
}

func withReadOnlyTx(ctx context.Context, tx *spanner.ReadOnlyTransaction) (context.Context, error) {
	if hasTx(ctx) {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, readOnlyTxKey{}, tx), nil
}

func hasTx(ctx context.Context) bool {
	return ctx.Value(readWriteTxKey{}) != nil || ctx.Value(readOnlyTxKey{}) != nil
}

// ReadWriteTxFromContext extracts a ReadWriteTransaction from context.
func ReadWriteTxFromContext(ctx context.Context) (*spanner.ReadWriteTransaction, bool) {
	tx, ok := ctx.Value(readWriteTxKey{}).(*spanner.ReadWriteTransaction)
	return tx, ok
}

// ReadTransactionFromContext returns whichever transaction ctx carries for reading.
func ReadTransactionFromContext(ctx context.Context) (ReadTransaction, bool) {
	if tx, ok := ReadWriteTxFromContext(ctx); ok {
		return tx, true
	}
	if tx, ok := ctx.Value(readOnlyTxKey{}).(*spanner.ReadOnlyTransaction); ok {
		return tx, true
	}
	return nil, false
}

// ErrNestedTransaction is returned when attempting to start a transaction
// inside an already-active transaction scope.
// Cloud Spanner does not support nested transactions; nesting would silently
// create an independent transaction and break atomicity.
var ErrNestedTransaction = errors.New("nested transaction detected: Cloud Spanner does not support nested transactions")
