// Package transaction defines the unit-of-work boundary application handlers
// run in. The storage backends (sqldb, spanner) provide the implementations.
package transaction

import "context"

// Scope runs fn as one unit of work: commit when fn returns nil, roll back
// otherwise. Repositories find the transaction through the ctx handed to fn.
// Implementations may run fn more than once (Spanner aborts), so fn must not
// leak side effects outside ctx.
type Scope interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScopeFunc adapts a function to Scope.
type ScopeFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f ScopeFunc) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// ExecuteWithResult is Execute for units of work that produce a value, such
// as the id of a created order.
func ExecuteWithResult[T any](ctx context.Context, scope Scope, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := scope.Execute(ctx, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}
